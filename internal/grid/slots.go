package grid

import (
	"time"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// TimeSlots returns the slot start offsets from TimeFrom in SlotDuration steps.
// A slot is kept only when it ends at or before the effective TimeTo.
func TimeSlots(cfg models.TimetableConfig) []time.Duration {
	end := cfg.EffectiveTimeTo()
	var slots []time.Duration
	for s := cfg.TimeFrom; s+constants.SlotDuration <= end; s += constants.SlotDuration {
		slots = append(slots, s)
	}
	return slots
}

// NeedsHeader reports whether an event belongs in the header row instead of a time slot:
// it crosses a day boundary or starts or ends outside the configured hours. The start must
// lie before TimeTo. An end at exactly midnight of the next day stays within the day when
// the timetable runs to the end of the day.
func NeedsHeader[E any](desc *event.Descriptor[E], cfg models.TimetableConfig) bool {
	from, to := desc.DateFrom(), desc.DateTo()
	limit := cfg.EffectiveTimeTo()
	if start := utils.TimeOfDay(from); start < cfg.TimeFrom || start >= limit {
		return true
	}
	switch {
	case utils.SameDay(from, to):
		stop := utils.TimeOfDay(to)
		return stop < cfg.TimeFrom || stop > limit
	case endsAtNextMidnight(from, to):
		return limit < constants.Day
	default:
		return true
	}
}

func endsAtNextMidnight(from, to time.Time) bool {
	return utils.DaysBetween(from, to) == 1 && utils.TimeOfDay(to) == 0
}

// slotIndex returns the slot containing the start of the event, clamped to the last slot
func slotIndex(start time.Time, cfg models.TimetableConfig, slots int) int {
	idx := int((utils.TimeOfDay(start) - cfg.TimeFrom) / constants.SlotDuration)
	return min(max(idx, 0), slots-1)
}

// slotSpan counts the slots from slotStart to the event end, clipped at TimeTo.
// Both ends are read as wall-clock times of the slot's day.
func slotSpan(slotStart, end time.Time, cfg models.TimetableConfig) int {
	stop := cfg.EffectiveTimeTo()
	if utils.SameDay(slotStart, end) {
		stop = min(stop, utils.TimeOfDay(end))
	}
	d := stop - utils.TimeOfDay(slotStart)
	span := int(d / constants.SlotDuration)
	if d%constants.SlotDuration != 0 {
		span++
	}
	return max(span, 1)
}
