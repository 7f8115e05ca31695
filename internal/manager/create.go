package manager

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// CreateEvents returns the event of desc followed by its recurrences. For anything but
// RepeatOnce every returned event shares a new group id, and occurrences are generated
// up to and including the day of repeatUntil. everyNDays is only read for RepeatCustom.
func (m *Manager[E]) CreateEvents(desc *event.Descriptor[E], repeat models.Repeatability, repeatUntil time.Time, everyNDays int) ([]*E, error) {
	if desc == nil || desc.Event() == nil {
		return nil, fmt.Errorf("%w: no event to create", apperr.ErrInvalidOperation)
	}
	if repeat == "" || repeat == models.RepeatOnce {
		return []*E{desc.Event()}, nil
	}
	if repeatUntil.IsZero() {
		return nil, fmt.Errorf("%w: repeating events need an end date", apperr.ErrInvalidOperation)
	}

	opt, err := recurrenceOption(desc.DateFrom(), repeat, everyNDays)
	if err != nil {
		return nil, err
	}
	until := utils.DateOnly(repeatUntil).AddDate(0, 0, 1).Add(-time.Second)
	opt.Until = until

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidOperation, err)
	}

	groupID := uuid.NewString()
	desc.SetGroupID(&groupID)

	duration := desc.Duration()
	start := desc.DateFrom()
	created := []*E{desc.Event()}
	for _, occ := range rule.All() {
		if !occ.After(start) {
			continue
		}
		next := event.New(desc.Accessors())
		next.SetTitle(desc.Title())
		next.SetDateFrom(occ)
		next.SetDateTo(occ.Add(duration))
		id := groupID
		next.SetGroupID(&id)
		if err := desc.Accessors().CopyExtras(next.Event(), desc.Event()); err != nil {
			return nil, err
		}
		created = append(created, next.Event())
	}

	logger.Debug("Created recurring events", "repeat", repeat, "group", groupID, "count", len(created))
	return created, nil
}

func recurrenceOption(start time.Time, repeat models.Repeatability, everyNDays int) (rrule.ROption, error) {
	opt := rrule.ROption{Dtstart: start, Interval: 1}
	switch repeat {
	case models.RepeatDaily:
		opt.Freq = rrule.DAILY
	case models.RepeatWeekly:
		opt.Freq = rrule.WEEKLY
	case models.RepeatMonthly:
		opt.Freq = rrule.MONTHLY
		// months shorter than the start day land on their last day
		day := start.Day()
		if day > 28 {
			for d := 28; d <= day; d++ {
				opt.Bymonthday = append(opt.Bymonthday, d)
			}
			opt.Bysetpos = []int{-1}
		} else {
			opt.Bymonthday = []int{day}
		}
	case models.RepeatCustom:
		if everyNDays <= 0 {
			return opt, fmt.Errorf("%w: custom repeat interval must be positive, got %d", apperr.ErrInvalidOperation, everyNDays)
		}
		opt.Freq = rrule.DAILY
		opt.Interval = everyNDays
	default:
		return opt, fmt.Errorf("%w: unknown repeatability %q", apperr.ErrInvalidOperation, repeat)
	}
	return opt, nil
}
