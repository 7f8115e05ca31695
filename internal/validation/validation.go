package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timetable/internal/constants"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyDays          ConflictType = "empty_days"
	ConflictInvalidDay         ConflictType = "invalid_day"
	ConflictDuplicateDay       ConflictType = "duplicate_day"
	ConflictNonConsecutiveDays ConflictType = "non_consecutive_days"
	ConflictEmptyMonths        ConflictType = "empty_months"
	ConflictInvalidMonth       ConflictType = "invalid_month"
	ConflictDuplicateMonth     ConflictType = "duplicate_month"
	ConflictNonConsecutiveMths ConflictType = "non_consecutive_months"
	ConflictTimeOutOfRange     ConflictType = "time_out_of_range"
	ConflictMisalignedTime     ConflictType = "misaligned_time"
	ConflictInvalidTimeRange   ConflictType = "invalid_time_range"
	ConflictInvalidDisplayType ConflictType = "invalid_display_type"
)

// Conflict represents a single problem found in a configuration
type Conflict struct {
	Type        ConflictType
	Description string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Err joins all conflicts into one error wrapping ErrInvalidConfig, or returns nil
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	errs := make([]error, 0, len(vr.Conflicts))
	for _, c := range vr.Conflicts {
		errs = append(errs, fmt.Errorf("%w: %s", apperr.ErrInvalidConfig, c.Description))
	}
	return errors.Join(errs...)
}

func (vr *ValidationResult) add(t ConflictType, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, Description: fmt.Sprintf(format, args...)})
}

// ValidateConfig checks the enabled days and months, the visible hours and the display type.
func ValidateConfig(cfg models.TimetableConfig) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	validateDays(&result, cfg.Days)
	validateMonths(&result, cfg.Months)
	validateHours(&result, cfg.TimeFrom, cfg.TimeTo)

	if _, err := models.ParseDisplayType(string(cfg.DisplayType)); err != nil {
		result.add(ConflictInvalidDisplayType, "Display type %q is not one of day, week, month", cfg.DisplayType)
	}

	return result
}

func validateDays(result *ValidationResult, days []time.Weekday) {
	if len(days) == 0 {
		result.add(ConflictEmptyDays, "At least one day must be enabled")
		return
	}

	seen := make(map[time.Weekday]bool, len(days))
	for i, d := range days {
		if d < time.Sunday || d > time.Saturday {
			result.add(ConflictInvalidDay, "Day %d is not a weekday", int(d))
			continue
		}
		if seen[d] {
			result.add(ConflictDuplicateDay, "Day %s is listed more than once", d)
		}
		seen[d] = true
		if i > 0 && utils.WeekdayOffset(days[i-1], d) != 1 {
			result.add(ConflictNonConsecutiveDays, "Day %s does not follow %s", d, days[i-1])
		}
	}
}

func validateMonths(result *ValidationResult, months []time.Month) {
	if len(months) == 0 {
		result.add(ConflictEmptyMonths, "At least one month must be enabled")
		return
	}

	seen := make(map[time.Month]bool, len(months))
	for i, m := range months {
		if m < time.January || m > time.December {
			result.add(ConflictInvalidMonth, "Month %d is not a calendar month", int(m))
			continue
		}
		if seen[m] {
			result.add(ConflictDuplicateMonth, "Month %s is listed more than once", m)
		}
		seen[m] = true
		if i > 0 && months[i-1]%12+1 != m {
			result.add(ConflictNonConsecutiveMths, "Month %s does not follow %s", m, months[i-1])
		}
	}
}

func validateHours(result *ValidationResult, from, to time.Duration) {
	inDay := func(d time.Duration) bool { return d >= 0 && d < constants.Day }

	if !inDay(from) {
		result.add(ConflictTimeOutOfRange, "Time from %v is outside the day", from)
	} else if from%constants.SlotDuration != 0 {
		result.add(ConflictMisalignedTime, "Time from %s is not a multiple of %v", utils.FormatTimeOfDay(from, true), constants.SlotDuration)
	}

	if !inDay(to) {
		result.add(ConflictTimeOutOfRange, "Time to %v is outside the day", to)
	} else if to != constants.EndOfDay && to%constants.SlotDuration != 0 {
		result.add(ConflictMisalignedTime, "Time to %s is not a multiple of %v", utils.FormatTimeOfDay(to, true), constants.SlotDuration)
	}

	if to <= from {
		result.add(ConflictInvalidTimeRange, "Time to (%s) must be after time from (%s)",
			utils.FormatTimeOfDay(to, true), utils.FormatTimeOfDay(from, true))
	}
}
