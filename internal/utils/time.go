package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timetable/internal/constants"
)

// ParseTimeOfDay parses a time string (HH:MM) into an offset from midnight.
func ParseTimeOfDay(timeStr string) (time.Duration, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(timeStr))
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q, use HH:MM: %w", timeStr, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatTimeOfDay renders an offset from midnight as HH:MM, or as 3:04 PM when is24h is false.
// Offsets of a full day or more render as the end of day in 24h form (24:00).
func FormatTimeOfDay(offset time.Duration, is24h bool) string {
	if offset >= constants.Day && is24h {
		return "24:00"
	}
	t := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(offset)
	if is24h {
		return t.Format(constants.TimeFormat)
	}
	return t.Format(constants.TimeFormat12h)
}

// TimeOfDay returns the wall-clock time of t as an offset from midnight.
// It reads the clock fields, so days with a DST change still run 00:00 to 24:00.
func TimeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

// AtTimeOfDay returns the wall-clock time offset on the date of day, in day's location.
// An offset of 24h or more rolls over into the following days.
func AtTimeOfDay(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.Date()
	h := offset / time.Hour
	offset -= h * time.Hour
	mins := offset / time.Minute
	offset -= mins * time.Minute
	secs := offset / time.Second
	offset -= secs * time.Second
	return time.Date(y, m, d, int(h), int(mins), int(secs), int(offset), day.Location())
}

// ParseDate parses a date string (YYYY-MM-DD) in the given location.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(dateStr), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q, use YYYY-MM-DD: %w", dateStr, err)
	}
	return t, nil
}

// ParseDateTime parses "YYYY-MM-DD HH:MM" or a bare date (midnight) in the given location.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{constants.DateTimeFormat, "2006-01-02T15:04", constants.CSVDateTimeFormat, constants.DateFormat} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q, use YYYY-MM-DD HH:MM", value)
}

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full or three-letter English names (case-insensitive)
func ParseWeekday(s string) (time.Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return wd, nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// ParseMonth accepts full or three-letter English names (case-insensitive)
func ParseMonth(s string) (time.Month, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month: %s", s)
}
