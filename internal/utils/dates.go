package utils

import (
	"time"

	"github.com/julianstephens/timetable/internal/models"
)

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b (negative when b is earlier)
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	// UTC midnights keep the division exact across DST changes
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// WeekdayOffset is the number of days from "from" forward to "to" (0..6)
func WeekdayOffset(from, to time.Weekday) int {
	return (7 + int(to) - int(from)) % 7
}

// GetStartOfWeekDate returns the latest date on or before date whose weekday is firstDayOfWeek
func GetStartOfWeekDate(date time.Time, firstDayOfWeek time.Weekday) time.Time {
	return DateOnly(date).AddDate(0, 0, -WeekdayOffset(firstDayOfWeek, date.Weekday()))
}

func containsWeekday(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func containsMonth(months []time.Month, month time.Month) bool {
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}

func isValidDate(date time.Time, days []time.Weekday, months []time.Month) bool {
	return containsWeekday(days, date.Weekday()) && containsMonth(months, date.Month())
}

// GetNextValidDate returns date when it falls on an enabled day of an enabled month,
// otherwise the first such date after it. With no days or months enabled the
// input is returned unchanged.
func GetNextValidDate(date time.Time, days []time.Weekday, months []time.Month) time.Time {
	return nudge(date, days, months, 1)
}

// GetValidDateFor steps date by one unit of the display type and then moves
// further in the same direction until it lands on a visible date.
func GetValidDateFor(date time.Time, displayType models.DisplayType, days []time.Weekday, months []time.Month, forward bool) time.Time {
	step := 1
	if !forward {
		step = -1
	}

	var next time.Time
	switch displayType {
	case models.DisplayWeek:
		next = date.AddDate(0, 0, step*len(days))
	case models.DisplayMonth:
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		if forward {
			next = first.AddDate(0, 1, 0)
		} else {
			next = first.AddDate(0, 0, -1)
		}
	default:
		next = date.AddDate(0, 0, step)
	}

	return nudge(next, days, months, step)
}

// nudge moves date one day at a time in direction step until it is valid
func nudge(date time.Time, days []time.Weekday, months []time.Month, step int) time.Time {
	if len(days) == 0 || len(months) == 0 {
		return date
	}
	for !isValidDate(date, days, months) {
		date = date.AddDate(0, 0, step)
	}
	return date
}

// CalculateMonthGridDates builds the week-by-day date matrix for the month of anchor.
// Each row holds one date per entry of days, in that order; rows start on days[0].
// Rows without any date inside the month are dropped, so the result has 4 to 6 rows.
func CalculateMonthGridDates(anchor time.Time, days []time.Weekday) [][]time.Time {
	if len(days) == 0 {
		return nil
	}

	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)
	gridStart := GetStartOfWeekDate(first, days[0])

	offsets := make([]int, len(days))
	for i, d := range days {
		offsets[i] = WeekdayOffset(days[0], d)
	}

	var rows [][]time.Time
	for rowStart := gridStart; !rowStart.After(last); rowStart = rowStart.AddDate(0, 0, 7) {
		row := make([]time.Time, len(days))
		inMonth := false
		for i, offset := range offsets {
			row[i] = rowStart.AddDate(0, 0, offset)
			if row[i].Month() == anchor.Month() && row[i].Year() == anchor.Year() {
				inMonth = true
			}
		}
		if !inMonth {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
