package models

import (
	"time"

	"github.com/julianstephens/timetable/internal/constants"
)

// TimetableConfig controls which days, months and hours a grid shows.
// Use validation.ValidateConfig before building grids from it.
type TimetableConfig struct {
	Days           []time.Weekday `json:"days"`
	Months         []time.Month   `json:"months"`
	TimeFrom       time.Duration  `json:"time_from"` // offset from midnight
	TimeTo         time.Duration  `json:"time_to"`   // offset from midnight
	Is24HourFormat bool           `json:"is_24_hour_format"`
	DisplayType    DisplayType    `json:"display_type"`
}

// DefaultConfig shows the whole week, every month and the full day
func DefaultConfig() TimetableConfig {
	return TimetableConfig{
		Days: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
			time.Friday, time.Saturday, time.Sunday,
		},
		Months: []time.Month{
			time.January, time.February, time.March, time.April, time.May, time.June,
			time.July, time.August, time.September, time.October, time.November, time.December,
		},
		TimeFrom:       0,
		TimeTo:         constants.EndOfDay,
		Is24HourFormat: true,
		DisplayType:    DisplayWeek,
	}
}

// EffectiveTimeTo treats the end-of-day marker (23:59) as midnight of the next day
func (c TimetableConfig) EffectiveTimeTo() time.Duration {
	if c.TimeTo == constants.EndOfDay {
		return constants.Day
	}
	return c.TimeTo
}

func (c TimetableConfig) HasDay(day time.Weekday) bool {
	for _, d := range c.Days {
		if d == day {
			return true
		}
	}
	return false
}

func (c TimetableConfig) HasMonth(month time.Month) bool {
	for _, m := range c.Months {
		if m == month {
			return true
		}
	}
	return false
}

// IsVisible reports whether the date falls on an enabled weekday of an enabled month
func (c TimetableConfig) IsVisible(date time.Time) bool {
	return c.HasDay(date.Weekday()) && c.HasMonth(date.Month())
}
