package grid

import (
	"fmt"
	"time"

	"github.com/julianstephens/timetable/internal/accessor"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// WeekService renders one column per configured day of the week containing the anchor
type WeekService[E any] struct{}

func (WeekService[E]) CreateGrid(events []*E, cfg models.TimetableConfig, anchor time.Time, props *accessor.Accessors[E]) *Grid[E] {
	dates := WeekDates(anchor, cfg.Days)
	g := newGrid[E](weekTitle(dates), models.DisplayWeek, utils.DateOnly(anchor))
	if len(dates) == 0 {
		return g
	}
	buildTimedColumns(g, dates, wrapAll(events, props), cfg, true)
	return g
}

// WeekDates returns the column dates of the week containing anchor, starting on days[0]
func WeekDates(anchor time.Time, days []time.Weekday) []time.Time {
	if len(days) == 0 {
		return nil
	}
	start := utils.GetStartOfWeekDate(anchor, days[0])
	dates := make([]time.Time, len(days))
	for i, d := range days {
		dates[i] = start.AddDate(0, 0, utils.WeekdayOffset(days[0], d))
	}
	return dates
}

func weekTitle(dates []time.Time) string {
	if len(dates) == 0 {
		return ""
	}
	first, last := dates[0], dates[len(dates)-1]
	return fmt.Sprintf("%s - %s", first.Format("Jan 2"), last.Format("Jan 2, 2006"))
}
