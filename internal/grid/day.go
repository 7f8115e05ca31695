package grid

import (
	"time"

	"github.com/julianstephens/timetable/internal/accessor"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// DayService renders a single column for the anchor date
type DayService[E any] struct{}

func (DayService[E]) CreateGrid(events []*E, cfg models.TimetableConfig, anchor time.Time, props *accessor.Accessors[E]) *Grid[E] {
	date := utils.DateOnly(anchor)
	g := newGrid[E](date.Format("Monday, January 2, 2006"), models.DisplayDay, date)
	buildTimedColumns(g, []time.Time{date}, wrapAll(events, props), cfg, false)
	return g
}
