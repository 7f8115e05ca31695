package grid

import (
	"strconv"
	"time"

	"github.com/julianstephens/timetable/internal/accessor"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// MonthService renders the month of the anchor as rows of weeks, one column per configured day
type MonthService[E any] struct{}

func (MonthService[E]) CreateGrid(events []*E, cfg models.TimetableConfig, anchor time.Time, props *accessor.Accessors[E]) *Grid[E] {
	anchor = utils.DateOnly(anchor)
	g := newGrid[E](anchor.Format("January 2006"), models.DisplayMonth, anchor)

	rows := utils.CalculateMonthGridDates(anchor, cfg.Days)
	if len(rows) == 0 {
		return g
	}

	for i, day := range cfg.Days {
		col := &Column[E]{DayOfWeek: day, Index: i + 1, Title: day.String()[:3]}
		for r, row := range rows {
			date := row[i]
			typ := CellDisabled
			if date.Month() == anchor.Month() && date.Year() == anchor.Year() && cfg.HasMonth(date.Month()) {
				typ = CellNormal
			}
			col.Cells = append(col.Cells, newCell[E](date, strconv.Itoa(date.Day()), r+1, typ))
		}
		g.addColumn(col)
	}

	last := rows[len(rows)-1]
	gridEnd := last[len(last)-1]
	width := len(cfg.Days)

	for _, desc := range wrapAll(events, props) {
		start, end := utils.DateOnly(desc.DateFrom()), utils.DateOnly(desc.DateTo())
		if end.After(gridEnd) {
			end = gridEnd
		}
		for r, row := range rows {
			rowStart, rowEnd := row[0], row[width-1]
			if end.Before(rowStart) || start.After(rowEnd) {
				continue
			}
			c := 0
			if !start.Before(rowStart) {
				c = utils.DaysBetween(rowStart, start)
			}
			cell := g.Columns[c].Cells[r]
			if cell.Type != CellNormal {
				continue
			}
			span := min(utils.DaysBetween(cell.DateTime, end)+1, width-c)
			g.addItem(cell, desc, span)
		}
	}

	for _, col := range g.Columns {
		for _, cell := range col.Cells {
			sortBySpan(cell.Items)
		}
	}
	return g
}
