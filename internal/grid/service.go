package grid

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/timetable/internal/accessor"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// Service computes a grid for one display type. Implementations never mutate the events.
type Service[E any] interface {
	CreateGrid(events []*E, cfg models.TimetableConfig, anchor time.Time, props *accessor.Accessors[E]) *Grid[E]
}

// Registry maps display types to their grid services
type Registry[E any] struct {
	services map[models.DisplayType]Service[E]
}

// NewRegistry returns a registry with the day, week and month services registered
func NewRegistry[E any]() *Registry[E] {
	r := &Registry[E]{services: make(map[models.DisplayType]Service[E])}
	r.Register(models.DisplayDay, DayService[E]{})
	r.Register(models.DisplayWeek, WeekService[E]{})
	r.Register(models.DisplayMonth, MonthService[E]{})
	return r
}

func (r *Registry[E]) Register(displayType models.DisplayType, svc Service[E]) {
	r.services[displayType] = svc
}

// Resolve returns the service for the display type or ErrNoService
func (r *Registry[E]) Resolve(displayType models.DisplayType) (Service[E], error) {
	svc, ok := r.services[displayType]
	if !ok || svc == nil {
		return nil, fmt.Errorf("%w: %q", apperr.ErrNoService, displayType)
	}
	return svc, nil
}

func wrapAll[E any](events []*E, props *accessor.Accessors[E]) []*event.Descriptor[E] {
	descs := make([]*event.Descriptor[E], 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		descs = append(descs, event.Wrap(e, props))
	}
	return descs
}

func columnTitle(date time.Time) string {
	return date.Format("Mon Jan 2")
}

// buildTimedColumns lays out header and slot cells for consecutive dates and places
// the events. Header spans are capped by the remaining columns when capSpan is set.
func buildTimedColumns[E any](g *Grid[E], dates []time.Time, descs []*event.Descriptor[E], cfg models.TimetableConfig, capSpan bool) {
	slots := TimeSlots(cfg)
	for i, date := range dates {
		col := &Column[E]{
			DayOfWeek: date.Weekday(),
			Index:     i + 1,
			Date:      date,
			Title:     columnTitle(date),
		}
		enabled := cfg.IsVisible(date)

		headerType, slotType := CellHeader, CellNormal
		if !enabled {
			headerType, slotType = CellDisabled, CellDisabled
		}
		col.Cells = append(col.Cells, newCell[E](date, col.Title, 1, headerType))
		for j, s := range slots {
			label := utils.FormatTimeOfDay(s, cfg.Is24HourFormat)
			col.Cells = append(col.Cells, newCell[E](utils.AtTimeOfDay(date, s), label, j+2, slotType))
		}
		g.addColumn(col)
	}

	for _, desc := range descs {
		if NeedsHeader(desc, cfg) {
			placeHeader(g, desc, capSpan)
		} else if len(slots) > 0 {
			placeSlot(g, desc, cfg, len(slots))
		}
	}

	for _, col := range g.Columns {
		for _, cell := range col.Cells {
			sortByDuration(cell.Items)
		}
	}
}

// placeHeader puts a header event in the first enabled column whose date lies within
// the event. Events that ended before the first column are left out.
func placeHeader[E any](g *Grid[E], desc *event.Descriptor[E], capSpan bool) {
	start, end := utils.DateOnly(desc.DateFrom()), utils.DateOnly(desc.DateTo())
	for i, col := range g.Columns {
		header := col.Cells[0]
		if header.Type != CellHeader || col.Date.Before(start) || col.Date.After(end) {
			continue
		}
		span := utils.DaysBetween(col.Date, end) + 1
		if capSpan {
			span = min(span, len(g.Columns)-i)
		}
		g.addItem(header, desc, span)
		return
	}
}

func placeSlot[E any](g *Grid[E], desc *event.Descriptor[E], cfg models.TimetableConfig, slots int) {
	from := desc.DateFrom()
	for _, col := range g.Columns {
		if !utils.SameDay(col.Date, from) {
			continue
		}
		cell := col.Cells[slotIndex(from, cfg, slots)+1]
		if cell.Type != CellNormal {
			return
		}
		g.addItem(cell, desc, slotSpan(cell.DateTime, desc.DateTo(), cfg))
		return
	}
}

func sortByDuration[E any](items []*CellItem[E]) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Event.Duration() > items[j].Event.Duration()
	})
}

func sortBySpan[E any](items []*CellItem[E]) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Span > items[j].Span
	})
}
