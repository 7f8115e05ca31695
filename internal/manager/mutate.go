package manager

import (
	"fmt"

	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/grid"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// MoveEvent reschedules the event behind itemID into the target cell of the retained grid.
// It returns nil when either id is unknown, the cell types differ or the target is disabled.
// Slot moves take the slot's start time; header and month moves keep the time of day.
// The duration is always preserved.
func (m *Manager[E]) MoveEvent(itemID, targetCellID string) *E {
	g := m.Grid
	item, source, target := g.Item(itemID), g.ItemCell(itemID), g.Cell(targetCellID)
	if item == nil || source == nil || target == nil {
		return nil
	}
	if source.Type != target.Type || target.Type == grid.CellDisabled {
		return nil
	}

	desc := item.Event
	duration := desc.Duration()
	start := target.DateTime
	if target.Type == grid.CellHeader || g.DisplayType == models.DisplayMonth {
		start = utils.AtTimeOfDay(target.DateTime, utils.TimeOfDay(desc.DateFrom()))
	}
	desc.SetDateFrom(start)
	desc.SetDateTo(start.Add(duration))
	g.MoveItem(itemID, targetCellID)

	logger.Debug("Moved event", "title", desc.Title(), "start", start)
	return desc.Event()
}

// MoveGroupEvents moves one item like MoveEvent and shifts every other member of its
// group by the same amount. Events without a group move alone.
func (m *Manager[E]) MoveGroupEvents(events []*E, itemID, targetCellID string) []*E {
	item := m.Grid.Item(itemID)
	if item == nil {
		return nil
	}
	before := item.Event.DateFrom()
	moved := m.MoveEvent(itemID, targetCellID)
	if moved == nil {
		return nil
	}

	affected := []*E{moved}
	groupID := item.Event.GroupID()
	if groupID == nil {
		return affected
	}
	delta := item.Event.DateFrom().Sub(before)
	for _, e := range events {
		if e == moved {
			continue
		}
		d := event.Wrap(e, m.props)
		if !d.InGroup(*groupID) {
			continue
		}
		d.SetDateFrom(d.DateFrom().Add(delta))
		d.SetDateTo(d.DateTo().Add(delta))
		affected = append(affected, e)
	}

	logger.Debug("Moved event group", "group", *groupID, "count", len(affected), "delta", delta)
	return affected
}

// UpdateEvent copies every field of modified onto the original instance. An original
// that belonged to a group is detached from it.
func (m *Manager[E]) UpdateEvent(original, modified *event.Descriptor[E]) (*E, error) {
	if original == nil || modified == nil {
		return nil, fmt.Errorf("%w: update needs both the original and the modified event", apperr.ErrInvalidOperation)
	}
	wasGrouped := original.IsGrouped()
	if err := modified.MapTo(original.Event()); err != nil {
		return nil, err
	}
	if wasGrouped {
		original.SetGroupID(nil)
	}

	logger.Debug("Updated event", "title", original.Title(), "detached", wasGrouped)
	return original.Event(), nil
}

// UpdateGroupEvents applies the start and end shift between original and modified, the new
// title and the extra fields to every member of the original's group. ScopeFuture limits
// this to members starting on or after the current date.
func (m *Manager[E]) UpdateGroupEvents(events []*E, scope models.ActionScope, original, modified *event.Descriptor[E]) ([]*E, error) {
	if original == nil || modified == nil {
		return nil, fmt.Errorf("%w: update needs both the original and the modified event", apperr.ErrInvalidOperation)
	}
	if scope != models.ScopeFuture && scope != models.ScopeAll {
		return nil, fmt.Errorf("%w: group update with scope %q", apperr.ErrInvalidOperation, scope)
	}
	members, err := m.groupMembers(events, scope, original)
	if err != nil {
		return nil, err
	}

	deltaStart := modified.DateFrom().Sub(original.DateFrom())
	deltaEnd := modified.DateTo().Sub(original.DateTo())
	title := modified.Title()
	for _, e := range members {
		d := event.Wrap(e, m.props)
		d.SetDateFrom(d.DateFrom().Add(deltaStart))
		d.SetDateTo(d.DateTo().Add(deltaEnd))
		d.SetTitle(title)
		if err := m.props.CopyExtras(e, modified.Event()); err != nil {
			return nil, err
		}
	}

	logger.Debug("Updated event group", "scope", scope, "count", len(members))
	return members, nil
}

// Update dispatches on scope to UpdateEvent or UpdateGroupEvents
func (m *Manager[E]) Update(events []*E, scope models.ActionScope, original, modified *event.Descriptor[E]) ([]*E, error) {
	switch scope {
	case models.ScopeSingle:
		e, err := m.UpdateEvent(original, modified)
		if err != nil {
			return nil, err
		}
		return []*E{e}, nil
	case models.ScopeFuture, models.ScopeAll:
		return m.UpdateGroupEvents(events, scope, original, modified)
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", apperr.ErrInvalidOperation, scope)
	}
}

// DeleteEvent removes the event (ScopeSingle) or its group members (ScopeFuture, ScopeAll)
// from events and returns what is left and what was removed.
func (m *Manager[E]) DeleteEvent(events []*E, scope models.ActionScope, desc *event.Descriptor[E]) (kept, removed []*E, err error) {
	if desc == nil {
		return nil, nil, fmt.Errorf("%w: no event to delete", apperr.ErrInvalidOperation)
	}

	var doomed map[*E]bool
	switch scope {
	case models.ScopeSingle:
		doomed = map[*E]bool{desc.Event(): true}
	case models.ScopeFuture, models.ScopeAll:
		members, err := m.groupMembers(events, scope, desc)
		if err != nil {
			return nil, nil, err
		}
		doomed = make(map[*E]bool, len(members))
		for _, e := range members {
			doomed[e] = true
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown scope %q", apperr.ErrInvalidOperation, scope)
	}

	kept = make([]*E, 0, len(events))
	for _, e := range events {
		if doomed[e] {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}

	logger.Debug("Deleted events", "scope", scope, "removed", len(removed))
	return kept, removed, nil
}

// groupMembers selects the events sharing desc's group, limited to those starting on or
// after the current date for ScopeFuture
func (m *Manager[E]) groupMembers(events []*E, scope models.ActionScope, desc *event.Descriptor[E]) ([]*E, error) {
	groupID := desc.GroupID()
	if groupID == nil {
		return nil, fmt.Errorf("%w: scope %q requires a grouped event", apperr.ErrInvalidOperation, scope)
	}

	from := utils.DateOnly(m.CurrentDate)
	var members []*E
	for _, e := range events {
		d := event.Wrap(e, m.props)
		if !d.InGroup(*groupID) {
			continue
		}
		if scope == models.ScopeFuture && d.DateFrom().Before(from) {
			continue
		}
		members = append(members, e)
	}
	return members, nil
}
