package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/tui/components/agenda"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
		return m, nil
	}

	switch m.state {
	case StateAdding:
		return m, m.handleAdding(msg)
	case StateConfirmDelete:
		return m, m.handleConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case agenda.DeleteEventMsg:
		m.pendingDelete = m.find(msg.Event.ID)
		if m.pendingDelete != nil {
			m.previousState = m.state
			m.state = StateConfirmDelete
		}
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleKeys(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.state == StateAgenda {
		m.agenda, cmd = m.agenda.Update(msg)
	} else {
		m.timetable, cmd = m.timetable.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Prev):
		m.manager.Previous()
		m.refresh()
	case key.Matches(msg, m.keys.Next):
		m.manager.Next()
		m.refresh()
	case key.Matches(msg, m.keys.Today):
		m.manager.Today()
		m.refresh()
	case key.Matches(msg, m.keys.Day):
		m.switchDisplay(models.DisplayDay)
	case key.Matches(msg, m.keys.Week):
		m.switchDisplay(models.DisplayWeek)
	case key.Matches(msg, m.keys.Month):
		m.switchDisplay(models.DisplayMonth)
	case key.Matches(msg, m.keys.Agenda):
		if m.state == StateAgenda {
			m.state = StateGrid
		} else {
			m.state = StateAgenda
		}
	case key.Matches(msg, m.keys.Add):
		m.addForm = newAddFormModel(m.manager.CurrentDate)
		m.form = NewAddForm(m.addForm)
		m.previousState = m.state
		m.state = StateAdding
		return true, m.form.Init()
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) switchDisplay(dt models.DisplayType) {
	if err := m.manager.SetDisplayType(dt); err != nil {
		m.status = apperr.Format(err)
		return
	}
	m.refresh()
}

func (m *Model) handleAdding(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		created, err := m.addForm.Events(m.manager)
		if err == nil {
			err = m.store.SaveEvents(created...)
		}
		if err != nil {
			logger.Error("Failed to add event", "error", err)
			m.status = apperr.Format(err)
			return cmd
		}
		m.status = fmt.Sprintf("Added %d event(s)", len(created))
		m.reload()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return cmd
}

func (m *Model) handleConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		scope := models.ScopeSingle
		if m.pendingDelete.GroupID != nil {
			scope = models.ScopeFuture
		}
		m.deleteEvent(scope)
	case "s":
		m.deleteEvent(models.ScopeSingle)
	case "n", "N", "esc":
	default:
		return nil
	}
	m.pendingDelete = nil
	m.state = m.previousState
	return nil
}

func (m *Model) deleteEvent(scope models.ActionScope) {
	desc := event.Wrap(m.pendingDelete, m.manager.Accessors())
	_, removed, err := m.manager.DeleteEvent(m.events, scope, desc)
	if err != nil {
		m.status = apperr.Format(err)
		return
	}

	ids := make([]string, 0, len(removed))
	for _, e := range removed {
		ids = append(ids, e.ID)
	}
	if err := m.store.DeleteEvents(ids...); err != nil {
		logger.Error("Failed to delete events", "error", err)
		m.status = apperr.Format(err)
		return
	}
	m.status = fmt.Sprintf("Deleted %d event(s)", len(ids))
	m.reload()
}

func (m Model) find(id string) *models.Event {
	for _, e := range m.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}
