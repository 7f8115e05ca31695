package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/manager"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/tui/components/agenda"
)

func local(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func setupModel(t *testing.T, events ...*models.Event) (Model, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "events.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if len(events) > 0 {
		if err := store.SaveEvents(events...); err != nil {
			t.Fatalf("failed to save events: %v", err)
		}
	}

	mgr, err := manager.New(models.DefaultConfig(), models.EventAccessors(),
		manager.WithClock[models.Event](func() time.Time { return local(2023, 10, 4, 10, 0) }))
	if err != nil {
		t.Fatalf("manager.New() error: %v", err)
	}
	return NewModel(store, mgr), store
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return send(t, m, msg)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", updated)
	}
	return next, cmd
}

func TestNewModel_RendersStoredEvents(t *testing.T) {
	m, _ := setupModel(t, &models.Event{Title: "Standup", DateFrom: local(2023, 10, 4, 9, 0), DateTo: local(2023, 10, 4, 9, 30)})

	if !strings.Contains(m.timetable.Content(), "Standup") {
		t.Errorf("grid does not show the stored event:\n%s", m.timetable.Content())
	}
	if m.agenda.Len() != 1 {
		t.Errorf("agenda has %d items, want 1", m.agenda.Len())
	}
	if !strings.Contains(m.View(), "Week") {
		t.Error("view does not show the display type tabs")
	}
}

func TestModel_Navigation(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		want    time.Time
		display models.DisplayType
	}{
		{"next week", []string{"right"}, local(2023, 10, 11, 0, 0), models.DisplayWeek},
		{"previous week", []string{"h"}, local(2023, 9, 27, 0, 0), models.DisplayWeek},
		{"back to today", []string{"right", "right", "t"}, local(2023, 10, 4, 0, 0), models.DisplayWeek},
		{"day view", []string{"d", "l"}, local(2023, 10, 5, 0, 0), models.DisplayDay},
		{"month view", []string{"m", "right"}, local(2023, 11, 1, 0, 0), models.DisplayMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := setupModel(t)
			for _, k := range tt.keys {
				m, _ = press(t, m, k)
			}
			if !m.manager.CurrentDate.Equal(tt.want) {
				t.Errorf("CurrentDate = %v, want %v", m.manager.CurrentDate, tt.want)
			}
			if m.manager.DisplayType != tt.display {
				t.Errorf("DisplayType = %v, want %v", m.manager.DisplayType, tt.display)
			}
		})
	}
}

func TestModel_MonthViewRendersMonth(t *testing.T) {
	m, _ := setupModel(t)
	m, _ = press(t, m, "m")
	if !strings.Contains(m.timetable.Content(), "October 2023") {
		t.Errorf("month grid title missing:\n%s", m.timetable.Content())
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := setupModel(t)
	m, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModel_AddFormOpensAndCancels(t *testing.T) {
	m, _ := setupModel(t)
	m, _ = press(t, m, "a")
	if m.state != StateAdding || m.form == nil {
		t.Fatalf("state = %v, want StateAdding", m.state)
	}
	if m.addForm.From != "2023-10-04 09:00" || m.addForm.To != "2023-10-04 10:00" {
		t.Errorf("form defaults = %q - %q", m.addForm.From, m.addForm.To)
	}
	m, _ = press(t, m, "esc")
	if m.state != StateGrid {
		t.Errorf("state after esc = %v, want StateGrid", m.state)
	}
}

func TestModel_DeleteFromAgenda(t *testing.T) {
	group := "g1"
	m, store := setupModel(t,
		&models.Event{Title: "Yoga", DateFrom: local(2023, 10, 3, 7, 0), DateTo: local(2023, 10, 3, 8, 0), GroupID: &group},
		&models.Event{Title: "Yoga", DateFrom: local(2023, 10, 5, 7, 0), DateTo: local(2023, 10, 5, 8, 0), GroupID: &group},
		&models.Event{Title: "Lunch", DateFrom: local(2023, 10, 4, 12, 0), DateTo: local(2023, 10, 4, 13, 0)},
	)

	m, _ = press(t, m, "tab")
	if m.state != StateAgenda {
		t.Fatalf("state = %v, want StateAgenda", m.state)
	}

	lunch := m.events[1]
	if lunch.Title != "Lunch" {
		t.Fatalf("unexpected event order: %+v", m.events)
	}
	m, _ = send(t, m, agenda.DeleteEventMsg{Event: *lunch})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want StateConfirmDelete", m.state)
	}
	if !strings.Contains(m.View(), "Lunch") {
		t.Error("confirmation does not name the event")
	}

	m, _ = press(t, m, "y")
	if m.state != StateAgenda {
		t.Errorf("state after confirm = %v, want StateAgenda", m.state)
	}
	remaining, err := store.GetAllEvents()
	if err != nil {
		t.Fatalf("GetAllEvents() error: %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("remaining events = %d, want 2", len(remaining))
	}

	m, _ = send(t, m, agenda.DeleteEventMsg{Event: *m.events[0]})
	m, _ = press(t, m, "n")
	if m.state != StateAgenda {
		t.Errorf("state after cancel = %v, want StateAgenda", m.state)
	}
	if remaining, _ := store.GetAllEvents(); len(remaining) != 2 {
		t.Errorf("cancel deleted events: %d left", len(remaining))
	}
}

func TestAddFormModel_Events(t *testing.T) {
	mgr, err := manager.New(models.DefaultConfig(), models.EventAccessors())
	if err != nil {
		t.Fatalf("manager.New() error: %v", err)
	}

	tests := []struct {
		name    string
		edit    func(*AddFormModel)
		want    int
		wantErr error
	}{
		{"single", func(fm *AddFormModel) {}, 1, nil},
		{"daily", func(fm *AddFormModel) {
			fm.Repeat = models.RepeatDaily
			fm.Until = "2023-10-06"
		}, 3, nil},
		{"every other day", func(fm *AddFormModel) {
			fm.Repeat = models.RepeatCustom
			fm.Until = "2023-10-08"
			fm.Every = "2"
		}, 3, nil},
		{"ends before start", func(fm *AddFormModel) {
			fm.To = "2023-10-04 08:00"
		}, 0, apperr.ErrInvalidOperation},
		{"zero interval", func(fm *AddFormModel) {
			fm.Repeat = models.RepeatCustom
			fm.Every = "0"
		}, 0, apperr.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := newAddFormModel(local(2023, 10, 4, 0, 0))
			fm.Title = "  Gym "
			tt.edit(fm)

			events, err := fm.Events(mgr)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Events() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Events() error: %v", err)
			}
			if len(events) != tt.want {
				t.Fatalf("Events() returned %d events, want %d", len(events), tt.want)
			}
			if events[0].Title != "Gym" {
				t.Errorf("title = %q, want trimmed", events[0].Title)
			}
		})
	}
}
