package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timetable/internal/grid"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/manager"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/render"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/tui/components/agenda"
	"github.com/julianstephens/timetable/internal/tui/components/timetable"
)

type SessionState int

const (
	StateGrid SessionState = iota
	StateAgenda
	StateAdding
	StateConfirmDelete
)

// chrome is the number of lines taken by tabs, status and help
const chrome = 6

type Model struct {
	store         storage.Provider
	manager       *manager.Manager[models.Event]
	events        []*models.Event
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	timetable     timetable.Model
	agenda        agenda.Model
	form          *huh.Form
	addForm       *AddFormModel
	pendingDelete *models.Event
	status        string
	quitting      bool
	width         int
	height        int
}

func NewModel(store storage.Provider, mgr *manager.Manager[models.Event]) Model {
	m := Model{
		store:     store,
		manager:   mgr,
		state:     StateGrid,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		timetable: timetable.New(0, 0),
		agenda:    agenda.New(nil, 0, 0),
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Prev, m.keys.Next, m.keys.Agenda, m.keys.Add}
	if m.state == StateAgenda {
		keys = append(keys, agenda.DefaultKeyMap().Delete)
	}
	return append(keys, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	groups := m.keys.FullHelp()
	if m.state == StateAgenda {
		groups = append(groups, []key.Binding{agenda.DefaultKeyMap().Delete})
	}
	return groups
}

func (m Model) Init() tea.Cmd {
	return m.timetable.Init()
}

// reload reads every event from the store and rebuilds the grid
func (m *Model) reload() {
	stored, err := m.store.GetAllEvents()
	if err != nil {
		logger.Error("Failed to load events", "error", err)
		m.status = "⚠ " + err.Error()
		return
	}
	m.events = make([]*models.Event, len(stored))
	for i := range stored {
		m.events[i] = &stored[i]
	}
	m.refresh()
}

// refresh rebuilds the grid for the current date and display type
func (m *Model) refresh() {
	g, err := m.manager.Refresh(m.events)
	if err != nil {
		m.status = "⚠ " + err.Error()
		return
	}
	m.timetable.SetContent(render.GridWidth(g, m.manager.Config(), m.width))
	m.agenda.SetEvents(visibleEvents(g))
}

// visibleEvents returns each event placed on the grid once, in start order
func visibleEvents(g *grid.Grid[models.Event]) []models.Event {
	seen := make(map[*models.Event]bool)
	var events []models.Event
	for _, item := range g.Items() {
		e := item.Event.Event()
		if seen[e] {
			continue
		}
		seen[e] = true
		events = append(events, *e)
	}
	slices.SortStableFunc(events, func(a, b models.Event) int {
		return a.DateFrom.Compare(b.DateFrom)
	})
	return events
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	h := max(height-chrome, 1)
	m.timetable.SetSize(width, h)
	m.agenda.SetSize(width, h)
	m.refresh()
}
