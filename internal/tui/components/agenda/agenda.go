package agenda

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type DeleteEventMsg struct {
	Event models.Event
}

type Item struct {
	Event models.Event
}

func (i Item) Title() string {
	if i.Event.GroupID != nil {
		return "↻ " + i.Event.Title
	}
	return i.Event.Title
}

func (i Item) Description() string {
	from, to := i.Event.DateFrom, i.Event.DateTo
	desc := from.Format(constants.DateTimeFormat) + " - "
	if utils.SameDay(from, to) {
		desc += to.Format(constants.TimeFormat)
	} else {
		desc += to.Format(constants.DateTimeFormat)
	}
	if i.Event.Location != "" {
		desc = fmt.Sprintf("%s | %s", desc, i.Event.Location)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Event.Title }

type KeyMap struct {
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
	}
}

// Model lists the events visible in the current window
type Model struct {
	list list.Model
	keys KeyMap
}

func New(events []models.Event, width, height int) Model {
	l := list.New(items(events), list.NewDefaultDelegate(), width, height)
	l.Title = "Agenda"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(events []models.Event) []list.Item {
	out := make([]list.Item, len(events))
	for i, e := range events {
		out[i] = Item{Event: e}
	}
	return out
}

func (m *Model) SetEvents(events []models.Event) {
	m.list.SetItems(items(events))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Delete) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEventMsg{Event: i.Event} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing scheduled in this window.\n  Press 'a' to add an event."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
