package timetable

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model scrolls a rendered grid inside a viewport
type Model struct {
	viewport viewport.Model
	content  string
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.content == "" {
		return "Nothing to show."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// SetContent replaces the grid and scrolls back to the top
func (m *Model) SetContent(content string) {
	m.content = content
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m Model) Content() string {
	return m.content
}
