package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timetable/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateGrid:
		content = m.timetable.View()
	case StateAgenda:
		content = docStyle.Render(m.agenda.View())
	case StateAdding:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		statusStyle.Render(m.status),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	views := []struct {
		title string
		dt    models.DisplayType
	}{
		{"Day", models.DisplayDay},
		{"Week", models.DisplayWeek},
		{"Month", models.DisplayMonth},
	}
	for _, v := range views {
		if m.manager.DisplayType != v.dt {
			tabs = append(tabs, inactiveTabStyle.Render(v.title))
			continue
		}
		title := v.title
		if m.state == StateAgenda {
			title += " agenda"
		}
		tabs = append(tabs, activeTabStyle.Render(title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	lines := []string{dangerStyle.Render("Delete \"" + m.pendingDelete.Title + "\"?"), ""}
	if m.pendingDelete.GroupID != nil {
		lines = append(lines, "[y] This and following", "[s] Only this one")
	} else {
		lines = append(lines, "[y] Yes")
	}
	lines = append(lines, "[n] No")

	return lipgloss.Place(m.width, max(m.height-chrome, len(lines)),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}
