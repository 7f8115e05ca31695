// Package render draws timetable grids as terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timetable/internal/grid"
	"github.com/julianstephens/timetable/internal/models"
)

const (
	DefaultColumnWidth = 18
	MinColumnWidth     = 8
	labelWidth         = 9
	monthItemsPerCell  = 3
)

// Grid renders g with the default column width
func Grid[E any](g *grid.Grid[E], cfg models.TimetableConfig) string {
	return GridWidth(g, cfg, 0)
}

// GridWidth renders g so that it fits into width terminal columns.
// A width of zero uses DefaultColumnWidth for every column.
func GridWidth[E any](g *grid.Grid[E], cfg models.TimetableConfig, width int) string {
	if g == nil {
		return ""
	}
	if len(g.Columns) == 0 {
		return titleStyle.Render(g.Title) + "\n" + labelStyle.Render("Nothing to show.")
	}

	var body string
	if g.DisplayType == models.DisplayMonth {
		body = monthBody(g, columnWidth(width, len(g.Columns), 0))
	} else {
		body = timedBody(g, columnWidth(width, len(g.Columns), labelWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(g.Title), body)
}

func columnWidth(total, columns, reserved int) int {
	if total <= 0 {
		return DefaultColumnWidth
	}
	return max((total-reserved)/columns, MinColumnWidth)
}

// timedBody draws the day and week layout: a header row for all-day and multi-day
// events followed by one row per slot.
func timedBody[E any](g *grid.Grid[E], width int) string {
	headerRows := 1
	for _, col := range g.Columns {
		headerRows = max(headerRows, len(col.Cells[0].Items))
	}

	labels := []string{"", labelStyle.Render("all-day")}
	for range headerRows - 1 {
		labels = append(labels, "")
	}
	for _, cell := range g.Columns[0].Cells[1:] {
		labels = append(labels, labelStyle.Render(cell.Title))
	}

	blocks := []string{lipgloss.NewStyle().Width(labelWidth).Render(strings.Join(labels, "\n"))}
	for _, col := range g.Columns {
		blocks = append(blocks, timedColumn(col, headerRows, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func timedColumn[E any](col *grid.Column[E], headerRows, width int) string {
	disabled := col.Cells[0].Type == grid.CellDisabled
	style := func(s lipgloss.Style) lipgloss.Style {
		if disabled {
			return disabledStyle
		}
		return s
	}

	lines := []string{style(columnTitleStyle).Render(truncate(col.Title, width-1))}
	header := col.Cells[0].Items
	for i := range headerRows {
		if i < len(header) {
			lines = append(lines, style(itemStyle).Render(truncate(itemLabel(header[i], "d"), width-1)))
		} else {
			lines = append(lines, "")
		}
	}

	remaining := 0
	for _, cell := range col.Cells[1:] {
		switch {
		case len(cell.Items) > 0:
			text := cell.Items[0].Event.Title()
			if extra := len(cell.Items) - 1; extra > 0 {
				text = fmt.Sprintf("%s +%d", text, extra)
			}
			lines = append(lines, style(itemStyle).Render(truncate(text, width-1)))
			for _, item := range cell.Items {
				remaining = max(remaining, item.Span-1)
			}
		case remaining > 0:
			lines = append(lines, style(continuationStyle).Render("│"))
			remaining--
		case disabled:
			lines = append(lines, disabledStyle.Render("·"))
		default:
			lines = append(lines, "")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// monthBody draws one block per week row with the day number on top of each cell
func monthBody[E any](g *grid.Grid[E], width int) string {
	titles := make([]string, len(g.Columns))
	for i, col := range g.Columns {
		titles[i] = lipgloss.NewStyle().Width(width).Render(columnTitleStyle.Render(col.Title))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, titles...)}

	for r := range g.Rows() {
		height := 1
		for _, col := range g.Columns {
			height = max(height, 1+min(len(col.Cells[r].Items), monthItemsPerCell+1))
		}
		cells := make([]string, len(g.Columns))
		for i, col := range g.Columns {
			cells[i] = monthCell(col.Cells[r], width, height)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func monthCell[E any](cell *grid.Cell[E], width, height int) string {
	if cell.Type != grid.CellNormal {
		return lipgloss.NewStyle().Width(width).Height(height).Render(disabledStyle.Render(cell.Title))
	}

	lines := []string{columnTitleStyle.Render(cell.Title)}
	for i, item := range cell.Items {
		if i == monthItemsPerCell {
			lines = append(lines, labelStyle.Render(fmt.Sprintf("+%d more", len(cell.Items)-i)))
			break
		}
		lines = append(lines, itemStyle.Render(truncate(itemLabel(item, "d"), width-1)))
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func itemLabel[E any](item *grid.CellItem[E], unit string) string {
	if item.Span > 1 {
		return fmt.Sprintf("%s (%d%s)", item.Event.Title(), item.Span, unit)
	}
	return item.Event.Title()
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
