package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/playtally/internal/dashboard"
)

const calendarCellWidth = 5

type calendarModel struct {
	width  int
	height int
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c calendarModel) view(st dashboard.State) string {
	w := c.width - 4
	if msg := st.Placeholder(); msg != "" {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Calendar"),
			mutedStyle.Render(msg),
		))
	}

	g := st.Calendar
	rows := []string{
		titleStyle.Render(g.Title()) + "  " + mutedStyle.Render(fmt.Sprintf("busiest day: %d", g.MaxCount)),
		"",
	}

	var head strings.Builder
	for d := 0; d < 7; d++ {
		head.WriteString(lipgloss.NewStyle().Width(calendarCellWidth).Render(time.Weekday(d).String()[:2]))
	}
	rows = append(rows, mutedStyle.Render(head.String()))

	grid := make([][]string, g.Rows)
	blank := lipgloss.NewStyle().Width(calendarCellWidth).Render("")
	for r := range grid {
		grid[r] = make([]string, 7)
		for col := range grid[r] {
			grid[r][col] = blank
		}
	}
	for _, cell := range g.Cells {
		style := lipgloss.NewStyle().
			Width(calendarCellWidth - 1).
			Align(lipgloss.Right).
			Background(lipgloss.Color(st.Heat.Color(cell.Count))).
			Foreground(lipgloss.Color("#000000"))
		grid[cell.Row][cell.Col] = style.Render(fmt.Sprint(cell.Day)) + " "
	}
	for _, r := range grid {
		rows = append(rows, strings.Join(r, ""))
	}

	rows = append(rows, "", c.renderLegend(st))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c calendarModel) renderLegend(st dashboard.State) string {
	top := st.Heat.Max()
	steps := []int{0, top / 4, top / 2, 3 * top / 4, top}
	var parts []string
	for _, n := range steps {
		sw := lipgloss.NewStyle().Background(lipgloss.Color(st.Heat.Color(n))).Render("  ")
		parts = append(parts, sw)
	}
	return mutedStyle.Render("less ") + strings.Join(parts, "") + mutedStyle.Render(" more")
}
