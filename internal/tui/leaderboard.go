package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/stats"
)

type leaderboardModel struct {
	width  int
	height int
}

func (l *leaderboardModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l leaderboardModel) view(st dashboard.State) string {
	w := l.width - 4
	title := titleStyle.Render("Leaderboard")
	if msg := st.Placeholder(); msg != "" {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render(msg)))
	}

	half := max((w-6)/2, 24)
	left := renderRanking("Games played", "games", st.ByEntries, half)
	right := renderRanking("Days played", "days", st.ByDays, half)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "",
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
	))
}

func renderRanking(title, unit string, counts []stats.Count, w int) string {
	rows := []string{
		subtitleStyle.Render(title),
		mutedStyle.Render(fmt.Sprintf("%-4s %-16s %8s", "#", "Participant", unit)),
		mutedStyle.Render(strings.Repeat("─", min(w, 30))),
	}
	for i, c := range counts {
		style := normalItemStyle
		if i == 0 {
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%-4d %-16s %8d", i+1, truncate(c.Key, 16), c.Value)))
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(rows, "\n"))
}
