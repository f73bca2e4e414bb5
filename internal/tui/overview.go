package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/store"
)

type overviewModel struct {
	width  int
	height int
	latest *store.Import
}

func (o *overviewModel) setSize(w, h int) {
	o.width = w
	o.height = h
}

func (o overviewModel) view(st dashboard.State) string {
	if o.width < 20 {
		return "Terminal too small"
	}
	w := o.width - 4

	summary := o.renderSummaryPanel(st, w)
	if msg := st.Placeholder(); msg != "" {
		return summary
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, o.renderCategoryPanel(st, w))
}

func (o overviewModel) renderSummaryPanel(st dashboard.State, w int) string {
	title := titleStyle.Render("Overview")
	who := highlightStyle.Render(st.Participant)
	header := fmt.Sprintf("%s  %s", title, who)

	if msg := st.Placeholder(); msg != "" {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render(msg),
		))
	}

	line := fmt.Sprintf("%s games  %s categories  %s days  %s to %s",
		highlightStyle.Render(fmt.Sprint(st.Total())),
		highlightStyle.Render(fmt.Sprint(len(st.Categories))),
		highlightStyle.Render(fmt.Sprint(len(st.Days))),
		st.First.Format(), st.Last.Format(),
	)
	rows := []string{header, line}
	if o.latest != nil {
		rows = append(rows, mutedStyle.Render(o.latest.Summary()))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderCategoryPanel draws the donut as proportional bars in slice order. Only
// slices that clear the label threshold are named; the rest share one muted line.
func (o overviewModel) renderCategoryPanel(st dashboard.State, w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Games"))

	barWidth := max(w-40, 10)
	maxValue := 0
	for _, s := range st.Slices {
		maxValue = max(maxValue, s.Value)
	}

	hidden, hiddenCount := 0, 0
	for i, s := range st.Slices {
		if s.LabelElbow == nil {
			hidden++
			hiddenCount += s.Value
			continue
		}
		color := lipgloss.Color(paletteColor(i))
		rows = append(rows, fmt.Sprintf("  %-18s %s %5d %7s",
			truncate(s.Key, 18),
			lipgloss.NewStyle().Foreground(color).Render(bar(s.Value, maxValue, barWidth)),
			s.Value,
			percent(s.Share()),
		))
	}
	if hidden > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d more too small to label (%d games)", hidden, hiddenCount)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
