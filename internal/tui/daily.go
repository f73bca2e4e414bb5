package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/layout"
)

// chartOffsetX is the column of the first chart cell: panel border plus padding.
const chartOffsetX = 3

// dailyModel shows per-day counts as bars with the cumulative total as a sparkline
// underneath. The cursor is the hovered day; it follows arrow keys and the mouse.
type dailyModel struct {
	width  int
	height int

	cursor int // index into State.Days
	lo, hi int // visible window of State.Days
	band   layout.BandScale

	chart barchart.Model
	line  sparkline.Model
}

func newDailyModel() dailyModel {
	return dailyModel{
		chart: barchart.New(60, 12),
		line:  sparkline.New(60, 3),
	}
}

func (d *dailyModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dailyModel) chartSize() (int, int) {
	w := max(d.width-8, 20)
	h := 12
	if d.height > 30 {
		h = 16
	}
	return w, h
}

// barGap is the number of blank columns between two bars.
const barGap = 1

// reset puts the cursor on the last day and rebuilds the charts around it.
func (d dailyModel) reset(st dashboard.State) dailyModel {
	d.cursor = max(len(st.Days)-1, 0)
	d.lo, d.hi = 0, 0
	d.build(st)
	return d
}

func (d dailyModel) update(msg tea.Msg, st dashboard.State) (dailyModel, tea.Cmd) {
	if len(st.Days) == 0 {
		return d, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			d.cursor = max(d.cursor-1, 0)
		case key.Matches(msg, keys.Right):
			d.cursor = min(d.cursor+1, len(st.Days)-1)
		case key.Matches(msg, keys.Home):
			d.cursor = 0
		case key.Matches(msg, keys.End):
			d.cursor = len(st.Days) - 1
		default:
			return d, nil
		}
		d.build(st)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			return d, nil
		}
		// The pointer only picks among the visible bars, so the window stays put.
		d.cursor = d.hover(msg.X)
		d.build(st)
	}
	return d, nil
}

// hover maps a terminal column to the nearest visible day. Columns are sampled at
// their midpoint.
func (d dailyModel) hover(x int) int {
	i := layout.ResolveHover(d.band, float64(x-chartOffsetX)+0.5)
	if i < 0 {
		return d.cursor
	}
	return d.lo + i
}

// barWidth matches the width the bar chart gives n bars across w columns.
func barWidth(w, n int) int {
	if n <= 0 {
		return 1
	}
	return max((w-barGap*(n-1))/n, 1)
}

// build draws the visible window of days. The window only moves when the cursor
// leaves it, and then re-centres on the cursor.
func (d *dailyModel) build(st dashboard.State) {
	w, h := d.chartSize()
	d.line = sparkline.New(w, 3)

	n := len(st.Days)
	if n == 0 {
		d.lo, d.hi = 0, 0
		d.chart = barchart.New(w, h)
		d.band = layout.NewFixedBandScale(nil, 0, 1+barGap, 1)
		return
	}
	d.cursor = min(max(d.cursor, 0), n-1)
	visible := max((w+barGap)/(1+barGap), 1)
	if d.hi == 0 || d.cursor < d.lo || d.cursor >= d.lo+visible {
		d.lo = d.cursor - visible/2
	}
	d.lo = min(max(d.lo, 0), max(n-visible, 0))
	d.hi = min(d.lo+visible, n)

	bw := barWidth(w, d.hi-d.lo)
	d.chart = barchart.New(w, h,
		barchart.WithBarWidth(bw),
		barchart.WithBarGap(barGap),
		barchart.WithNoAutoBarWidth(),
	)

	domain := make([]int, 0, d.hi-d.lo)
	bars := make([]barchart.BarData, 0, d.hi-d.lo)
	totals := make([]float64, 0, d.hi-d.lo)
	for i := d.lo; i < d.hi; i++ {
		day := st.Days[i]
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if i == d.cursor {
			style = lipgloss.NewStyle().Foreground(colorAccent)
		}
		bars = append(bars, barchart.BarData{
			Values: []barchart.BarValue{{Name: day.Date.Short(), Value: float64(day.Count), Style: style}},
		})
		domain = append(domain, day.DayIndex)
		totals = append(totals, float64(st.Cumulative[i].Total))
	}
	d.band = layout.NewFixedBandScale(domain, 0, float64(bw+barGap), float64(bw))

	d.chart.PushAll(bars)
	d.chart.Draw()
	d.line.PushAll(totals)
	d.line.Draw()
}

func (d dailyModel) view(st dashboard.State) string {
	w := d.width - 4
	title := titleStyle.Render("Daily")

	if msg := st.Placeholder(); msg != "" {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render(msg)))
	}

	label := ""
	if h, ok := st.HoverAt(d.cursor); ok {
		label = highlightStyle.Render(h.String())
	}
	window := ""
	if d.lo < d.hi && d.hi <= len(st.Days) {
		window = mutedStyle.Render(fmt.Sprintf("days %d-%d of %d", st.Days[d.lo].DayIndex, st.Days[d.hi-1].DayIndex, len(st.Days)))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", label)

	line := lipgloss.NewStyle().Foreground(colorSecondary).Render(d.line.View())
	nav := mutedStyle.Render("  ←/→: move  g/G: first/last  mouse: hover")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, window, "", d.chart.View(), "", mutedStyle.Render("cumulative"), line, "", nav,
		),
	)
}
