package render

import (
	"html"
	"time"

	"github.com/sadopc/playtally/internal/dashboard"
)

const calendarHeader = 40

// Calendar draws the month grid, one square per day shaded by its count.
func Calendar(st dashboard.State, style Style) string {
	cell := float64(style.CellSize)
	if cell <= 0 {
		cell = 36
	}
	gap := 3.0
	width := 7*(cell+gap) + gap

	if msg := st.Placeholder(); msg != "" {
		return placeholder(width, calendarHeader+5*(cell+gap), msg, style)
	}

	g := st.Calendar
	height := calendarHeader + float64(g.Rows)*(cell+gap) + gap
	w := newSVG(width, height, style)
	w.text(width/2, 16, "middle", g.Title())
	for d := 0; d < 7; d++ {
		x := gap + float64(d)*(cell+gap) + cell/2
		w.text(x, calendarHeader-8, "middle", time.Weekday(d).String()[:3])
	}

	for _, c := range g.Cells {
		x := gap + float64(c.Col)*(cell+gap)
		y := calendarHeader + float64(c.Row)*(cell+gap)
		w.printf(`  <rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s" data-day="%d" data-count="%d">`+"\n",
			num(x), num(y), num(cell), num(cell), st.Heat.Color(c.Count), c.Day, c.Count)
		w.printf("    <title>%s %d: %d</title>\n", html.EscapeString(g.Title()), c.Day, c.Count)
		w.sb.WriteString("  </rect>\n")
		w.printf(`  <text x="%s" y="%s">%d</text>`+"\n", num(x+3), num(y+12), c.Day)
	}
	return w.close()
}
