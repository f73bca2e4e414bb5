package render

import (
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/sadopc/playtally/internal/dashboard"
)

const tickCount = 5

// Daily draws per-day count bars on the left axis and the cumulative total line on
// the right axis. Each band carries a hover overlay titled with the day's label.
func Daily(st dashboard.State, style Style) string {
	a := st.Axis.Area
	if msg := st.Placeholder(); msg != "" {
		return placeholder(a.Width, a.Height, msg, style)
	}

	w := newSVG(a.Width, a.Height, style)
	left, right := a.PlotLeft(), a.PlotRight()
	top, bottom := a.PlotTop(), a.PlotBottom()

	// Axes
	w.printf(`  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n", num(left), num(bottom), num(right), num(bottom), style.Axis)
	w.printf(`  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n", num(left), num(top), num(left), num(bottom), style.Axis)
	w.printf(`  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n", num(right), num(top), num(right), num(bottom), style.Axis)
	for _, t := range st.Axis.Bars.IntegerTicks(tickCount) {
		y := st.Axis.Bars.Map(t)
		w.printf(`  <text x="%s" y="%s" dy="0.35em" text-anchor="end" fill="%s">%s</text>`+"\n",
			num(left-6), num(y), style.Bar, tickLabel(t))
	}
	for _, t := range st.Axis.Line.IntegerTicks(tickCount) {
		y := st.Axis.Line.Map(t)
		w.printf(`  <text x="%s" y="%s" dy="0.35em" text-anchor="start" fill="%s">%s</text>`+"\n",
			num(right+6), num(y), style.Line, tickLabel(t))
	}

	// Day labels, thinned so they do not collide.
	n := st.Axis.X.Len()
	every := int(math.Ceil(float64(n) / 12))
	for i, d := range st.Days {
		if i%every != 0 && i != n-1 {
			continue
		}
		w.text(st.Axis.X.Center(i), bottom+16, "middle", strconv.Itoa(d.DayIndex))
	}

	for _, b := range st.Axis.BarRects() {
		w.printf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" data-day="%d"/>`+"\n",
			num(b.X), num(b.Y), num(b.Width), num(b.Height), style.Bar, b.DayIndex)
	}

	pts := st.Axis.LinePoints()
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = num(p.X) + "," + num(p.Y)
	}
	w.printf(`  <polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", strings.Join(coords, " "), style.Line)
	for _, p := range pts {
		w.printf(`  <circle cx="%s" cy="%s" r="2.5" fill="%s"/>`+"\n", num(p.X), num(p.Y), style.Line)
	}

	// Hover overlay: one full-step strip per day.
	step := st.Axis.X.Step()
	for i := range st.Days {
		h, ok := st.HoverAt(i)
		if !ok {
			continue
		}
		x := st.Axis.X.Center(i) - step/2
		w.printf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="transparent" data-index="%d">`+"\n",
			num(x), num(top), num(step), num(bottom-top), i)
		w.printf("    <title>%s</title>\n", html.EscapeString(h.String()))
		w.sb.WriteString("  </rect>\n")
	}
	return w.close()
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
