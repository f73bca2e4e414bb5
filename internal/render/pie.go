package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/layout"
)

// labelGutter is the horizontal room left on each side of the ring for labels.
const labelGutter = 90

// Pie draws the category donut with leader lines for slices that clear the label
// threshold.
func Pie(st dashboard.State, radius float64, style Style) string {
	width, height := 2*(radius+labelGutter), 2*radius+20
	if msg := st.Placeholder(); msg != "" {
		return placeholder(width, height, msg, style)
	}

	w := newSVG(width, height, style)
	w.printf(`  <g transform="translate(%s,%s)">`+"\n", num(width/2), num(height/2))
	for i, s := range st.Slices {
		w.printf(`    <path d="%s" fill="%s" stroke="#ffffff" stroke-width="1" data-key="%s">`+"\n",
			arcPath(s), style.color(i), html.EscapeString(s.Key))
		w.printf("      <title>%s: %d</title>\n", html.EscapeString(s.Key), s.Value)
		w.sb.WriteString("    </path>\n")
	}
	for _, s := range st.Slices {
		if s.LabelElbow == nil {
			continue
		}
		a, b, c := s.LabelElbow[0], s.LabelElbow[1], s.LabelElbow[2]
		w.printf(`    <polyline points="%s,%s %s,%s %s,%s" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
			num(a.X), num(a.Y), num(b.X), num(b.Y), num(c.X), num(c.Y), style.Axis)
		dx := 4.0
		if s.LabelAnchor() == "end" {
			dx = -4
		}
		w.printf(`    <text x="%s" y="%s" dy="0.35em" text-anchor="%s">%s (%d)</text>`+"\n",
			num(c.X+dx), num(c.Y), s.LabelAnchor(), html.EscapeString(s.Key), s.Value)
	}
	w.sb.WriteString("  </g>\n")
	return w.close()
}

// arcPath is the SVG path of one ring segment. A segment covering the whole turn is
// drawn as two half arcs because an arc with equal end points draws nothing.
func arcPath(s layout.Slice) string {
	span := s.EndAngle - s.StartAngle
	if span >= 2*math.Pi-1e-9 {
		mid := s.StartAngle + math.Pi
		return ringPath(s.InnerRadius, s.OuterRadius, s.StartAngle, mid) + " " +
			ringPath(s.InnerRadius, s.OuterRadius, mid, s.EndAngle)
	}
	return ringPath(s.InnerRadius, s.OuterRadius, s.StartAngle, s.EndAngle)
}

func ringPath(inner, outer, a0, a1 float64) string {
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	o0, o1 := layout.Polar(outer, a0), layout.Polar(outer, a1)
	i0, i1 := layout.Polar(inner, a0), layout.Polar(inner, a1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "M%s,%s", num(o0.X), num(o0.Y))
	fmt.Fprintf(&sb, "A%s,%s 0 %d 1 %s,%s", num(outer), num(outer), large, num(o1.X), num(o1.Y))
	fmt.Fprintf(&sb, "L%s,%s", num(i1.X), num(i1.Y))
	if inner > 0 {
		fmt.Fprintf(&sb, "A%s,%s 0 %d 0 %s,%s", num(inner), num(inner), large, num(i0.X), num(i0.Y))
	}
	sb.WriteString("Z")
	return sb.String()
}
