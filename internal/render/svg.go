// Package render paints dashboard state as standalone SVG charts and an HTML page.
// All geometry comes from the layout package; this package only writes markup.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/sadopc/playtally/internal/config"
)

// Style holds the colours and sizes the charts are painted with.
type Style struct {
	Palette    []string
	Bar        string
	Line       string
	Axis       string
	Text       string
	FontFamily string
	FontSize   int
	CellSize   int
}

// StyleFromConfig maps the colour and chart sections of the config file.
func StyleFromConfig(c config.Config) Style {
	return Style{
		Palette:    c.Colors.Palette,
		Bar:        c.Colors.Bar,
		Line:       c.Colors.Line,
		Axis:       "#999999",
		Text:       "#333333",
		FontFamily: "sans-serif",
		FontSize:   11,
		CellSize:   c.Charts.CellSize,
	}
}

func DefaultStyle() Style {
	return StyleFromConfig(config.Default())
}

func (s Style) color(i int) string {
	if len(s.Palette) == 0 {
		return s.Bar
	}
	return s.Palette[i%len(s.Palette)]
}

type svgWriter struct {
	sb    strings.Builder
	style Style
}

func newSVG(width, height float64, style Style) *svgWriter {
	w := &svgWriter{style: style}
	w.printf(`<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n",
		num(width), num(height), num(width), num(height))
	w.printf(`  <style>text{font-family:%s;font-size:%dpx;fill:%s}</style>`+"\n",
		style.FontFamily, style.FontSize, style.Text)
	return w
}

func (w *svgWriter) printf(format string, args ...any) {
	fmt.Fprintf(&w.sb, format, args...)
}

func (w *svgWriter) text(x, y float64, anchor, s string) {
	w.printf(`  <text x="%s" y="%s" text-anchor="%s">%s</text>`+"\n", num(x), num(y), anchor, html.EscapeString(s))
}

func (w *svgWriter) close() string {
	w.sb.WriteString("</svg>\n")
	return w.sb.String()
}

// placeholder is a chart-sized SVG carrying only a message.
func placeholder(width, height float64, msg string, style Style) string {
	w := newSVG(width, height, style)
	w.text(width/2, height/2, "middle", msg)
	return w.close()
}

// num prints coordinates with two decimals and no trailing zeros.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
