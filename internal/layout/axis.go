package layout

import "github.com/sadopc/playtally/internal/stats"

// Area is the drawing area of a chart; the plot is what remains inside the margins.
type Area struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
}

func (a Area) PlotLeft() float64   { return a.MarginLeft }
func (a Area) PlotRight() float64  { return a.Width - a.MarginRight }
func (a Area) PlotTop() float64    { return a.MarginTop }
func (a Area) PlotBottom() float64 { return a.Height - a.MarginBottom }

// Bar is one daily count rectangle.
type Bar struct {
	DayIndex int     `json:"day_index"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// DualAxis shares one band axis between daily count bars (left axis) and a
// cumulative total line (right axis).
type DualAxis struct {
	Area       Area
	X          BandScale
	Bars       LinearScale
	Line       LinearScale
	days       []stats.DayBucket
	cumulative []stats.CumulativeBucket
}

// NewDualAxis builds the three scales. days and cumulative must be parallel.
func NewDualAxis(days []stats.DayBucket, cumulative []stats.CumulativeBucket, area Area, padding float64) DualAxis {
	domain := make([]int, len(days))
	for i, d := range days {
		domain[i] = d.DayIndex
	}
	return DualAxis{
		Area:       area,
		X:          NewBandScale(domain, area.PlotLeft(), area.PlotRight(), padding),
		Bars:       NewLinearScale(float64(stats.MaxCount(days)), area.PlotBottom(), area.PlotTop()),
		Line:       NewLinearScale(float64(stats.MaxTotal(cumulative)), area.PlotBottom(), area.PlotTop()),
		days:       days,
		cumulative: cumulative,
	}
}

// BarRects returns one rectangle per day; zero-count days get zero height.
func (d DualAxis) BarRects() []Bar {
	out := make([]Bar, len(d.days))
	base := d.Bars.Map(0)
	for i, b := range d.days {
		top := d.Bars.Map(float64(b.Count))
		out[i] = Bar{
			DayIndex: b.DayIndex,
			X:        d.X.At(i),
			Y:        top,
			Width:    d.X.Bandwidth(),
			Height:   base - top,
		}
	}
	return out
}

// LinePoints returns the cumulative line vertices at band centres.
func (d DualAxis) LinePoints() []Point {
	out := make([]Point, len(d.cumulative))
	for i, c := range d.cumulative {
		out[i] = Point{X: d.X.Center(i), Y: d.Line.Map(float64(c.Total))}
	}
	return out
}

// Resolve returns the index of the day nearest to pointerX, or -1 with no days.
func (d DualAxis) Resolve(pointerX float64) int {
	return ResolveHover(d.X, pointerX)
}
