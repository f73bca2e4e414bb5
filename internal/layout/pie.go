// Package layout computes chart geometry: donut slices, calendar grid cells and
// dual-axis scales. Nothing here draws; the render and tui packages paint the output.
package layout

import (
	"errors"
	"math"

	"github.com/sadopc/playtally/internal/stats"
)

// ErrEmptyPie is returned when there is nothing to lay out.
var ErrEmptyPie = errors.New("pie: no values")

// Point is a position relative to the chart centre (pie) or origin (grids, axes).
// Y grows downwards as in SVG.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PieOptions sizes the donut relative to Radius.
type PieOptions struct {
	Radius         float64
	InnerRatio     float64
	OuterRatio     float64
	GuideRatio     float64 // circle the leader line bends on
	LabelRatio     float64 // horizontal offset of the label anchor
	LabelThreshold float64 // minimum share of the total that gets a label
}

// DefaultPieOptions matches the stock donut: hole at 50%, ring to 80%, leader lines
// bending at 90% and labels at 95% of the radius, 1% label threshold.
func DefaultPieOptions(radius float64) PieOptions {
	return PieOptions{
		Radius:         radius,
		InnerRatio:     0.5,
		OuterRatio:     0.8,
		GuideRatio:     0.9,
		LabelRatio:     0.95,
		LabelThreshold: 0.01,
	}
}

// Slice is the geometry of one donut segment. Angles are radians clockwise from
// twelve o'clock.
type Slice struct {
	Key         string    `json:"key"`
	Value       int       `json:"value"`
	StartAngle  float64   `json:"start_angle"`
	EndAngle    float64   `json:"end_angle"`
	InnerRadius float64   `json:"inner_radius"`
	OuterRadius float64   `json:"outer_radius"`
	LabelElbow  *[3]Point `json:"label_elbow,omitempty"`
}

func (s Slice) MidAngle() float64 { return (s.StartAngle + s.EndAngle) / 2 }

// Share is the fraction of the full turn the slice covers.
func (s Slice) Share() float64 { return (s.EndAngle - s.StartAngle) / (2 * math.Pi) }

// LabelAnchor is the SVG text-anchor for the slice label: labels on the right half
// read outwards from their anchor, labels on the left half end at it.
func (s Slice) LabelAnchor() string {
	if s.MidAngle() < math.Pi {
		return "start"
	}
	return "end"
}

// Centroid is the middle of the ring segment.
func (s Slice) Centroid() Point {
	return Polar((s.InnerRadius+s.OuterRadius)/2, s.MidAngle())
}

// LayoutPie assigns each count a contiguous angular span proportional to its value,
// keeping the input order.
func LayoutPie(counts []stats.Count, opts PieOptions) ([]Slice, error) {
	total := stats.Total(counts)
	if len(counts) == 0 || total <= 0 {
		return nil, ErrEmptyPie
	}
	inner := opts.Radius * opts.InnerRatio
	outer := opts.Radius * opts.OuterRatio
	guide := opts.Radius * opts.GuideRatio
	labelX := opts.Radius * opts.LabelRatio

	slices := make([]Slice, len(counts))
	angle := 0.0
	for i, c := range counts {
		share := float64(c.Value) / float64(total)
		end := angle + share*2*math.Pi
		if i == len(counts)-1 {
			end = 2 * math.Pi
		}
		s := Slice{
			Key:         c.Key,
			Value:       c.Value,
			StartAngle:  angle,
			EndAngle:    end,
			InnerRadius: inner,
			OuterRadius: outer,
		}
		if share >= opts.LabelThreshold {
			mid := s.MidAngle()
			a := s.Centroid()
			b := Polar(guide, mid)
			c := Point{X: labelX, Y: b.Y}
			if mid >= math.Pi {
				c.X = -labelX
			}
			s.LabelElbow = &[3]Point{a, b, c}
		}
		slices[i] = s
		angle = end
	}
	return slices, nil
}

// SliceAt returns the index of the slice containing angle (radians, clockwise from
// twelve o'clock), or -1 if there are no slices.
func SliceAt(slices []Slice, angle float64) int {
	if len(slices) == 0 {
		return -1
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	i := BisectRight(slices, func(s Slice) float64 { return s.EndAngle }, angle)
	return min(i, len(slices)-1)
}

// AngleOf converts an offset from the centre into a clockwise-from-north angle.
func AngleOf(p Point) float64 {
	a := math.Atan2(p.X, -p.Y)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Polar converts a radius and clockwise-from-north angle to a point.
func Polar(r, angle float64) Point {
	return Point{X: r * math.Sin(angle), Y: -r * math.Cos(angle)}
}
