package layout

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HeatScale interpolates linearly between two colours over [0, Max].
type HeatScale struct {
	low, high colorful.Color
	max       int
}

// NewHeatScale parses two hex colours. A max below 1 is raised to 1 so an all-zero
// month still maps to the low colour.
func NewHeatScale(low, high string, max int) (HeatScale, error) {
	lo, err := colorful.Hex(low)
	if err != nil {
		return HeatScale{}, fmt.Errorf("parse heat colour %q: %w", low, err)
	}
	hi, err := colorful.Hex(high)
	if err != nil {
		return HeatScale{}, fmt.Errorf("parse heat colour %q: %w", high, err)
	}
	if max < 1 {
		max = 1
	}
	return HeatScale{low: lo, high: hi, max: max}, nil
}

func (h HeatScale) Max() int { return h.max }

// Color returns the hex colour for count, clamped to the scale.
func (h HeatScale) Color(count int) string {
	t := float64(count) / float64(h.max)
	t = min(max(t, 0), 1)
	return h.low.BlendRgb(h.high, t).Clamped().Hex()
}
