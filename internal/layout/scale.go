package layout

import "math"

// BandScale maps an ordinal domain of day indexes onto evenly spaced bands in
// [Start, Stop]. Padding is the fraction of each step left empty, applied between
// bands and at both outer edges.
type BandScale struct {
	domain  []int
	index   map[int]int
	start   float64
	step    float64
	band    float64
	padding float64
}

// NewBandScale builds a band scale. Padding is clamped to [0, 1).
func NewBandScale(domain []int, start, stop, padding float64) BandScale {
	padding = math.Max(0, math.Min(padding, 0.99))
	s := BandScale{
		domain:  append([]int(nil), domain...),
		index:   make(map[int]int, len(domain)),
		padding: padding,
	}
	for i, d := range domain {
		if _, ok := s.index[d]; !ok {
			s.index[d] = i
		}
	}
	n := float64(len(domain))
	s.step = (stop - start) / math.Max(1, n-padding+2*padding)
	s.band = s.step * (1 - padding)
	// Centre the bands inside the range.
	s.start = start + (stop-start-s.step*(n-padding))/2
	return s
}

// NewFixedBandScale lays out bands of a fixed width one step apart from start, for
// surfaces whose bar geometry is decided by the renderer.
func NewFixedBandScale(domain []int, start, step, bandwidth float64) BandScale {
	s := BandScale{
		domain: append([]int(nil), domain...),
		index:  make(map[int]int, len(domain)),
		start:  start,
		step:   step,
		band:   bandwidth,
	}
	if step > 0 {
		s.padding = 1 - bandwidth/step
	}
	for i, d := range domain {
		if _, ok := s.index[d]; !ok {
			s.index[d] = i
		}
	}
	return s
}

func (s BandScale) Domain() []int      { return s.domain }
func (s BandScale) Step() float64      { return s.step }
func (s BandScale) Bandwidth() float64 { return s.band }
func (s BandScale) Len() int           { return len(s.domain) }

// Position returns the left edge of the band for v.
func (s BandScale) Position(v int) (float64, bool) {
	i, ok := s.index[v]
	if !ok {
		return 0, false
	}
	return s.At(i), true
}

// At returns the left edge of the i-th band.
func (s BandScale) At(i int) float64 {
	return s.start + s.step*float64(i)
}

// Center returns the midpoint of the i-th band.
func (s BandScale) Center(i int) float64 {
	return s.At(i) + s.band/2
}

// Centers lists every band midpoint, ascending.
func (s BandScale) Centers() []float64 {
	out := make([]float64, len(s.domain))
	for i := range s.domain {
		out[i] = s.Center(i)
	}
	return out
}

// LinearScale maps [0, Max] onto [R0, R1]. Vertical scales pass R0 > R1 so that
// zero sits at the bottom of the plot.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinearScale builds a niced scale over [0, max]. A max of zero or less is
// treated as 1 so the scale never divides by zero.
func NewLinearScale(max, r0, r1 float64) LinearScale {
	if max <= 0 {
		max = 1
	}
	return LinearScale{D0: 0, D1: max, R0: r0, R1: r1}.Nice(10)
}

// Map converts a domain value to the range.
func (s LinearScale) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Nice extends the domain to round tick boundaries.
func (s LinearScale) Nice(count int) LinearScale {
	start, stop := s.D0, s.D1
	prev := 0.0
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, count)
		if step == prev {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s
		}
		prev = step
	}
	s.D0, s.D1 = start, stop
	return s
}

// Ticks returns round values inside the domain, about count of them.
func (s LinearScale) Ticks(count int) []float64 {
	inc := tickIncrement(s.D0, s.D1, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}
	var out []float64
	if inc > 0 {
		lo, hi := math.Ceil(s.D0/inc), math.Floor(s.D1/inc)
		for k := lo; k <= hi; k++ {
			out = append(out, k*inc)
		}
		return out
	}
	inv := -inc
	lo, hi := math.Ceil(s.D0*inv), math.Floor(s.D1*inv)
	for k := lo; k <= hi; k++ {
		out = append(out, k/inv)
	}
	return out
}

// IntegerTicks is Ticks without the fractional values, for axes that count things.
func (s LinearScale) IntegerTicks(count int) []float64 {
	out := []float64{}
	for _, t := range s.Ticks(count) {
		if t == math.Trunc(t) {
			out = append(out, t)
		}
	}
	return out
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a 1, 2 or 5 times power-of-ten step. Negative values encode
// the reciprocal of a fractional step so that callers can divide instead of
// multiplying by an inexact float.
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || stop <= start {
		return 0
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
