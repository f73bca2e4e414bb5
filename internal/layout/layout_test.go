package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/playtally/internal/entry"
	"github.com/sadopc/playtally/internal/stats"
)

const eps = 1e-9

// ============================================================
// Pie
// ============================================================

func TestLayoutPieScenario(t *testing.T) {
	slices, err := LayoutPie([]stats.Count{{Key: "Chess", Value: 2}, {Key: "Go", Value: 1}}, DefaultPieOptions(100))
	require.NoError(t, err)
	require.Len(t, slices, 2)

	assert.Equal(t, "Chess", slices[0].Key)
	assert.InDelta(t, 0, slices[0].StartAngle, eps)
	assert.InDelta(t, 4*math.Pi/3, slices[0].EndAngle, eps)
	assert.Equal(t, "Go", slices[1].Key)
	assert.InDelta(t, 4*math.Pi/3, slices[1].StartAngle, eps)
	assert.InDelta(t, 2*math.Pi, slices[1].EndAngle, eps)

	for _, s := range slices {
		require.NotNil(t, s.LabelElbow, s.Key)
		assert.InDelta(t, 50, s.InnerRadius, eps)
		assert.InDelta(t, 80, s.OuterRadius, eps)
	}
}

func TestLayoutPieElbowGeometry(t *testing.T) {
	slices, err := LayoutPie([]stats.Count{{Key: "Chess", Value: 2}, {Key: "Go", Value: 1}}, DefaultPieOptions(100))
	require.NoError(t, err)

	// Chess mid angle is 2π/3: right half, below centre.
	chess := slices[0].LabelElbow
	mid := 2 * math.Pi / 3
	assert.InDelta(t, 65*math.Sin(mid), chess[0].X, eps)
	assert.InDelta(t, -65*math.Cos(mid), chess[0].Y, eps)
	assert.InDelta(t, 90*math.Sin(mid), chess[1].X, eps)
	assert.InDelta(t, 95, chess[2].X, eps)
	assert.InDelta(t, chess[1].Y, chess[2].Y, eps)
	assert.Equal(t, "start", slices[0].LabelAnchor())

	// Go mid angle is 5π/3: left half, label routed to the left.
	goElbow := slices[1].LabelElbow
	assert.InDelta(t, -95, goElbow[2].X, eps)
	assert.Equal(t, "end", slices[1].LabelAnchor())
}

func TestLayoutPieThreshold(t *testing.T) {
	counts := []stats.Count{{Key: "big", Value: 990}, {Key: "tiny", Value: 9}, {Key: "edge", Value: 1}}
	opts := DefaultPieOptions(100)
	opts.LabelThreshold = 0.009

	slices, err := LayoutPie(counts, opts)
	require.NoError(t, err)
	assert.NotNil(t, slices[0].LabelElbow)
	assert.NotNil(t, slices[1].LabelElbow, "9/1000 meets a 0.9% threshold exactly")
	assert.Nil(t, slices[2].LabelElbow)
}

func TestLayoutPieFullTurnAndOrder(t *testing.T) {
	counts := []stats.Count{{Key: "a", Value: 3}, {Key: "b", Value: 7}, {Key: "c", Value: 7}, {Key: "d", Value: 1}, {Key: "e", Value: 11}, {Key: "f", Value: 2}}
	slices, err := LayoutPie(counts, DefaultPieOptions(40))
	require.NoError(t, err)

	sum := 0.0
	for i, s := range slices {
		assert.Equal(t, counts[i].Key, s.Key)
		sum += s.EndAngle - s.StartAngle
		if i > 0 {
			assert.InDelta(t, slices[i-1].EndAngle, s.StartAngle, eps)
		}
	}
	assert.InDelta(t, 2*math.Pi, sum, 1e-9)
}

func TestLayoutPieEmpty(t *testing.T) {
	_, err := LayoutPie(nil, DefaultPieOptions(10))
	assert.ErrorIs(t, err, ErrEmptyPie)
	_, err = LayoutPie([]stats.Count{{Key: "a", Value: 0}}, DefaultPieOptions(10))
	assert.ErrorIs(t, err, ErrEmptyPie)
}

func TestSliceAt(t *testing.T) {
	slices, err := LayoutPie([]stats.Count{{Key: "Chess", Value: 2}, {Key: "Go", Value: 1}}, DefaultPieOptions(100))
	require.NoError(t, err)

	assert.Equal(t, 0, SliceAt(slices, 0))
	assert.Equal(t, 0, SliceAt(slices, math.Pi))
	assert.Equal(t, 1, SliceAt(slices, 4*math.Pi/3+1e-6))
	assert.Equal(t, 1, SliceAt(slices, -0.1))
	assert.Equal(t, 0, SliceAt(slices, 2*math.Pi))
	assert.Equal(t, -1, SliceAt(nil, 1))

	// Directly left of centre is 3π/2, inside Go.
	assert.Equal(t, 1, SliceAt(slices, AngleOf(Point{X: -10, Y: 0})))
	assert.InDelta(t, math.Pi/2, AngleOf(Point{X: 10, Y: 0}), eps)
}

// ============================================================
// Calendar
// ============================================================

func TestLayoutMonthJanuary2025(t *testing.T) {
	// 1 January 2025 was a Wednesday.
	g := LayoutMonth(2025, 0, map[int]int{1: 2, 3: 1})
	assert.Equal(t, 3, g.StartWeekday)
	assert.Equal(t, 31, g.DaysInMonth)
	assert.Equal(t, 5, g.Rows)
	assert.Equal(t, 2, g.MaxCount)
	assert.Equal(t, "January 2025", g.Title())

	c, ok := g.Cell(1)
	require.True(t, ok)
	assert.Equal(t, CalendarCell{Day: 1, Row: 0, Col: 3, Count: 2}, c)
	c, _ = g.Cell(5)
	assert.Equal(t, CalendarCell{Day: 5, Row: 1, Col: 0, Count: 0}, c)
	_, ok = g.Cell(32)
	assert.False(t, ok)
}

func TestLayoutMonthCellsDistinct(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := 0; month < 12; month++ {
			g := LayoutMonth(year, month, nil)
			seen := make(map[[2]int]bool)
			for _, c := range g.Cells {
				key := [2]int{c.Row, c.Col}
				assert.False(t, seen[key], "duplicate cell %v", key)
				seen[key] = true
				assert.Equal(t, g.StartWeekday+c.Day-1, c.Row*7+c.Col)
				assert.Less(t, c.Row, g.Rows)
			}
			assert.Len(t, g.Cells, entry.DaysInMonth(year, month))
		}
	}
}

func TestLayoutMonthSixRows(t *testing.T) {
	// March 2025 starts on a Saturday: 6 + 31 slots need six rows.
	g := LayoutMonth(2025, 2, nil)
	assert.Equal(t, 6, g.StartWeekday)
	assert.Equal(t, 6, g.Rows)
}

func TestLayoutCalendarUsesEarliestMonth(t *testing.T) {
	entries := []entry.Entry{
		{Date: entry.CalendarDate{Year: 2025, Month: 1, Day: 2}},
		{Date: entry.CalendarDate{Year: 2025, Month: 0, Day: 30}},
		{Date: entry.CalendarDate{Year: 2025, Month: 0, Day: 30}},
	}
	g, err := LayoutCalendar(entries)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Month)
	c, _ := g.Cell(30)
	assert.Equal(t, 2, c.Count)
	c, _ = g.Cell(2)
	assert.Equal(t, 0, c.Count, "February entry is outside the displayed month")

	_, err = LayoutCalendar(nil)
	assert.ErrorIs(t, err, ErrNoCalendar)
}

func TestHeatScale(t *testing.T) {
	h, err := NewHeatScale("#000000", "#ffffff", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Max())
	assert.Equal(t, "#000000", h.Color(0))
	assert.Equal(t, "#ffffff", h.Color(1))
	assert.Equal(t, "#ffffff", h.Color(5))

	h, err = NewHeatScale("#000000", "#ff0000", 4)
	require.NoError(t, err)
	assert.Equal(t, "#800000", h.Color(2))

	_, err = NewHeatScale("nope", "#fff", 1)
	assert.Error(t, err)
}

// ============================================================
// Scales
// ============================================================

func TestBandScale(t *testing.T) {
	s := NewBandScale([]int{1, 2, 3, 4}, 0, 100, 0)
	assert.InDelta(t, 25, s.Step(), eps)
	assert.InDelta(t, 25, s.Bandwidth(), eps)
	x, ok := s.Position(3)
	require.True(t, ok)
	assert.InDelta(t, 50, x, eps)
	_, ok = s.Position(9)
	assert.False(t, ok)
	assert.InDelta(t, 12.5, s.Center(0), eps)

	p := NewBandScale([]int{1, 2, 3, 4}, 0, 100, 0.2)
	// step = 100 / (4 + 0.2)
	assert.InDelta(t, 100/4.2, p.Step(), eps)
	assert.InDelta(t, p.Step()*0.8, p.Bandwidth(), eps)
	// outer padding equals 0.2 of a step on both sides
	assert.InDelta(t, 0.2*p.Step(), p.At(0), eps)
	assert.InDelta(t, 100-0.2*p.Step(), p.At(3)+p.Bandwidth(), eps)
}

func TestFixedBandScale(t *testing.T) {
	// Ten columns wide with a one-column gap, as a terminal bar chart draws them.
	s := NewFixedBandScale([]int{4, 5, 6}, 0, 11, 10)
	assert.InDelta(t, 11, s.Step(), eps)
	assert.InDelta(t, 10, s.Bandwidth(), eps)
	assert.InDelta(t, 0, s.At(0), eps)
	assert.InDelta(t, 22, s.At(2), eps)
	assert.InDelta(t, 16, s.Center(1), eps)
	x, ok := s.Position(5)
	require.True(t, ok)
	assert.InDelta(t, 11, x, eps)

	// Every column of a band resolves to that band.
	for i := 0; i < 3; i++ {
		for col := 11 * i; col < 11*i+10; col++ {
			assert.Equal(t, i, ResolveHover(s, float64(col)+0.5), "column %d", col)
		}
	}
}

func TestLinearScaleNice(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{3, 3},
		{7, 7},
		{23, 24},
		{97, 100},
		{101, 110},
		{0, 1},
	}
	for _, tt := range tests {
		s := NewLinearScale(tt.max, 200, 0)
		assert.InDelta(t, 0, s.D0, eps, "max=%v", tt.max)
		assert.InDelta(t, tt.want, s.D1, eps, "max=%v", tt.max)
		assert.GreaterOrEqual(t, s.D1, tt.max)
	}
}

func TestLinearScaleMapAndTicks(t *testing.T) {
	s := NewLinearScale(10, 200, 0)
	assert.InDelta(t, 200, s.Map(0), eps)
	assert.InDelta(t, 0, s.Map(10), eps)
	assert.InDelta(t, 100, s.Map(5), eps)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, s.Ticks(5))

	small := NewLinearScale(1, 100, 0)
	ticks := small.Ticks(5)
	require.NotEmpty(t, ticks)
	assert.InDelta(t, 0.2, ticks[1], eps)
}

func TestLinearScaleIntegerTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 1}, NewLinearScale(1, 100, 0).IntegerTicks(5))
	assert.Equal(t, []float64{0, 1, 2, 3}, NewLinearScale(3, 100, 0).IntegerTicks(5))
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, NewLinearScale(10, 200, 0).IntegerTicks(5))
}

// ============================================================
// Dual axis / hover
// ============================================================

func buckets(counts ...int) ([]stats.DayBucket, []stats.CumulativeBucket) {
	var days []stats.DayBucket
	for i, c := range counts {
		days = append(days, stats.DayBucket{DayIndex: i + 1, Count: c})
	}
	return days, stats.BuildCumulative(days)
}

func testArea() Area {
	return Area{Width: 440, Height: 240, MarginTop: 20, MarginRight: 20, MarginBottom: 20, MarginLeft: 20}
}

func TestDualAxis(t *testing.T) {
	days, cum := buckets(2, 0, 1)
	d := NewDualAxis(days, cum, testArea(), 0.1)

	assert.InDelta(t, 2, d.Bars.D1, eps)
	assert.InDelta(t, 3, d.Line.D1, eps)

	bars := d.BarRects()
	require.Len(t, bars, 3)
	assert.InDelta(t, 200, bars[0].Height, eps)
	assert.InDelta(t, 20, bars[0].Y, eps)
	assert.InDelta(t, 0, bars[1].Height, eps)
	assert.InDelta(t, 100, bars[2].Height, eps)

	line := d.LinePoints()
	require.Len(t, line, 3)
	assert.InDelta(t, line[0].Y, line[1].Y, eps)
	assert.InDelta(t, 20, line[2].Y, eps)
	assert.InDelta(t, bars[1].X+bars[1].Width/2, line[1].X, eps)
}

func TestDualAxisAllZero(t *testing.T) {
	days, cum := buckets(0, 0)
	d := NewDualAxis(days, cum, testArea(), 0.1)
	assert.InDelta(t, 1, d.Bars.D1, eps)
	for _, b := range d.BarRects() {
		assert.InDelta(t, 0, b.Height, eps)
	}
}

func TestResolveHoverAtCenters(t *testing.T) {
	days, cum := buckets(make([]int, 57)...)
	d := NewDualAxis(days, cum, testArea(), 0.3)
	for i, c := range d.X.Centers() {
		assert.Equal(t, i, d.Resolve(c))
	}
	assert.Equal(t, 0, d.Resolve(-1000))
	assert.Equal(t, 56, d.Resolve(1e6))
}

func TestNearestTiesGoLow(t *testing.T) {
	sorted := []float64{0, 10, 20}
	assert.Equal(t, 0, NearestFloat(sorted, 5))
	assert.Equal(t, 1, NearestFloat(sorted, 5.01))
	assert.Equal(t, 1, NearestFloat(sorted, 15))
	assert.Equal(t, 2, NearestFloat(sorted, 16))
	assert.Equal(t, -1, NearestFloat(nil, 3))
	assert.Equal(t, 0, NearestFloat([]float64{7}, 100))
}

func TestBisectRight(t *testing.T) {
	ends := []float64{1, 2, 2, 4}
	id := func(v float64) float64 { return v }
	assert.Equal(t, 0, BisectRight(ends, id, 0.5))
	assert.Equal(t, 1, BisectRight(ends, id, 1))
	assert.Equal(t, 3, BisectRight(ends, id, 2))
	assert.Equal(t, 4, BisectRight(ends, id, 9))
	assert.Equal(t, 0, BisectRight(nil, id, 1))
}

func TestNearestWithKey(t *testing.T) {
	type point struct {
		at   float64
		name string
	}
	pts := []point{{1, "a"}, {4, "b"}, {9, "c"}}
	i := Nearest(pts, func(p point) float64 { return p.at }, 7)
	assert.Equal(t, "c", pts[i].name)
}
