// Package dashboard recomputes every derived series and chart layout for one
// participant filter. State is rebuilt from the base entries on each filter change;
// nothing is patched in place.
package dashboard

import (
	"fmt"
	"math"

	"github.com/sadopc/playtally/internal/config"
	"github.com/sadopc/playtally/internal/entry"
	"github.com/sadopc/playtally/internal/layout"
	"github.com/sadopc/playtally/internal/stats"
)

// AllParticipants is the filter value that keeps every entry.
const AllParticipants = "All"

// Placeholder texts for charts with nothing to show.
const (
	NoData       = "No data"
	UnableToLoad = "Unable to load data"
)

// Options carries the chart geometry that Recompute needs.
type Options struct {
	Pie         layout.PieOptions
	Area        layout.Area
	BandPadding float64
	HeatLow     string
	HeatHigh    string
}

// OptionsFromConfig maps the chart section of the config file.
func OptionsFromConfig(c config.Config) Options {
	ch := c.Charts
	pie := layout.DefaultPieOptions(ch.PieRadius)
	pie.InnerRatio = ch.InnerRatio
	pie.OuterRatio = ch.OuterRatio
	pie.LabelThreshold = ch.LabelThreshold
	return Options{
		Pie: pie,
		Area: layout.Area{
			Width:        float64(ch.Width),
			Height:       float64(ch.Height),
			MarginTop:    float64(ch.MarginTop),
			MarginRight:  float64(ch.MarginRight),
			MarginBottom: float64(ch.MarginBottom),
			MarginLeft:   float64(ch.MarginLeft),
		},
		BandPadding: ch.BandPadding,
		HeatLow:     c.Colors.HeatLow,
		HeatHigh:    c.Colors.HeatHigh,
	}
}

// DefaultOptions is OptionsFromConfig(config.Default()).
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// State is everything the views draw for one filter.
type State struct {
	Participant  string
	Participants []string // filter choices, AllParticipants first
	Entries      []entry.Entry
	Empty        bool
	LoadErr      error

	Categories []stats.Count
	Slices     []layout.Slice
	Calendar   layout.CalendarGrid
	Heat       layout.HeatScale
	Days       []stats.DayBucket
	Cumulative []stats.CumulativeBucket
	Axis       layout.DualAxis
	ByEntries  []stats.Count
	ByDays     []stats.Count
	First      entry.CalendarDate
	Last       entry.CalendarDate
}

// ParticipantOptions lists the filter choices: AllParticipants then every participant ascending.
func ParticipantOptions(entries []entry.Entry) []string {
	return append([]string{AllParticipants}, stats.DistinctSorted(entries, stats.ByParticipant)...)
}

// Recompute derives the whole chart state for participant from the base entries.
// Unknown participants produce an empty state rather than an error.
func Recompute(base []entry.Entry, participant string, opts Options) (State, error) {
	if participant == "" {
		participant = AllParticipants
	}
	s := State{
		Participant:  participant,
		Participants: ParticipantOptions(base),
	}
	filter := participant
	if filter == AllParticipants {
		filter = ""
	}
	s.Entries = stats.FilterParticipant(base, filter)

	heat, err := layout.NewHeatScale(opts.HeatLow, opts.HeatHigh, 1)
	if err != nil {
		return State{}, err
	}
	s.Heat = heat
	s.Axis = layout.DualAxis{Area: opts.Area}
	if len(s.Entries) == 0 {
		s.Empty = true
		return s, nil
	}

	s.Categories = stats.GroupCount(s.Entries, stats.ByCategory)
	if s.Slices, err = layout.LayoutPie(s.Categories, opts.Pie); err != nil {
		return State{}, fmt.Errorf("layout pie: %w", err)
	}
	if s.Calendar, err = layout.LayoutCalendar(s.Entries); err != nil {
		return State{}, fmt.Errorf("layout calendar: %w", err)
	}
	if s.Heat, err = layout.NewHeatScale(opts.HeatLow, opts.HeatHigh, s.Calendar.MaxCount); err != nil {
		return State{}, err
	}
	if s.Days, err = stats.BuildDayBuckets(s.Entries); err != nil {
		return State{}, fmt.Errorf("build day buckets: %w", err)
	}
	s.Cumulative = stats.BuildCumulative(s.Days)
	s.Axis = layout.NewDualAxis(s.Days, s.Cumulative, opts.Area, opts.BandPadding)
	s.ByEntries = stats.RankByCount(s.Entries, stats.ByParticipant)
	s.ByDays = stats.RankByDistinctDays(s.Entries, stats.ByParticipant)
	s.First, s.Last = s.Days[0].Date, s.Days[len(s.Days)-1].Date
	return s, nil
}

// Failed is the state shown when the dataset could not be loaded.
func Failed(err error, opts Options) State {
	s, _ := Recompute(nil, AllParticipants, opts)
	s.LoadErr = err
	return s
}

// Placeholder returns the text to show instead of charts, or "" when there is data.
func (s State) Placeholder() string {
	switch {
	case s.LoadErr != nil:
		return UnableToLoad
	case s.Empty:
		return NoData
	}
	return ""
}

// Total is the number of filtered entries.
func (s State) Total() int { return len(s.Entries) }

// HoverLabel describes the day under the pointer on the daily chart.
type HoverLabel struct {
	Index    int                `json:"index"`
	DayIndex int                `json:"day_index"`
	Date     entry.CalendarDate `json:"-"`
	Count    int                `json:"count"`
	Total    int                `json:"total"`
}

func (h HoverLabel) String() string {
	return fmt.Sprintf("Day %d (%s): %d played, %d total", h.DayIndex, h.Date.Short(), h.Count, h.Total)
}

// Hover resolves a pointer offset on the daily chart to the nearest day.
func (s State) Hover(pointerX float64) (HoverLabel, bool) {
	if s.Empty || len(s.Days) == 0 {
		return HoverLabel{}, false
	}
	return s.HoverAt(s.Axis.Resolve(pointerX))
}

// HoverAt describes the i-th day bucket.
func (s State) HoverAt(i int) (HoverLabel, bool) {
	if i < 0 || i >= len(s.Days) {
		return HoverLabel{}, false
	}
	d := s.Days[i]
	return HoverLabel{
		Index:    i,
		DayIndex: d.DayIndex,
		Date:     d.Date,
		Count:    d.Count,
		Total:    s.Cumulative[i].Total,
	}, true
}

// SliceLabel describes the donut segment under the pointer.
type SliceLabel struct {
	Index int     `json:"index"`
	Key   string  `json:"key"`
	Value int     `json:"value"`
	Share float64 `json:"share"`
}

func (l SliceLabel) String() string {
	return fmt.Sprintf("%s: %d", l.Key, l.Value)
}

// PieHover resolves a pointer offset from the donut centre to the segment under it.
// Points in the hole or outside the ring resolve to nothing.
func (s State) PieHover(p layout.Point) (SliceLabel, bool) {
	if s.Empty || len(s.Slices) == 0 {
		return SliceLabel{}, false
	}
	r := math.Hypot(p.X, p.Y)
	if r < s.Slices[0].InnerRadius || r > s.Slices[0].OuterRadius {
		return SliceLabel{}, false
	}
	i := layout.SliceAt(s.Slices, layout.AngleOf(p))
	sl := s.Slices[i]
	return SliceLabel{Index: i, Key: sl.Key, Value: sl.Value, Share: sl.Share()}, true
}
