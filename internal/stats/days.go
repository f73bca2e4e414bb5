package stats

import (
	"errors"

	"github.com/sadopc/playtally/internal/entry"
)

// ErrNoEntries is returned by builders that need at least one entry. Callers are
// expected to check for empty input and show a placeholder instead.
var ErrNoEntries = errors.New("no entries")

// DayBucket is the entry count of one day in a contiguous range. DayIndex is 1-based.
type DayBucket struct {
	DayIndex int                `json:"day_index"`
	Date     entry.CalendarDate `json:"-"`
	Count    int                `json:"count"`
}

// CumulativeBucket is the running total up to and including DayIndex.
type CumulativeBucket struct {
	DayIndex int                `json:"day_index"`
	Date     entry.CalendarDate `json:"-"`
	Total    int                `json:"total"`
}

// DateRange returns the earliest and latest entry dates.
func DateRange(entries []entry.Entry) (entry.CalendarDate, entry.CalendarDate, error) {
	if len(entries) == 0 {
		return entry.CalendarDate{}, entry.CalendarDate{}, ErrNoEntries
	}
	lo, hi := entries[0].Date, entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.Before(lo) {
			lo = e.Date
		}
		if e.Date.After(hi) {
			hi = e.Date
		}
	}
	return lo, hi, nil
}

// EnumerateDays lists every day from lo to hi inclusive. It returns nil if hi < lo.
func EnumerateDays(lo, hi entry.CalendarDate) []entry.CalendarDate {
	n := lo.DaysUntil(hi)
	if n < 0 {
		return nil
	}
	days := make([]entry.CalendarDate, 0, n+1)
	for d := lo; !d.After(hi); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// BuildDayBuckets zero-fills one bucket per day between the first and last entry.
func BuildDayBuckets(entries []entry.Entry) ([]DayBucket, error) {
	lo, hi, err := DateRange(entries)
	if err != nil {
		return nil, err
	}
	days := EnumerateDays(lo, hi)
	buckets := make([]DayBucket, len(days))
	for i, d := range days {
		buckets[i] = DayBucket{DayIndex: i + 1, Date: d}
	}
	for _, e := range entries {
		buckets[lo.DaysUntil(e.Date)].Count++
	}
	return buckets, nil
}

// BuildCumulative walks the buckets in order keeping a running sum.
func BuildCumulative(buckets []DayBucket) []CumulativeBucket {
	out := make([]CumulativeBucket, len(buckets))
	total := 0
	for i, b := range buckets {
		total += b.Count
		out[i] = CumulativeBucket{DayIndex: b.DayIndex, Date: b.Date, Total: total}
	}
	return out
}

// MaxCount is the largest bucket count, 0 for no buckets.
func MaxCount(buckets []DayBucket) int {
	m := 0
	for _, b := range buckets {
		m = max(m, b.Count)
	}
	return m
}

// MaxTotal is the final cumulative total, 0 for no buckets.
func MaxTotal(cum []CumulativeBucket) int {
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1].Total
}
