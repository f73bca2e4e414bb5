// Package stats holds the pure aggregation functions over normalized entries.
package stats

import (
	"sort"

	"github.com/sadopc/playtally/internal/entry"
)

// Count is an aggregated value for one key.
type Count struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// KeyFunc extracts the grouping key of an entry.
type KeyFunc func(entry.Entry) string

func ByParticipant(e entry.Entry) string { return e.Participant }
func ByCategory(e entry.Entry) string    { return e.Category }

// GroupCount counts entries per key in first-seen key order. Keys absent from the
// input never appear.
func GroupCount(entries []entry.Entry, key KeyFunc) []Count {
	index := make(map[string]int)
	var out []Count
	for _, e := range entries {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Count{Key: k})
		}
		out[i].Value++
	}
	return out
}

// DistinctSorted returns the unique keys in ascending order.
func DistinctSorted(entries []entry.Entry, key KeyFunc) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		k := key(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RankByCount orders keys by entry count, highest first; ties keep first-seen order.
func RankByCount(entries []entry.Entry, key KeyFunc) []Count {
	out := GroupCount(entries, key)
	rank(out)
	return out
}

// RankByDistinctDays counts distinct calendar days per key rather than entries, so
// several entries by one key on the same day count once.
func RankByDistinctDays(entries []entry.Entry, key KeyFunc) []Count {
	type dayKey struct {
		key string
		day entry.CalendarDate
	}
	seen := make(map[dayKey]bool)
	index := make(map[string]int)
	var out []Count
	for _, e := range entries {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Count{Key: k})
		}
		dk := dayKey{k, e.Date}
		if seen[dk] {
			continue
		}
		seen[dk] = true
		out[i].Value++
	}
	rank(out)
	return out
}

func rank(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Value > counts[j].Value
	})
}

// Total sums the values.
func Total(counts []Count) int {
	n := 0
	for _, c := range counts {
		n += c.Value
	}
	return n
}

// FilterParticipant keeps the entries of one participant. An empty name keeps all.
func FilterParticipant(entries []entry.Entry, participant string) []entry.Entry {
	if participant == "" {
		return entries
	}
	var out []entry.Entry
	for _, e := range entries {
		if e.Participant == participant {
			out = append(out, e)
		}
	}
	return out
}
