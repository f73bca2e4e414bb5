// Package entry holds the normalized activity record and the row normalizer.
package entry

import (
	"log/slog"
	"strings"
)

// Required column names of the input dataset.
const (
	ColDate   = "Date"
	ColPerson = "Person"
	ColGame   = "Game"
)

// Columns lists the required header, in export order.
var Columns = []string{ColDate, ColPerson, ColGame}

// RawRow is one input record keyed by column name.
type RawRow map[string]string

// Entry is one normalized activity record.
type Entry struct {
	Date        CalendarDate
	Participant string
	Category    string
}

// Normalize converts raw rows into entries, dropping rows whose date does not parse.
func Normalize(rows []RawRow) []Entry {
	entries, _ := NormalizeCount(rows)
	return entries
}

// NormalizeCount is Normalize that also reports how many rows were dropped. Drops are
// logged once per batch, never per row.
func NormalizeCount(rows []RawRow) ([]Entry, int) {
	entries := make([]Entry, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		d, err := ParseDate(row[ColDate])
		if err != nil {
			dropped++
			continue
		}
		entries = append(entries, Entry{
			Date:        d,
			Participant: strings.TrimSpace(row[ColPerson]),
			Category:    strings.TrimSpace(row[ColGame]),
		})
	}
	if dropped > 0 {
		slog.Warn("dropped rows with unparseable dates", "dropped", dropped, "kept", len(entries))
	}
	return entries, dropped
}
