package store

import (
	"fmt"
	"time"

	"github.com/sadopc/playtally/internal/entry"
)

// Import records one load of the dataset. Importing replaces the previous rows.
type Import struct {
	ID         string
	Source     string
	RowCount   int
	Dropped    int
	ImportedAt time.Time
}

// Summary is a one-line description for status lines.
func (i Import) Summary() string {
	s := fmt.Sprintf("%s, imported %s", i.Source, i.ImportedAt.Local().Format("2006-01-02 15:04"))
	switch i.Dropped {
	case 0:
	case 1:
		s += ", 1 row dropped"
	default:
		s += fmt.Sprintf(", %d rows dropped", i.Dropped)
	}
	return s
}

type Setting struct {
	Key   string
	Value string
}

// Setting keys.
const (
	SettingParticipant = "participant"
	SettingSource      = "source"
	SettingHeatLow     = "heat_low"
	SettingHeatHigh    = "heat_high"
	SettingBandPadding = "band_padding"
)

// EntryFilter is used to filter entries in queries.
type EntryFilter struct {
	Participant string // "" or "All" keeps everyone
	From        *entry.CalendarDate
	To          *entry.CalendarDate // inclusive
	Limit       int
}
