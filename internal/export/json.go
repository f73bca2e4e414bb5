package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/playtally/internal/entry"
)

type jsonExport struct {
	ExportedAt  string      `json:"exported_at"`
	Participant string      `json:"participant"`
	Count       int         `json:"count"`
	Entries     []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Date   string `json:"date"`
	Person string `json:"person"`
	Game   string `json:"game"`
}

// ToJSON writes entries to path, tagged with the participant filter they were taken under.
func ToJSON(entries []entry.Entry, participant, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	return WriteJSON(f, entries, participant)
}

func WriteJSON(w io.Writer, entries []entry.Entry, participant string) error {
	export := jsonExport{
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		Participant: participant,
		Count:       len(entries),
		Entries:     make([]jsonEntry, 0, len(entries)),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			Date:   e.Date.Format(),
			Person: e.Participant,
			Game:   e.Category,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
