package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sadopc/playtally/internal/entry"
)

// ToCSV writes entries to path in the same Date,Person,Game shape the loader reads.
func ToCSV(entries []entry.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, entries)
}

func WriteCSV(out io.Writer, entries []entry.Entry) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	// Header
	if err := w.Write(entry.Columns); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{e.Date.Format(), e.Participant, e.Category}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
