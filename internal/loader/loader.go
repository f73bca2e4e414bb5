// Package loader fetches the activity CSV from a file or URL.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/sadopc/playtally/internal/entry"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Result is the outcome of Load. Err is set when the source could not be read; the
// entry set is then empty and callers show an "unable to load" placeholder.
type Result struct {
	Source  string
	Entries []entry.Entry
	Rows    int
	Dropped int
	Err     error
}

// Load fetches and normalizes src. It never fails: errors are carried in Result.
func Load(ctx context.Context, src string) Result {
	res := Result{Source: src}
	rows, err := FetchRows(ctx, src)
	if err != nil {
		slog.Warn("load dataset", "source", src, "err", err)
		res.Err = err
		return res
	}
	res.Rows = len(rows)
	res.Entries, res.Dropped = entry.NormalizeCount(rows)
	slog.Debug("loaded dataset", "source", src, "rows", res.Rows, "entries", len(res.Entries))
	return res
}

// FetchRows reads src, an http(s) URL or a file path, as CSV with a header row.
func FetchRows(ctx context.Context, src string) ([]entry.RawRow, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return fetchURL(ctx, src)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadRows(f)
}

func fetchURL(ctx context.Context, url string) ([]entry.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch csv: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch csv: %s", resp.Status)
	}
	return ReadRows(resp.Body)
}

// ReadRows parses CSV with a header. Column names must match exactly; extra columns
// are kept in the rows but ignored downstream.
func ReadRows(r io.Reader) ([]entry.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read csv header: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for _, col := range entry.Columns {
		if !contains(header, col) {
			return nil, fmt.Errorf("%w %q (have %v)", ErrMissingColumn, col, header)
		}
	}

	var rows []entry.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row := make(entry.RawRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
