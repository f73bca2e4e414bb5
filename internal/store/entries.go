package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/playtally/internal/entry"
)

// ImportEntries replaces the stored dataset with entries in a single transaction.
func (s *Store) ImportEntries(source string, entries []entry.Entry, rows, dropped int) (*Import, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return nil, fmt.Errorf("clear entries: %w", err)
	}

	imp := &Import{
		ID:         uuid.NewString(),
		Source:     source,
		RowCount:   rows,
		Dropped:    dropped,
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err = tx.Exec(
		`INSERT INTO imports (id, source, row_count, dropped, imported_at) VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.RowCount, imp.Dropped, imp.ImportedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert import: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (import_id, day, person, game) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare entry insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(imp.ID, e.Date.String(), e.Participant, e.Category); err != nil {
			return nil, fmt.Errorf("insert entry: %w", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		SettingSource, source,
	); err != nil {
		return nil, fmt.Errorf("remember source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return imp, nil
}

// ListEntries returns the stored entries in import order.
func (s *Store) ListEntries(f EntryFilter) ([]entry.Entry, error) {
	query := `SELECT day, person, game FROM entries WHERE 1=1`
	var args []any

	if f.Participant != "" && f.Participant != "All" {
		query += ` AND person = ?`
		args = append(args, f.Participant)
	}
	if f.From != nil {
		query += ` AND day >= ?`
		args = append(args, f.From.String())
	}
	if f.To != nil {
		query += ` AND day <= ?`
		args = append(args, f.To.String())
	}
	query += ` ORDER BY id`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		var e entry.Entry
		var day string
		if err := rows.Scan(&day, &e.Participant, &e.Category); err != nil {
			return nil, err
		}
		if e.Date, err = entry.ParseISO(day); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LatestImport returns the most recent import, or nil if nothing was imported.
func (s *Store) LatestImport() (*Import, error) {
	imp := &Import{}
	var importedAt string
	err := s.db.QueryRow(
		`SELECT id, source, row_count, dropped, imported_at FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`,
	).Scan(&imp.ID, &imp.Source, &imp.RowCount, &imp.Dropped, &importedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest import: %w", err)
	}
	imp.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
	return imp, nil
}
