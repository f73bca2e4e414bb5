package store

import (
	"testing"
	"time"

	"github.com/sadopc/playtally/internal/entry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(y, m, d int) entry.CalendarDate {
	return entry.NewDate(y, m, d)
}

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{Date: day(2025, 0, 1), Participant: "A", Category: "Chess"},
		{Date: day(2025, 0, 1), Participant: "B", Category: "Chess"},
		{Date: day(2025, 0, 3), Participant: "A", Category: "Go"},
	}
}

// importSample is a test helper that loads the three-entry fixture.
func importSample(t *testing.T, s *Store) *Import {
	t.Helper()
	imp, err := s.ImportEntries("games.csv", sampleEntries(), 4, 1)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return imp
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/playtally.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	importSample(t, s)
	s.Close()

	// Reopen: data survives and migration is not re-run.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.ListEntries(EntryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries after reopen, got %d", len(got))
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Imports
// ============================================================

func TestImportEntries(t *testing.T) {
	s := newTestStore(t)
	imp := importSample(t, s)

	if imp.ID == "" {
		t.Fatal("expected import id")
	}
	if imp.RowCount != 4 || imp.Dropped != 1 {
		t.Fatalf("unexpected counts: %+v", imp)
	}

	got, err := s.ListEntries(EntryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	want := sampleEntries()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	if src := s.SettingOr(SettingSource, ""); src != "games.csv" {
		t.Fatalf("expected source to be remembered, got %q", src)
	}
}

func TestImportReplacesDataset(t *testing.T) {
	s := newTestStore(t)
	importSample(t, s)

	_, err := s.ImportEntries("other.csv", []entry.Entry{
		{Date: day(2024, 5, 9), Participant: "C", Category: "Poker"},
	}, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	got, _ := s.ListEntries(EntryFilter{})
	if len(got) != 1 {
		t.Fatalf("expected previous rows to be replaced, got %d entries", len(got))
	}

	latest, err := s.LatestImport()
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || latest.Source != "other.csv" {
		t.Fatalf("unexpected latest import: %+v", latest)
	}
}

func TestImportEmpty(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ImportEntries("empty.csv", nil, 0, 0); err != nil {
		t.Fatal(err)
	}
	got, err := s.ListEntries(EntryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}

func TestImportSummary(t *testing.T) {
	at := time.Date(2025, 1, 3, 10, 30, 0, 0, time.Local)
	tests := []struct {
		dropped int
		want    string
	}{
		{0, "games.csv, imported 2025-01-03 10:30"},
		{1, "games.csv, imported 2025-01-03 10:30, 1 row dropped"},
		{4, "games.csv, imported 2025-01-03 10:30, 4 rows dropped"},
	}
	for _, tt := range tests {
		imp := Import{Source: "games.csv", ImportedAt: at, Dropped: tt.dropped}
		if got := imp.Summary(); got != tt.want {
			t.Errorf("Summary() = %q, want %q", got, tt.want)
		}
	}
}

func TestLatestImportNone(t *testing.T) {
	s := newTestStore(t)
	imp, err := s.LatestImport()
	if err != nil {
		t.Fatal(err)
	}
	if imp != nil {
		t.Fatalf("expected nil import, got %+v", imp)
	}
}

// ============================================================
// Entries
// ============================================================

func TestListEntriesFilterParticipant(t *testing.T) {
	s := newTestStore(t)
	importSample(t, s)

	got, err := s.ListEntries(EntryFilter{Participant: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for A, got %d", len(got))
	}
	for _, e := range got {
		if e.Participant != "A" {
			t.Fatalf("unexpected participant %q", e.Participant)
		}
	}

	all, _ := s.ListEntries(EntryFilter{Participant: "All"})
	if len(all) != 3 {
		t.Fatalf("expected All to keep every entry, got %d", len(all))
	}
}

func TestListEntriesFilterDates(t *testing.T) {
	s := newTestStore(t)
	importSample(t, s)

	from := day(2025, 0, 2)
	got, _ := s.ListEntries(EntryFilter{From: &from})
	if len(got) != 1 || got[0].Category != "Go" {
		t.Fatalf("unexpected entries from Jan 2: %+v", got)
	}

	to := day(2025, 0, 1)
	got, _ = s.ListEntries(EntryFilter{To: &to})
	if len(got) != 2 {
		t.Fatalf("expected inclusive upper bound, got %d entries", len(got))
	}
}

func TestListEntriesLimit(t *testing.T) {
	s := newTestStore(t)
	importSample(t, s)

	got, _ := s.ListEntries(EntryFilter{Limit: 2})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1].Participant != "B" {
		t.Fatalf("expected insertion order, got %+v", got)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		SettingParticipant: "All",
		SettingHeatLow:     "#ebedf0",
		SettingHeatHigh:    "#216e39",
		SettingBandPadding: "0.2",
	}
	for key, want := range defaults {
		got, err := s.GetSetting(key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", key, want, got)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting(SettingParticipant, "A"); err != nil {
		t.Fatal(err)
	}
	if got := s.Participant(); got != "A" {
		t.Fatalf("expected A, got %q", got)
	}
	s.SetSetting(SettingParticipant, "B")
	if got := s.Participant(); got != "B" {
		t.Fatalf("expected B, got %q", got)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if got := s.SettingOr("nonexistent", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 seeded settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key > all[i].Key {
			t.Fatal("settings not sorted by key")
		}
	}
}

// ============================================================
// Foreign keys
// ============================================================

func TestForeignKeyEntriesImport(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.Exec(`INSERT INTO entries (import_id, day, person, game) VALUES ('missing', '2025-01-01', 'A', 'Go')`)
	if err == nil {
		t.Fatal("expected foreign key error")
	}
}

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}
