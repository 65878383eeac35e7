package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, e Entry) Entry {
	t.Helper()
	saved, err := store.SaveEntry(e)
	if err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	return saved
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Entry{GameID: "kong", Name: "ann", Score: 100, Level: 1})
	mustSave(t, store, Entry{GameID: "kong", Name: "bob", Score: 50, Level: 1})
	mustSave(t, store, Entry{GameID: "kong", Name: "cy", Score: 2300, Level: 3, Completed: true, Ticks: 9000})
	mustSave(t, store, Entry{GameID: "kong_endless", Name: "dee", Score: 500, Level: 4})

	entries, err := store.TopEntries("kong", 10)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	// Should be sorted descending
	if entries[0].Score != 2300 || entries[1].Score != 100 || entries[2].Score != 50 {
		t.Errorf("Entries not in expected order: %v", entries)
	}

	top := entries[0]
	if top.Name != "cy" || top.Level != 3 || !top.Completed || top.Ticks != 9000 {
		t.Errorf("Top entry = %+v, fields not preserved", top)
	}
	if top.RunID == (ulid.ULID{}) {
		t.Error("SaveEntry() should assign a run id")
	}

	endless, err := store.TopEntries("kong_endless", 10)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless entry, got %d", len(endless))
	}
}

func TestStoreTopEntriesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, Entry{GameID: "test", Name: "p", Score: (i + 1) * 100})
	}

	entries, err := store.TopEntries("test", 3)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}

	if len(entries) != 3 {
		t.Errorf("Expected 3 entries with limit, got %d", len(entries))
	}

	// Should be 500, 400, 300 (top 3)
	if entries[0].Score != 500 || entries[1].Score != 400 || entries[2].Score != 300 {
		t.Errorf("Entries not in expected order: %v", entries)
	}

	all, err := store.TopEntries("test", 0)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Default limit should cover all 5 entries, got %d", len(all))
	}
}

func TestStoreTiesFavorEarlierRun(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, Entry{GameID: "kong", Name: "first", Score: 700})
	second := mustSave(t, store, Entry{GameID: "kong", Name: "second", Score: 700})

	entries, _ := store.TopEntries("kong", 10)
	if entries[0].RunID != first.RunID || entries[1].RunID != second.RunID {
		t.Errorf("tie order = %s, %s; expected first then second", entries[0].Name, entries[1].Name)
	}

	rank, err := store.Rank("kong", second.RunID)
	if err != nil {
		t.Fatalf("Rank() failed: %v", err)
	}
	if rank != 2 {
		t.Errorf("Rank() = %d, expected 2", rank)
	}
}

func TestStoreRank(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Entry{GameID: "kong", Score: 300})
	mustSave(t, store, Entry{GameID: "kong", Score: 100})
	mid := mustSave(t, store, Entry{GameID: "kong", Score: 200})
	mustSave(t, store, Entry{GameID: "other", Score: 900})

	rank, err := store.Rank("kong", mid.RunID)
	if err != nil {
		t.Fatalf("Rank() failed: %v", err)
	}
	if rank != 2 {
		t.Errorf("Rank() = %d, expected 2", rank)
	}

	if _, err := store.Rank("kong", ulid.Make()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rank() of unknown run error = %v, expected ErrNotFound", err)
	}
}

func TestStoreEntryByRunID(t *testing.T) {
	store := openTestStore(t)

	runID := ulid.Make()
	mustSave(t, store, Entry{RunID: runID, GameID: "kong", Name: "ann", Score: 42})

	e, err := store.EntryByRunID(runID)
	if err != nil {
		t.Fatalf("EntryByRunID() failed: %v", err)
	}
	if e.RunID != runID || e.Score != 42 || e.Name != "ann" {
		t.Errorf("EntryByRunID() = %+v", e)
	}

	// Run ids are unique.
	if _, err := store.SaveEntry(Entry{RunID: runID, GameID: "kong", Score: 1}); err == nil {
		t.Error("SaveEntry() with a duplicate run id should fail")
	}

	if _, err := store.EntryByRunID(ulid.Make()); !errors.Is(err, ErrNotFound) {
		t.Errorf("EntryByRunID() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreSaveEntryValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveEntry(Entry{Score: 10}); err == nil {
		t.Error("SaveEntry() without a game id should fail")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"  ann  ", "ann"},
		{"", "anonymous"},
		{"   ", "anonymous"},
		{strings.Repeat("x", 40), strings.Repeat("x", MaxNameLength)},
		{"ÄÖÜäöüßÄÖÜäöüßÄÖÜ", "ÄÖÜäöüßÄÖÜäöüßÄÖ"},
	}

	for _, tc := range tests {
		if got := NormalizeName(tc.in); got != tc.expected {
			t.Errorf("NormalizeName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No entries yet
	high, err := store.HighScore("kong")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, Entry{GameID: "kong", Score: 100})
	mustSave(t, store, Entry{GameID: "kong", Score: 300})
	mustSave(t, store, Entry{GameID: "kong", Score: 200})

	high, err = store.HighScore("kong")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreGameIDs(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Entry{GameID: "kong_endless", Score: 1})
	mustSave(t, store, Entry{GameID: "kong", Score: 1})
	mustSave(t, store, Entry{GameID: "kong", Score: 2})

	ids, err := store.GameIDs()
	if err != nil {
		t.Fatalf("GameIDs() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "kong" || ids[1] != "kong_endless" {
		t.Errorf("GameIDs() = %v, expected [kong kong_endless]", ids)
	}
}

func TestStoreClearEntries(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Entry{GameID: "kong", Score: 100})
	mustSave(t, store, Entry{GameID: "kong", Score: 200})
	mustSave(t, store, Entry{GameID: "kong_endless", Score: 300})

	if err := store.ClearEntries("kong"); err != nil {
		t.Fatalf("ClearEntries() failed: %v", err)
	}

	campaign, _ := store.TopEntries("kong", 10)
	if len(campaign) != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", len(campaign))
	}

	endless, _ := store.TopEntries("kong_endless", 10)
	if len(endless) != 1 {
		t.Errorf("Endless entries should not be affected by clearing kong")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
