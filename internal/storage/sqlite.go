// Package storage persists the leaderboard in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is the number of entries returned when no limit is given.
const DefaultLimit = 10

// MaxNameLength bounds player names stored on the leaderboard.
const MaxNameLength = 16

// ErrNotFound is returned when a run ID has no entry.
var ErrNotFound = errors.New("storage: entry not found")

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// Entry is one finished game on the leaderboard.
type Entry struct {
	ID        int64
	RunID     ulid.ULID
	GameID    string
	Name      string
	Score     int
	Level     int
	Completed bool
	Ticks     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_game_id ON leaderboard(game_id);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(game_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NormalizeName trims a player name and bounds its length.
// An empty name becomes "anonymous".
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "anonymous"
	}
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	return name
}

// SaveEntry records a finished game. A zero RunID is replaced by a fresh
// ULID. Returns the stored entry.
func (s *Store) SaveEntry(e Entry) (Entry, error) {
	if e.GameID == "" {
		return Entry{}, fmt.Errorf("storage: cannot save entry: empty game id")
	}
	if e.RunID == (ulid.ULID{}) {
		e.RunID = ulid.Make()
	}
	e.Name = NormalizeName(e.Name)

	result, err := s.db.Exec(
		`INSERT INTO leaderboard (run_id, game_id, name, score, level, completed, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID.String(), e.GameID, e.Name, e.Score, e.Level, e.Completed, e.Ticks,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("storage: cannot save entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	e.ID = id

	return e, nil
}

const entryColumns = `id, run_id, game_id, name, score, level, completed, ticks, created_at`

// TopEntries retrieves the best entries for the given game, highest score
// first. Ties go to the earlier run.
func (s *Store) TopEntries(gameID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(
		`SELECT `+entryColumns+`
		 FROM leaderboard
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// EntryByRunID retrieves the entry of one run.
func (s *Store) EntryByRunID(runID ulid.ULID) (Entry, error) {
	row := s.db.QueryRow(
		`SELECT `+entryColumns+` FROM leaderboard WHERE run_id = ?`,
		runID.String(),
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// Rank returns the 1-based leaderboard position of the given run.
func (s *Store) Rank(gameID string, runID ulid.ULID) (int, error) {
	e, err := s.EntryByRunID(runID)
	if err != nil {
		return 0, err
	}

	var better int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM leaderboard
		 WHERE game_id = ? AND (score > ? OR (score = ? AND id < ?))`,
		gameID, e.Score, e.Score, e.ID,
	).Scan(&better)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return better + 1, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no entries exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM leaderboard WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// GameIDs returns the games that have leaderboard entries, sorted.
func (s *Store) GameIDs() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT game_id FROM leaderboard ORDER BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// ClearEntries deletes all entries for the given game.
func (s *Store) ClearEntries(gameID string) error {
	_, err := s.db.Exec("DELETE FROM leaderboard WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear entries: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var runID string
	var createdAt any
	err := row.Scan(&e.ID, &runID, &e.GameID, &e.Name, &e.Score, &e.Level, &e.Completed, &e.Ticks, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	if e.RunID, err = ulid.Parse(runID); err != nil {
		return Entry{}, fmt.Errorf("storage: bad run id %q: %w", runID, err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}
	return e, nil
}
