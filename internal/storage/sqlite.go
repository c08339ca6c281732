// Package storage persists finished runs and level clear times in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.breakaloop/breakaloop.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished run through the levels.
type Run struct {
	ID            int64
	StartLevel    int // zero-based level the run started on
	LevelsCleared int
	Elapsed       time.Duration
	CreatedAt     time.Time
}

// LevelTime is one clear of a single level.
type LevelTime struct {
	ID        int64
	Level     int // zero-based
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Stats aggregates everything stored.
type Stats struct {
	Runs       int
	BestRun    time.Duration // zero when there are no runs
	Clears     int
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			start_level INTEGER NOT NULL DEFAULT 0,
			levels_cleared INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(start_level, elapsed_ms);

		CREATE TABLE IF NOT EXISTS level_times (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_times_best ON level_times(level, elapsed_ms);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(startLevel, levelsCleared int, elapsed time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (start_level, levels_cleared, elapsed_ms) VALUES (?, ?, ?)",
		startLevel, levelsCleared, elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestRuns returns the fastest full runs, those that started on the first
// level, fastest first.
func (s *Store) BestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, start_level, levels_cleared, elapsed_ms, created_at
		 FROM runs
		 WHERE start_level = 0
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.StartLevel, &r.LevelsCleared, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(ms) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// SaveLevelTime records one clear of level and returns its ID.
func (s *Store) SaveLevelTime(level int, elapsed time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO level_times (level, elapsed_ms) VALUES (?, ?)",
		level, elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level time: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LevelTimes returns the fastest clears of level, fastest first.
func (s *Store) LevelTimes(level, limit int) ([]LevelTime, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, level, elapsed_ms, created_at
		 FROM level_times
		 WHERE level = ?
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level times: %w", err)
	}
	defer rows.Close()

	var times []LevelTime
	for rows.Next() {
		var lt LevelTime
		var ms int64
		var createdAt any
		if err := rows.Scan(&lt.ID, &lt.Level, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		lt.Elapsed = time.Duration(ms) * time.Millisecond
		lt.CreatedAt = parseTime(createdAt)
		times = append(times, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return times, nil
}

// BestLevelTimes returns the fastest clear of every level that has one.
func (s *Store) BestLevelTimes() (map[int]time.Duration, error) {
	rows, err := s.db.Query(`SELECT level, MIN(elapsed_ms) FROM level_times GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best level times: %w", err)
	}
	defer rows.Close()

	best := make(map[int]time.Duration)
	for rows.Next() {
		var level int
		var ms int64
		if err := rows.Scan(&level, &ms); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[level] = time.Duration(ms) * time.Millisecond
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// GetStats aggregates runs and clears.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var best sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(CASE WHEN start_level = 0 THEN elapsed_ms END) FROM runs`,
	).Scan(&stats.Runs, &best)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	if best.Valid {
		stats.BestRun = time.Duration(best.Int64) * time.Millisecond
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM level_times`).Scan(&stats.Clears); err != nil {
		return nil, fmt.Errorf("storage: cannot get clear stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM level_times ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

// Clear deletes every run and level time.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM runs; DELETE FROM level_times;"); err != nil {
		return fmt.Errorf("storage: cannot clear: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
