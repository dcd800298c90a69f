// Package storage provides SQLite-based persistence for scores and level
// clear times. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
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

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a finished run. LevelID is empty for run totals.
type ScoreEntry struct {
	ID        int64
	GameID    string
	LevelID   string
	Score     int
	Ticks     int64
	CreatedAt time.Time
}

// LevelRecord is the best clear of one level.
type LevelRecord struct {
	LevelID   string
	BestTicks int64
	BestScore int
	Clears    int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, level_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_ticks ON scores(game_id, level_id, ticks);
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

// SaveScore records the total score of a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.insert(gameID, "", score, 0)
}

// SaveLevelTime records a level clear with its score and the number of
// fixed ticks it took.
func (s *Store) SaveLevelTime(gameID, levelID string, score int, ticks int64) (int64, error) {
	if levelID == "" {
		return 0, errors.New("storage: level clear needs a level ID")
	}
	return s.insert(gameID, levelID, score, ticks)
}

func (s *Store) insert(gameID, levelID string, score int, ticks int64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, level_id, score, ticks) VALUES (?, ?, ?, ?)",
		gameID, levelID, score, ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N run totals for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_id, score, ticks, created_at
		 FROM scores
		 WHERE game_id = ? AND level_id = ''
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// BestTimes retrieves the fastest clears of a level, fewest ticks first.
func (s *Store) BestTimes(gameID, levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_id, score, ticks, created_at
		 FROM scores
		 WHERE game_id = ? AND level_id = ?
		 ORDER BY ticks ASC, id ASC
		 LIMIT ?`,
		gameID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level times: %w", err)
	}
	return scanEntries(rows)
}

// LevelRecords returns the best clear of every level played in a game,
// ordered by level ID.
func (s *Store) LevelRecords(gameID string) ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MIN(ticks), MAX(score), COUNT(*)
		 FROM scores
		 WHERE game_id = ? AND level_id != ''
		 GROUP BY level_id
		 ORDER BY level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level records: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		if err := rows.Scan(&r.LevelID, &r.BestTicks, &r.BestScore, &r.Clears); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the highest run total for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND level_id = ''",
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

// ClearScores deletes all scores and level times for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Runs       int
	Clears     int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT
		   COALESCE(SUM(CASE WHEN level_id = '' THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN level_id != '' THEN 1 ELSE 0 END), 0),
		   COALESCE(MAX(CASE WHEN level_id = '' THEN score END), 0),
		   COALESCE(AVG(CASE WHEN level_id = '' THEN score END), 0),
		   COALESCE(SUM(CASE WHEN level_id = '' THEN score ELSE 0 END), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.Clears, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.LevelID, &e.Score, &e.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and the string form sqlite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
