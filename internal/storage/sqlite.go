// Package storage provides SQLite-based persistence for rounds and session scores.
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

	"github.com/vovakirdan/service-drop/internal/session"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished session on the scoreboard.
type ScoreEntry struct {
	ID        int64
	SessionID string
	Player    string
	Score     int
	Rounds    int
	Correct   int
	Wrong     int
	Misses    int
	Duration  int // Seconds
	CreatedAt time.Time
}

// RoundEntry is one recorded outcome.
type RoundEntry struct {
	ID        int64
	SessionID string
	Round     int
	Kind      string
	ServiceID string
	ZoneRole  string // Empty on a miss
	Correct   bool
	Delta     int
	Score     int
	CreatedAt time.Time
}

// Stats contains aggregated statistics across all sessions.
type Stats struct {
	Sessions   int
	HighScore  int
	AvgScore   float64
	Rounds     int
	Hits       int
	Misses     int
	Correct    int
	Wrong      int
	LastPlayed time.Time
}

// Accuracy returns the share of resolved rounds (hits and misses) that ended
// in the correct zone. A round still falling when its session ended is not counted.
func (s Stats) Accuracy() float64 {
	resolved := s.Hits + s.Misses
	if resolved == 0 {
		return 0
	}
	return float64(s.Correct) / float64(resolved)
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

	// SSH sessions write concurrently; sqlite serializes anyway
	db.SetMaxOpenConns(1)

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			wrong INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(score DESC);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			kind TEXT NOT NULL,
			service_id TEXT NOT NULL,
			zone_role TEXT,
			correct INTEGER NOT NULL DEFAULT 0,
			delta INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id);
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

// SaveRound implements session.Recorder.
func (s *Store) SaveRound(data session.RoundData) error {
	var zone sql.NullString
	if data.ZoneRole != "" {
		zone = sql.NullString{String: data.ZoneRole, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds (session_id, round, kind, service_id, zone_role, correct, delta, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.Round, data.Kind, data.ServiceID, zone, data.Correct, data.Delta, data.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save round: %w", err)
	}
	return nil
}

// SaveSession implements session.Recorder.
// Saving the same session ID twice overwrites the earlier result.
func (s *Store) SaveSession(data session.SessionData) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, player, score, rounds, hits, misses, correct, wrong, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			player = excluded.player,
			score = excluded.score,
			rounds = excluded.rounds,
			hits = excluded.hits,
			misses = excluded.misses,
			correct = excluded.correct,
			wrong = excluded.wrong,
			duration_secs = excluded.duration_secs`,
		data.SessionID, data.Player, data.Score, data.Rounds, data.Hits,
		data.Misses, data.Correct, data.Wrong, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// Ensure Store implements session.Recorder
var _ session.Recorder = (*Store)(nil)

// TopScores retrieves the top N finished sessions ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, score, rounds, correct, wrong, misses, duration_secs, created_at
		 FROM sessions
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Player, &e.Score, &e.Rounds,
			&e.Correct, &e.Wrong, &e.Misses, &e.Duration, &createdAt); err != nil {
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

// HighScore returns the best session score, or 0 if nothing was played yet.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM sessions").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// RecentRounds retrieves the latest outcomes, newest first.
// An empty sessionID returns rounds from all sessions.
func (s *Store) RecentRounds(sessionID string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, session_id, round, kind, service_id, zone_role, correct, delta, score, created_at
		 FROM rounds`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var zone sql.NullString
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Round, &e.Kind, &e.ServiceID,
			&zone, &e.Correct, &e.Delta, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if zone.Valid {
			e.ZoneRole = zone.String
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated statistics across all finished sessions.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(rounds), 0), COALESCE(SUM(hits), 0), COALESCE(SUM(misses), 0),
		        COALESCE(SUM(correct), 0), COALESCE(SUM(wrong), 0)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.HighScore, &stats.AvgScore,
		&stats.Rounds, &stats.Hits, &stats.Misses, &stats.Correct, &stats.Wrong)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM sessions ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearScores deletes all sessions and rounds.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM rounds; DELETE FROM sessions;"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
