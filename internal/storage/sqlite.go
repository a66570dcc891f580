// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a match does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// MatchRecord is one completed match.
type MatchRecord struct {
	ID        int64
	MatchID   string // UUID, generated by SaveMatch when empty
	P1Score   int
	P2Score   int
	P1Level   int
	P2Level   int
	Winner    string // "P1", "P2" or "draw"
	Rounds    int
	Duration  time.Duration // Simulated play time
	CreatedAt time.Time
}

// ScoreEntry is a single player's final score in a match.
type ScoreEntry struct {
	MatchID   string
	Player    string
	Score     int
	CreatedAt time.Time
}

const timeLayout = "2006-01-02 15:04:05"

// DefaultPath returns the database location under the user's home directory.
func DefaultPath() string {
	return "~/.crossing/scores.db"
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
	// SSH sessions share one store; sqlite serialises writers anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			p1_score INTEGER NOT NULL DEFAULT 0,
			p2_score INTEGER NOT NULL DEFAULT 0,
			p1_level INTEGER NOT NULL DEFAULT 1,
			p2_level INTEGER NOT NULL DEFAULT 1,
			winner TEXT NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(match_id),
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
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

// SaveMatch records a match and both players' scores in one transaction.
// Returns the match ID.
func (s *Store) SaveMatch(ctx context.Context, m MatchRecord) (string, error) {
	if m.MatchID == "" {
		m.MatchID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	created := m.CreatedAt.UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches
		 (match_id, p1_score, p2_score, p1_level, p2_level, winner, rounds, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.P1Score, m.P2Score, m.P1Level, m.P2Level,
		m.Winner, m.Rounds, m.Duration.Milliseconds(), created,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}

	for _, e := range []ScoreEntry{{Player: "P1", Score: m.P1Score}, {Player: "P2", Score: m.P2Score}} {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO scores (match_id, player, score, created_at) VALUES (?, ?, ?, ?)",
			m.MatchID, e.Player, e.Score, created,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return m.MatchID, nil
}

const matchColumns = `id, match_id, p1_score, p2_score, p1_level, p2_level,
	winner, rounds, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var m MatchRecord
	var durationMs int64
	var createdAt any
	if err := row.Scan(
		&m.ID, &m.MatchID, &m.P1Score, &m.P2Score, &m.P1Level, &m.P2Level,
		&m.Winner, &m.Rounds, &durationMs, &createdAt,
	); err != nil {
		return MatchRecord{}, err
	}
	m.Duration = time.Duration(durationMs) * time.Millisecond
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// MatchByID retrieves a match by its match ID.
func (s *Store) MatchByID(ctx context.Context, matchID string) (MatchRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE match_id = ?", matchID)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return MatchRecord{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return MatchRecord{}, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+matchColumns+" FROM matches ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// TopScores retrieves the best individual scores across all matches.
func (s *Store) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT match_id, player, score, created_at
		 FROM scores
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
		if err := rows.Scan(&e.MatchID, &e.Player, &e.Score, &createdAt); err != nil {
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

// HighScore returns the highest recorded score, or 0 if none exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats is aggregated match history.
type Stats struct {
	Matches    int
	P1Wins     int
	P2Wins     int
	Draws      int
	HighScore  int
	LastPlayed time.Time
}

// Stats aggregates all recorded matches.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(winner = 'P1'), 0),
		        COALESCE(SUM(winner = 'P2'), 0),
		        COALESCE(SUM(winner = 'draw'), 0),
		        COALESCE(MAX(MAX(p1_score, p2_score)), 0),
		        MAX(created_at)
		 FROM matches`,
	).Scan(&st.Matches, &st.P1Wins, &st.P2Wins, &st.Draws, &st.HighScore, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
