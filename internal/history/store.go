// Package history persists finished practice rounds in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	sentences   INTEGER NOT NULL,
	characters  INTEGER NOT NULL,
	keystrokes  INTEGER NOT NULL,
	mistakes    INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	wpm         REAL NOT NULL,
	accuracy    REAL NOT NULL,
	source      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS rounds_finished_at ON rounds (finished_at);
`

// Round is one finished practice round.
type Round struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Sentences  int
	Characters int
	Keystrokes int
	Mistakes   int
	Duration   time.Duration
	WPM        float64
	Accuracy   float64
	Source     string
}

// Summary aggregates all stored rounds.
type Summary struct {
	Rounds      int
	BestWPM     float64
	AverageWPM  float64
	AvgAccuracy float64
	TotalTime   time.Duration
}

// Store is a round history database.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens or creates the database at path.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; the TUI never needs more
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug().Str("path", path).Msg("opened history")
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores r, assigning an ID when it has none, and returns the saved round.
func (s *Store) Save(ctx context.Context, r Round) (Round, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rounds (id, started_at, finished_at, sentences, characters,
			keystrokes, mistakes, duration_ms, wpm, accuracy, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UnixMilli(), r.FinishedAt.UnixMilli(), r.Sentences, r.Characters,
		r.Keystrokes, r.Mistakes, r.Duration.Milliseconds(), r.WPM, r.Accuracy, r.Source,
	)
	if err != nil {
		return Round{}, fmt.Errorf("inserting round: %w", err)
	}

	s.logger.Info().
		Str("id", r.ID).
		Int("sentences", r.Sentences).
		Float64("wpm", r.WPM).
		Msg("saved round")
	return r, nil
}

// Recent returns up to limit rounds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, sentences, characters,
			keystrokes, mistakes, duration_ms, wpm, accuracy, source
		FROM rounds
		ORDER BY finished_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var (
			r                 Round
			started, finished int64
			durationMs        int64
		)
		if err := rows.Scan(
			&r.ID, &started, &finished, &r.Sentences, &r.Characters,
			&r.Keystrokes, &r.Mistakes, &durationMs, &r.WPM, &r.Accuracy, &r.Source,
		); err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		rounds = append(rounds, r)
	}

	return rounds, rows.Err()
}

// Summary aggregates every stored round.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var (
		sum       Summary
		best, avg sql.NullFloat64
		acc       sql.NullFloat64
		totalMs   sql.NullInt64
	)

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), MAX(wpm), AVG(wpm), AVG(accuracy), SUM(duration_ms)
		FROM rounds
	`)
	if err := row.Scan(&sum.Rounds, &best, &avg, &acc, &totalMs); err != nil {
		return Summary{}, fmt.Errorf("reading summary: %w", err)
	}

	sum.BestWPM = best.Float64
	sum.AverageWPM = avg.Float64
	sum.AvgAccuracy = acc.Float64
	sum.TotalTime = time.Duration(totalMs.Int64) * time.Millisecond
	return sum, nil
}
