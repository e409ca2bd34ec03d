// File path: internal/telemetry/store.go
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS query_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	results INTEGER NOT NULL,
	duration_ms REAL NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_query_log_created ON query_log(created_at DESC);
`

// QueryRecord is one logged retrieval request.
type QueryRecord struct {
	ID         int64     `db:"id" json:"id"`
	Query      string    `db:"query" json:"query"`
	Results    int       `db:"results" json:"results"`
	DurationMs float64   `db:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Stats aggregates the query log for the stats endpoint.
type Stats struct {
	TotalQueries      int64   `json:"total_queries"`
	ZeroResultQueries int64   `json:"zero_result_queries"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`
}

// Store records per-query telemetry in SQLite. All writes are best-effort:
// callers log and continue on failure, a telemetry error never fails a
// query.
type Store struct {
	db *sqlx.DB
}

// Open creates or opens the telemetry database at path and migrates its
// schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("telemetry: path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve telemetry path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", abs)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open telemetry db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate telemetry schema: %w", err)
	}
	common.Logger().Info("telemetry: store ready", "path", abs)
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one query to the log.
func (s *Store) Record(ctx context.Context, query string, results int, duration time.Duration) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_log (query, results, duration_ms) VALUES (?, ?, ?)`,
		query, results, float64(duration.Microseconds())/1000)
	if err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]QueryRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	var records []QueryRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, query, results, duration_ms, created_at FROM query_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load recent queries: %w", err)
	}
	return records, nil
}

// Summarize aggregates the full query log.
func (s *Store) Summarize(ctx context.Context) (Stats, error) {
	if s == nil || s.db == nil {
		return Stats{}, nil
	}
	var stats Stats
	row := s.db.QueryRowxContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN results = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(duration_ms), 0)
		FROM query_log`)
	if err := row.Scan(&stats.TotalQueries, &stats.ZeroResultQueries, &stats.AvgDurationMs); err != nil {
		return Stats{}, fmt.Errorf("aggregate query log: %w", err)
	}
	return stats, nil
}
