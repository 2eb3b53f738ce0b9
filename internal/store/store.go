package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Utgast/cabletherm/pkg/models"
)

// Store persists solve results and spacing-scan traces in SQLite, giving
// rating runs an audit trail that survives the process.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS solve_runs (
	request_id TEXT PRIMARY KEY,
	mode       TEXT NOT NULL,
	cable      TEXT NOT NULL,
	run_time   TIMESTAMP NOT NULL,
	success    INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	payload    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS spacing_samples (
	request_id TEXT NOT NULL REFERENCES solve_runs(request_id),
	spacing_m  REAL NOT NULL,
	max_temp_c REAL NOT NULL,
	feasible   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_spacing_samples_request ON spacing_samples(request_id);
`

// New opens (or creates) the store at the given path. ":memory:" works for
// tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult records one finished solve. For spacing runs the full scan
// trace lands in spacing_samples as well.
func (s *Store) SaveResult(ctx context.Context, res models.SolveResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("store: marshal result %s: %w", res.RequestID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO solve_runs (request_id, mode, cable, run_time, success, error, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RequestID, res.Mode, res.Cable, res.Time, res.Success, res.Error, string(payload))
	if err != nil {
		return fmt.Errorf("store: insert run %s: %w", res.RequestID, err)
	}

	if res.Spacing != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM spacing_samples WHERE request_id = ?`, res.RequestID); err != nil {
			return fmt.Errorf("store: clear samples %s: %w", res.RequestID, err)
		}
		for _, sample := range res.Spacing.Samples {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO spacing_samples (request_id, spacing_m, max_temp_c, feasible) VALUES (?, ?, ?, ?)`,
				res.RequestID, sample.Spacing, sample.MaxTemp, sample.Feasible)
			if err != nil {
				return fmt.Errorf("store: insert sample %s: %w", res.RequestID, err)
			}
		}
	}

	return tx.Commit()
}

// Result fetches one solve by request id. The second return is false when
// the id is unknown.
func (s *Store) Result(ctx context.Context, requestID string) (models.SolveResult, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM solve_runs WHERE request_id = ?`, requestID).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.SolveResult{}, false, nil
	}
	if err != nil {
		return models.SolveResult{}, false, fmt.Errorf("store: query %s: %w", requestID, err)
	}

	var res models.SolveResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return models.SolveResult{}, false, fmt.Errorf("store: decode %s: %w", requestID, err)
	}
	return res, true, nil
}

// Recent returns the latest solves, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.SolveResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM solve_runs ORDER BY run_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query recent: %w", err)
	}
	defer rows.Close()

	var results []models.SolveResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		var res models.SolveResult
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			return nil, fmt.Errorf("store: decode: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// SampleCount returns how many spacing samples are recorded for a run.
func (s *Store) SampleCount(ctx context.Context, requestID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM spacing_samples WHERE request_id = ?`, requestID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count samples %s: %w", requestID, err)
	}
	return n, nil
}
