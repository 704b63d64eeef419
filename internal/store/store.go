// Package store persists viewshed run summaries to PostgreSQL.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terrascope/terrascope/internal/runner"
)

// Store wraps a pgx connection pool for run bookkeeping.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a Store handle.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CreateRun records the start of a batch run and returns its id.
func (s *Store) CreateRun(ctx context.Context, rows, cols int, cellSize float64) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO runs (grid_rows, grid_cols, cell_size, started_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		rows, cols, cellSize, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating run: %w", err)
	}
	return id, nil
}

// SaveResult records one completed viewpoint sweep under a run.
func (s *Store) SaveResult(ctx context.Context, runID int64, res runner.Result) error {
	vp := res.Viewpoint
	_, err := s.pool.Exec(ctx,
		`INSERT INTO viewpoints
		   (run_id, grid_row, grid_col, radius_m, coefficient, observer_elev, target_elev, visible_cells, sweep_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		runID, vp.Row, vp.Col, vp.RadiusMeters, vp.Coefficient,
		vp.ObserverElev, vp.TargetElev, res.VisibleCells, res.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("saving viewpoint (%d,%d) of run %d: %w", vp.Row, vp.Col, runID, err)
	}
	return nil
}

// FinishRun stamps the run's completion time.
func (s *Store) FinishRun(ctx context.Context, runID int64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE runs SET finished_at = $1 WHERE id = $2`, time.Now(), runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run %d: %w", runID, err)
	}
	return nil
}
