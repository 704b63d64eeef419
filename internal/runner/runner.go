// Package runner fans a batch of viewpoints out over worker goroutines and
// folds the per-viewpoint results into one aggregate scenic value grid.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/terrascope/terrascope/internal/raster"
	"github.com/terrascope/terrascope/internal/valuation"
	"github.com/terrascope/terrascope/internal/viewshed"
)

// Viewpoint is one observation point with its per-point parameters.
type Viewpoint struct {
	Row, Col int

	// RadiusMeters bounds the sweep; negative means unbounded.
	RadiusMeters float64

	// Coefficient weights this viewpoint's contribution to the aggregate.
	Coefficient float64

	ObserverElev float64
	TargetElev   float64
}

// Result summarizes one completed sweep.
type Result struct {
	Viewpoint    Viewpoint
	VisibleCells int
	Duration     time.Duration
}

// Runner computes viewsheds for many viewpoints against one shared DEM.
// The DEM is read-only during Run; every sweep gets its own output grid, so
// no synchronization beyond the aggregate fold is needed.
type Runner struct {
	DEM      *raster.Grid
	CellSize float64

	// Value converts distance to scenic value for visible cells. When nil,
	// each visible cell contributes 1 (a plain overlap count).
	Value valuation.Func

	// Workers caps concurrent sweeps; values below 1 mean one worker.
	Workers int
}

// Run sweeps every viewpoint and returns the aggregate grid alongside the
// per-viewpoint summaries, indexed like points. Cancelling ctx stops new
// sweeps; sweeps already underway run to completion.
func (r *Runner) Run(ctx context.Context, points []Viewpoint) (*raster.Grid, []Result, error) {
	agg, err := raster.New(r.DEM.Rows(), r.DEM.Cols())
	if err != nil {
		return nil, nil, fmt.Errorf("allocating aggregate grid: %w", err)
	}

	cellSize := r.CellSize
	if cellSize <= 0 {
		cellSize = 1
	}

	results := make([]Result, len(points))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i, vp := range points {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			radius := vp.RadiusMeters
			if radius >= 0 {
				radius /= cellSize
			}
			vis := raster.NewLike(r.DEM)

			start := time.Now()
			err := viewshed.Compute(r.DEM, vis, viewshed.Params{
				Row:          vp.Row,
				Col:          vp.Col,
				Radius:       radius,
				ObserverElev: vp.ObserverElev,
				TargetElev:   vp.TargetElev,
				CellSize:     cellSize,
			})
			if err != nil {
				return fmt.Errorf("viewpoint (%d,%d): %w", vp.Row, vp.Col, err)
			}

			visible := r.fold(&mu, agg, vis, vp, cellSize)
			results[i] = Result{
				Viewpoint:    vp,
				VisibleCells: visible,
				Duration:     time.Since(start),
			}
			slog.Info("viewpoint swept",
				"row", vp.Row, "col", vp.Col,
				"visible", visible, "took", results[i].Duration)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return agg, results, nil
}

// fold adds one viewpoint's weighted value raster into the aggregate and
// returns the number of visible cells.
func (r *Runner) fold(mu *sync.Mutex, agg, vis *raster.Grid, vp Viewpoint, cellSize float64) int {
	vr, vc := vp.Row, vp.Col
	visible := 0
	mu.Lock()
	defer mu.Unlock()
	for row := range vis.Rows() {
		for col := range vis.Cols() {
			v := vis.At(row, col)
			if v == vis.NoData || v <= 0 {
				continue
			}
			visible++
			value := 1.0
			if r.Value != nil {
				dRow := float64(row - vr)
				dCol := float64(col - vc)
				dist := cellSize * math.Hypot(dRow, dCol)
				value = r.Value(dist)
			}
			agg.Set(row, col, agg.At(row, col)+vp.Coefficient*value)
		}
	}
	return visible
}
