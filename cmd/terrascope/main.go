package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/terrascope/terrascope/internal/config"
	"github.com/terrascope/terrascope/internal/raster"
	"github.com/terrascope/terrascope/internal/runner"
	"github.com/terrascope/terrascope/internal/store"
	"github.com/terrascope/terrascope/internal/valuation"
)

const ConfigPath = "config/terrascope.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	cfgPath := ConfigPath
	if p := os.Getenv("TERRASCOPE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(cfg.Viewpoints) == 0 {
		return fmt.Errorf("config %s: no viewpoints", cfgPath)
	}

	dem, err := raster.ReadASCII(cfg.DEMPath)
	if err != nil {
		return fmt.Errorf("loading DEM: %w", err)
	}
	cellSize := cfg.CellSize
	if cellSize <= 0 {
		cellSize = dem.CellSize
	}
	slog.Info("DEM loaded",
		"path", cfg.DEMPath,
		"rows", dem.Grid.Rows(), "cols", dem.Grid.Cols(),
		"cell_size", cellSize)

	value, err := buildValuation(cfg.Valuation)
	if err != nil {
		return fmt.Errorf("building valuation: %w", err)
	}

	var st *store.Store
	var runID int64
	if cfg.Database != nil {
		dsn := cfg.Database.DSN()
		if err := store.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		st, err = store.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer st.Close()
		runID, err = st.CreateRun(ctx, dem.Grid.Rows(), dem.Grid.Cols(), cellSize)
		if err != nil {
			return err
		}
		slog.Info("run registered", "run_id", runID)
	}

	points := make([]runner.Viewpoint, len(cfg.Viewpoints))
	for i, vp := range cfg.Viewpoints {
		// Load guarantees the pointer fields are set.
		points[i] = runner.Viewpoint{
			Row:          vp.Row,
			Col:          vp.Col,
			RadiusMeters: vp.Radius,
			Coefficient:  *vp.Coefficient,
			ObserverElev: *vp.OffsetA,
			TargetElev:   vp.OffsetB,
		}
	}

	r := &runner.Runner{
		DEM:      dem.Grid,
		CellSize: cellSize,
		Value:    value,
		Workers:  cfg.Workers,
	}
	agg, results, err := r.Run(ctx, points)
	if err != nil {
		return fmt.Errorf("sweeping viewpoints: %w", err)
	}

	if st != nil {
		for _, res := range results {
			if err := st.SaveResult(ctx, runID, res); err != nil {
				return err
			}
		}
		if err := st.FinishRun(ctx, runID); err != nil {
			return err
		}
	}

	out := &raster.ASCIIGrid{
		Grid:     agg,
		XCorner:  dem.XCorner,
		YCorner:  dem.YCorner,
		CellSize: dem.CellSize,
	}
	if err := raster.WriteASCII(cfg.OutputPath, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	slog.Info("scenic quality raster written", "path", cfg.OutputPath, "viewpoints", len(results))
	return nil
}

func buildValuation(v config.Valuation) (valuation.Func, error) {
	switch v.Function {
	case "polynomial":
		return valuation.Polynomial(v.A, v.B, v.C, v.D, v.MaxRadius)
	case "logarithmic":
		return valuation.Logarithmic(v.A, v.B, v.MaxRadius)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown valuation function %q", v.Function)
	}
}
