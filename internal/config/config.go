package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full terrascope run configuration.
type Config struct {
	// Rasters
	DEMPath    string `yaml:"dem_path"`
	OutputPath string `yaml:"output_path"`

	// CellSize in meters per cell; 0 takes the value from the DEM header.
	CellSize float64 `yaml:"cell_size"`

	// Workers caps concurrent viewpoint sweeps.
	Workers int `yaml:"workers"`

	// Viewpoints to sweep.
	Viewpoints []Viewpoint `yaml:"viewpoints"`

	// Valuation selects and parameterizes the distance-decay curve.
	Valuation Valuation `yaml:"valuation"`

	// Database is optional; when present, run summaries are persisted.
	Database *DatabaseConfig `yaml:"database"`
}

// Viewpoint is one observation point. Radius is in meters, negative for
// unbounded. OffsetA/OffsetB follow the ArcGIS field names: observer height
// above the terrain and extra height applied to every target cell.
// Coefficient and OffsetA are pointers so that an explicit 0 in the file is
// distinguishable from an absent key (absent keys default to 1).
type Viewpoint struct {
	Row         int      `yaml:"row"`
	Col         int      `yaml:"col"`
	Radius      float64  `yaml:"radius"`
	Coefficient *float64 `yaml:"coefficient"`
	OffsetA     *float64 `yaml:"offset_a"`
	OffsetB     float64  `yaml:"offset_b"`
}

// Valuation parameterizes the distance-decay curve applied to visible cells.
type Valuation struct {
	Function  string  `yaml:"function"` // "polynomial" or "logarithmic"
	A         float64 `yaml:"a"`
	B         float64 `yaml:"b"`
	C         float64 `yaml:"c"`
	D         float64 `yaml:"d"`
	MaxRadius float64 `yaml:"max_valuation_radius"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns a Config with sensible defaults: one worker per viewpoint
// batch of four, a logarithmic curve, and an unbounded radius.
func Default() Config {
	return Config{
		DEMPath:    "dem.asc",
		OutputPath: "scenic_quality.asc",
		Workers:    4,
		Valuation: Valuation{
			Function:  "logarithmic",
			A:         1.0,
			B:         0.0,
			MaxRadius: 8000,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file returns
// the defaults. Viewpoint coefficients default to 1 and observer height to
// 1 meter when the keys are absent, matching the source data conventions;
// explicit zeros are kept.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	for i := range cfg.Viewpoints {
		vp := &cfg.Viewpoints[i]
		if vp.Coefficient == nil {
			one := 1.0
			vp.Coefficient = &one
		}
		if vp.OffsetA == nil {
			one := 1.0
			vp.OffsetA = &one
		}
	}
	return cfg, nil
}
