// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Domain    DomainConfig    `yaml:"domain"`
	Grid      GridConfig      `yaml:"grid"`
	Contour   ContourConfig   `yaml:"contour"`
	View      ViewConfig      `yaml:"view"`
	Sources   []SourceConfig  `yaml:"sources"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Controls panel on the right of the field
}

// DomainConfig holds the field's rectangular domain.
type DomainConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"` // Inset of the first grid vertex from the domain edge
}

// GridConfig holds sampling grid resolution bounds.
type GridConfig struct {
	CellMax  float64 `yaml:"cell_max"`  // Cell size at resolution 0%
	CellMin  float64 `yaml:"cell_min"`  // Cell size at resolution 100%
	CellSize float64 `yaml:"cell_size"` // Initial cell size
	Workers  int     `yaml:"workers"`   // Resample bands evaluated concurrently (1 = single-threaded)
}

// ContourConfig holds contour extraction settings.
type ContourConfig struct {
	Mode    string  `yaml:"mode"`    // "interpolated" or "blocky"
	Saddle  string  `yaml:"saddle"`  // "fixed" or "center"
	Epsilon float64 `yaml:"epsilon"` // Inverse-lerp guard for equal edge samples
}

// ViewConfig holds the initial state of the overlay toggles.
type ViewConfig struct {
	ShowSamples bool `yaml:"show_samples"`
	ShowGrid    bool `yaml:"show_grid"`
	Animate     bool `yaml:"animate"`
}

// SourceConfig declares one circular influence source.
// Velocity is in domain units per second.
type SourceConfig struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Radius float64 `yaml:"radius" json:"radius"`
	VX     float64 `yaml:"vx" json:"vx"`
	VY     float64 `yaml:"vy" json:"vy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Interpolate  bool    // Contour.Mode == "interpolated"
	CenterSaddle bool    // Contour.Saddle == "center"
	Resolution   float64 // Slider percentage [0,100] matching Grid.CellSize
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Finalize validates the config and recomputes derived values. Call it
// after changing a loaded config in place.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Parse overlays YAML data onto cfg. Only fields present in data are replaced;
// a sources list replaces the default list wholesale.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks the values the simulation relies on.
func (c *Config) Validate() error {
	if c.Domain.Width <= 0 || c.Domain.Height <= 0 {
		return fmt.Errorf("%w: domain %gx%g must be positive", ErrInvalid, c.Domain.Width, c.Domain.Height)
	}
	if c.Domain.Offset < 0 || 2*c.Domain.Offset >= c.Domain.Width || 2*c.Domain.Offset >= c.Domain.Height {
		return fmt.Errorf("%w: domain offset %g out of range", ErrInvalid, c.Domain.Offset)
	}
	if c.Grid.CellMin <= 0 || c.Grid.CellMax <= c.Grid.CellMin {
		return fmt.Errorf("%w: cell size bounds [%g, %g]", ErrInvalid, c.Grid.CellMin, c.Grid.CellMax)
	}
	switch c.Contour.Mode {
	case "interpolated", "blocky":
	default:
		return fmt.Errorf("%w: contour mode %q", ErrInvalid, c.Contour.Mode)
	}
	switch c.Contour.Saddle {
	case "fixed", "center":
	default:
		return fmt.Errorf("%w: saddle strategy %q", ErrInvalid, c.Contour.Saddle)
	}
	for i, s := range c.Sources {
		if s.Radius <= 0 {
			return fmt.Errorf("%w: source %d radius %g must be positive", ErrInvalid, i, s.Radius)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Out-of-range values are clamped rather than rejected
	if c.Grid.CellSize < c.Grid.CellMin {
		c.Grid.CellSize = c.Grid.CellMin
	}
	if c.Grid.CellSize > c.Grid.CellMax {
		c.Grid.CellSize = c.Grid.CellMax
	}
	if c.Grid.Workers < 1 {
		c.Grid.Workers = 1
	}
	if c.Contour.Epsilon <= 0 {
		c.Contour.Epsilon = 1e-9
	}

	c.Derived.Interpolate = c.Contour.Mode == "interpolated"
	c.Derived.CenterSaddle = c.Contour.Saddle == "center"
	// Inverse of cellSize = max*(1-p) + min*p
	p := (c.Grid.CellMax - c.Grid.CellSize) / (c.Grid.CellMax - c.Grid.CellMin)
	c.Derived.Resolution = p * 100
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
