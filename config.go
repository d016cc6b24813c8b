package heatgrid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/heatgrid/stencil"
)

// Config is the configuration for a Simulation.
//
// The zero value is not usable; start from DefaultConfig or rely on
// SetDefaults, which New applies automatically.
type Config struct {
	// NX is the global grid height (X axis). Together with NY it must
	// divide evenly across the worker count.
	NX int `yaml:"nx"`

	// NY is the global grid width (Y axis).
	NY int `yaml:"ny"`

	// Steps is the number of diffusion time steps. Zero is valid and turns
	// the run into a pure scatter/gather round trip.
	Steps int `yaml:"steps"`

	// Workers is the number of block owners the grid is decomposed across.
	// Prime values above 2 are rejected: they only admit a degenerate 1×W
	// strip decomposition.
	Workers int `yaml:"workers"`

	// Threads is the per-owner worker pool size used to fan out the
	// stencil passes. Must be positive.
	Threads int `yaml:"threads"`

	// Params holds the diffusion coefficients, fixed for the whole run.
	Params stencil.Params `yaml:"params"`

	// SubjectPrefix namespaces the transfer subjects when running over the
	// NATS transport. Ignored by the in-process transport.
	SubjectPrefix string `yaml:"subjectPrefix"`
}

// DefaultConfig returns the reference configuration: a 256×320 grid, 100
// steps, cx=cy=0.1, four owners, single-threaded owners.
func DefaultConfig() Config {
	return Config{
		NX:            256,
		NY:            320,
		Steps:         100,
		Workers:       4,
		Threads:       1,
		Params:        stencil.DefaultParams(),
		SubjectPrefix: "heatgrid",
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Steps is left alone: zero is a meaningful value (a pure scatter/gather
// round trip), so it cannot double as "unset".
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.NX == 0 {
		cfg.NX = defaults.NX
	}
	if cfg.NY == 0 {
		cfg.NY = defaults.NY
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.Threads == 0 {
		cfg.Threads = defaults.Threads
	}
	if cfg.Params == (stencil.Params{}) {
		cfg.Params = defaults.Params
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = defaults.SubjectPrefix
	}
}

// Validate checks configuration constraints and returns an error for
// invalid values. Divisibility and primality of the worker count are
// checked by the partitioner, not here.
func (cfg *Config) Validate() error {
	if cfg.NX < 1 || cfg.NY < 1 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, cfg.NX, cfg.NY)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: negative step count %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("%w: worker count %d", ErrInvalidConfig, cfg.Workers)
	}
	if cfg.Threads < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidThreadCount, cfg.Threads)
	}
	if cfg.Params.CX <= 0 || cfg.Params.CY <= 0 {
		return fmt.Errorf("%w: diffusion coefficients must be positive, got cx=%v cy=%v",
			ErrInvalidConfig, cfg.Params.CX, cfg.Params.CY)
	}

	return nil
}

// ValidateWithWarnings logs warnings for legal but questionable values.
// Called by New after the logger is available.
//
// The explicit 5-point scheme is numerically stable only for cx+cy <= 0.5.
// Per the design notes this is an unchecked precondition: the run proceeds,
// the operator gets a warning.
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Params.CX+cfg.Params.CY > 0.5 {
		logger.Warn(
			"diffusion coefficients exceed the explicit-scheme stability bound, results may diverge",
			"cx", cfg.Params.CX,
			"cy", cfg.Params.CY,
			"bound", 0.5,
		)
	}
}

// LoadConfig reads a yaml configuration file and applies defaults for
// anything it leaves unset.
//
// Parameters:
//   - path: Path of the yaml file
//
// Returns:
//   - Config: Parsed configuration with defaults applied
//   - error: File or yaml error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	SetDefaults(&cfg)

	return cfg, nil
}
