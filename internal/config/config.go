// Package config loads the TOML configuration of the recognizer. Every
// section starts from the owning package's defaults, so a file only needs
// the values it changes.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"sudoku-reader/internal/binarize"
	"sudoku-reader/internal/extract"
	"sudoku-reader/internal/grid"
	"sudoku-reader/internal/logger"
	"sudoku-reader/internal/pipeline"
	"sudoku-reader/internal/skew"
)

// Debug controls snapshot output.
type Debug struct {
	Dir string `toml:"dir"` // empty disables snapshots
}

// Training locates labeled samples and the trained template file.
type Training struct {
	Dir       string `toml:"dir"`
	Templates string `toml:"templates"`
}

// Config is the complete recognizer configuration.
type Config struct {
	Log      logger.Config   `toml:"log"`
	Debug    Debug           `toml:"debug"`
	Training Training        `toml:"training"`
	Binarize binarize.Params `toml:"binarize"`
	Skew     skew.Params     `toml:"skew"`
	Grid     grid.Params     `toml:"grid"`
	Extract  extract.Params  `toml:"extract"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:      logger.DefaultConfig(),
		Training: Training{Dir: "train"},
		Binarize: binarize.DefaultParams(),
		Skew:     skew.DefaultParams(),
		Grid:     grid.DefaultParams(),
		Extract:  extract.DefaultParams(),
	}
}

// Load decodes path over the defaults. Unknown keys are an error so that
// typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Pipeline returns the stage parameters of the recognizer.
func (c Config) Pipeline() pipeline.Params {
	return pipeline.Params{
		Binarize: c.Binarize,
		Skew:     c.Skew,
		Grid:     c.Grid,
		Extract:  c.Extract,
	}
}

// Validate checks the values a stage cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Binarize.Window < 1 || c.Binarize.Window%2 == 0 {
		errs = append(errs, fmt.Errorf("binarize.window must be a positive odd number, got %d", c.Binarize.Window))
	}
	if c.Skew.ThresholdRatio <= 0 || c.Skew.ThresholdRatio > 1 {
		errs = append(errs, fmt.Errorf("skew.threshold_ratio must be in (0, 1], got %g", c.Skew.ThresholdRatio))
	}
	if c.Grid.ThresholdRatio <= 0 || c.Grid.ThresholdRatio > 1 {
		errs = append(errs, fmt.Errorf("grid.threshold_ratio must be in (0, 1], got %g", c.Grid.ThresholdRatio))
	}
	if c.Grid.OutputSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.output_size must be positive, got %d", c.Grid.OutputSize))
	}
	if c.Extract.Size < 9 {
		errs = append(errs, fmt.Errorf("extract.size must be at least 9, got %d", c.Extract.Size))
	}
	return errors.Join(errs...)
}
