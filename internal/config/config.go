// Package config loads gpxsanitize settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/planbiir/gpxsanitize/internal/sanitize"
)

// DefaultCreator is written in the creator attribute of output files.
const DefaultCreator = "gpx_sanitizer"

// Config holds the settings of one invocation.
type Config struct {
	ThresholdMeters float64
	Workers         int
	ReconstructAll  bool
	OutputDir       string
	Creator         string
	Debug           bool
}

// fileConfig mirrors Config with pointers so that omitted keys keep their
// defaults.
type fileConfig struct {
	ThresholdMeters *float64 `yaml:"threshold_meters,omitempty"`
	Workers         *int     `yaml:"workers,omitempty"`
	ReconstructAll  *bool    `yaml:"reconstruct_all,omitempty"`
	OutputDir       *string  `yaml:"output_dir,omitempty"`
	Creator         *string  `yaml:"creator,omitempty"`
	Debug           *bool    `yaml:"debug,omitempty"`
}

// Default returns the built-in settings used when no file or flag overrides them.
func Default() Config {
	defaults := sanitize.DefaultConfig()
	return Config{
		ThresholdMeters: defaults.Threshold,
		Workers:         defaults.Workers,
		ReconstructAll:  defaults.ReconstructAll,
		Creator:         DefaultCreator,
	}
}

// Load reads path and overlays its keys on Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ThresholdMeters != nil {
		cfg.ThresholdMeters = *fc.ThresholdMeters
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.ReconstructAll != nil {
		cfg.ReconstructAll = *fc.ReconstructAll
	}
	if fc.OutputDir != nil {
		cfg.OutputDir = *fc.OutputDir
	}
	if fc.Creator != nil {
		cfg.Creator = *fc.Creator
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings no run could use.
func (c Config) Validate() error {
	var errs []error
	if math.IsNaN(c.ThresholdMeters) || c.ThresholdMeters <= 0 {
		errs = append(errs, fmt.Errorf("threshold_meters must be positive, got %v", c.ThresholdMeters))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Creator == "" {
		errs = append(errs, errors.New("creator must not be empty"))
	}
	return errors.Join(errs...)
}

// Sanitize converts the settings into the sanitizer configuration.
func (c Config) Sanitize() sanitize.Config {
	cfg := sanitize.DefaultConfig()
	cfg.Threshold = c.ThresholdMeters
	cfg.Workers = c.Workers
	cfg.ReconstructAll = c.ReconstructAll
	return cfg
}
