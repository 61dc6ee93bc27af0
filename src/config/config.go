// Package config loads optional defaults for the render commands from a TOML or YAML file.
//
// Values in the file replace the built-in defaults; flags set explicitly on the command line
// replace values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Built-in defaults.
const (
	DefaultThreshold  = 138
	DefaultOtsuOffset = -20
	DefaultUnitFactor = 0.001
	DefaultUnit       = "seconds"
	DefaultReference  = 5.0
	DefaultLogLevel   = "warn"
)

// Config is the top-level defaults file.
type Config struct {
	LogLevel  string          `toml:"log_level" yaml:"log_level"`
	Chart     ChartConfig     `toml:"chart" yaml:"chart"`
	Histogram HistogramConfig `toml:"histogram" yaml:"histogram"`
	Timings   TimingsConfig   `toml:"timings" yaml:"timings"`
}

// ChartConfig holds output settings shared by both commands.
type ChartConfig struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"` // 0 derives height from width
}

// HistogramConfig holds render-histogram defaults.
type HistogramConfig struct {
	Threshold  int    `toml:"threshold" yaml:"threshold"`
	Otsu       bool   `toml:"otsu" yaml:"otsu"`
	OtsuOffset int    `toml:"otsu_offset" yaml:"otsu_offset"`
	Title      string `toml:"title" yaml:"title"`
}

// TimingsConfig holds render-timings defaults.
type TimingsConfig struct {
	UnitFactor     float64 `toml:"unit_factor" yaml:"unit_factor"`
	Unit           string  `toml:"unit" yaml:"unit"`
	Reference      float64 `toml:"reference" yaml:"reference"`
	ReferenceLabel string  `toml:"reference_label" yaml:"reference_label"`
	Title          string  `toml:"title" yaml:"title"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Histogram: HistogramConfig{
			Threshold:  DefaultThreshold,
			OtsuOffset: DefaultOtsuOffset,
		},
		Timings: TimingsConfig{
			UnitFactor: DefaultUnitFactor,
			Unit:       DefaultUnit,
			Reference:  DefaultReference,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if und := md.Undecoded(); len(und) > 0 {
			return nil, fmt.Errorf("unknown config key %q in %s", und[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Histogram.Threshold < 0 || c.Histogram.Threshold > 255 {
		return fmt.Errorf("histogram.threshold %d out of range [0,255]", c.Histogram.Threshold)
	}
	if f := c.Timings.UnitFactor; f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("timings.unit_factor must be a positive number, got %v", f)
	}
	if r := c.Timings.Reference; r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("timings.reference must be >= 0, got %v", r)
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 {
		return fmt.Errorf("chart width/height must be >= 0, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	return nil
}
