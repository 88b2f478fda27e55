// Package config turns the raw flag, environment and file inputs into a
// validated runtime Config.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults shared by the CLI flags and viper.
const (
	DefaultDataDir    = "data"
	DefaultGeoDir     = "geojson"
	DefaultOutDir     = "."
	DefaultDPI        = 300
	DefaultMinYear    = 2010
	DefaultCutoffYear = 2018
	DefaultWorkers    = 1

	MinDPI     = 36
	MaxDPI     = 1200
	MaxWorkers = 64
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// RawInput holds the unvalidated values from flags, environment and the
// config file. Viper unmarshals into this struct.
type RawInput struct {
	DataDir    string `mapstructure:"data-dir"`
	GeoDir     string `mapstructure:"geo-dir"`
	OutDir     string `mapstructure:"out-dir"`
	DPI        int    `mapstructure:"dpi"`
	MinYear    int    `mapstructure:"min-year"`
	CutoffYear int    `mapstructure:"cutoff-year"`
	Workers    int    `mapstructure:"workers"`
	Only       string `mapstructure:"only"`
	Workbook   bool   `mapstructure:"workbook"`
	Parquet    bool   `mapstructure:"parquet"`
	Summary    bool   `mapstructure:"summary"`
	Color      string `mapstructure:"color"`
}

// Config is the validated configuration.
type Config struct {
	DataDir string
	GeoDir  string
	OutDir  string

	DPI        int
	MinYear    int
	CutoffYear int
	Workers    int

	// Only lists chart ids to render; empty renders the whole catalog.
	Only []string

	Workbook  bool
	Parquet   bool
	Summary   bool
	UseColors bool
}

// Process validates input and fills cfg.
func Process(cfg *Config, input *RawInput) error {
	if strings.TrimSpace(input.DataDir) == "" {
		return fmt.Errorf("%w: data-dir must not be empty", ErrInvalid)
	}
	cfg.DataDir = input.DataDir
	cfg.GeoDir = input.GeoDir
	if cfg.GeoDir == "" {
		cfg.GeoDir = DefaultGeoDir
	}
	cfg.OutDir = input.OutDir
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}

	if input.DPI < MinDPI || input.DPI > MaxDPI {
		return fmt.Errorf("%w: dpi must be between %d and %d (received %d)", ErrInvalid, MinDPI, MaxDPI, input.DPI)
	}
	cfg.DPI = input.DPI

	if input.MinYear < 1900 || input.MinYear > 2100 {
		return fmt.Errorf("%w: min-year out of range (received %d)", ErrInvalid, input.MinYear)
	}
	if input.CutoffYear <= input.MinYear {
		return fmt.Errorf("%w: cutoff-year %d must be after min-year %d", ErrInvalid, input.CutoffYear, input.MinYear)
	}
	cfg.MinYear = input.MinYear
	cfg.CutoffYear = input.CutoffYear

	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 1 and %d (received %d)", ErrInvalid, MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Only = SplitList(input.Only)
	cfg.Workbook = input.Workbook
	cfg.Parquet = input.Parquet
	cfg.Summary = input.Summary

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("%w: invalid --color value: %v", ErrInvalid, err)
	}
	cfg.UseColors = colors
	return nil
}

// SplitList splits a comma separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseBoolString parses yes/no/true/false/1/0.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
