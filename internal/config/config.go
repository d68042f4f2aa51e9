// Package config loads graphwalk settings.
//
// Load order: defaults, then the YAML file, then GRAPHWALK_* environment
// variables, then validation. Command-line flags are applied by the caller
// after Load.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/wesen/graphwalk/pkg/generator"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	// Params validates itself; see generator.Params.Validate.
	Params generator.Params `yaml:"params" validate:"-"`
	// Seed fixes the random source. Zero picks a time-based seed.
	Seed  int64       `yaml:"seed"`
	Log   LogConfig   `yaml:"log"`
	UI    UIConfig    `yaml:"ui"`
	Stats StatsConfig `yaml:"stats"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	// File receives log output; the terminal belongs to the UI. Empty
	// disables logging.
	File        string `yaml:"file"`
	Development bool   `yaml:"development"`
}

// UIConfig tunes the terminal view.
type UIConfig struct {
	ShowFastest bool `yaml:"show_fastest"`
	// CellWidth is how many columns one grid cell spans horizontally.
	CellWidth int `yaml:"cell_width" validate:"min=1,max=4"`
}

// StatsConfig drives the stats command.
type StatsConfig struct {
	Rounds int `yaml:"rounds" validate:"min=1,max=10000"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Params: generator.DefaultParams(),
		Log:    LogConfig{Level: "info"},
		UI:     UIConfig{CellWidth: 2},
		Stats:  StatsConfig{Rounds: 20},
	}
}

var validate = validator.New()

// Validate checks every section. Bad generation parameters wrap
// generator.ErrInvalidParams.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, the file at path (optional) and the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv("GRAPHWALK_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GRAPHWALK_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("GRAPHWALK_NODES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRAPHWALK_NODES: %w", err)
		}
		cfg.Params.NodeCount = n
	}
	if v := os.Getenv("GRAPHWALK_MAX_DEGREE"); v != "" {
		if err := cfg.Params.MaxDegree.Set(v); err != nil {
			return fmt.Errorf("GRAPHWALK_MAX_DEGREE: %w", err)
		}
	}
	if v := os.Getenv("GRAPHWALK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GRAPHWALK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
