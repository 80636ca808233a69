// Package config loads the gridastar application configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridastar/internal/telemetry"
)

// EnvLogLevel overrides telemetry.logging.level when set.
const EnvLogLevel = "LOG_LEVEL"

// Config is the top-level application configuration.
type Config struct {
	Grid      GridConfig        `yaml:"grid"`
	Render    RenderConfig      `yaml:"render"`
	Serve     ServeConfig       `yaml:"serve"`
	Telemetry *telemetry.Config `yaml:"telemetry" validate:"required"`
}

// GridConfig sizes the grid used when no scenario dictates one.
type GridConfig struct {
	Rows     int `yaml:"rows" validate:"gte=1,lte=1000"`
	CellSize int `yaml:"cell_size" validate:"gte=1"`
}

// RenderConfig controls the terminal renderer.
type RenderConfig struct {
	Enabled bool          `yaml:"enabled"`
	Delay   time.Duration `yaml:"delay" validate:"gte=0"`
	Clear   bool          `yaml:"clear"`
}

// ServeConfig controls the HTTP stepper.
type ServeConfig struct {
	ListenAddress string `yaml:"listen_address" validate:"required"`
	// Density is the share of cells turned into walls by /init.
	Density float64 `yaml:"density" validate:"gte=0,lt=1"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Rows:     50,
			CellSize: 16,
		},
		Render: RenderConfig{
			Enabled: true,
			Delay:   0,
			Clear:   true,
		},
		Serve: ServeConfig{
			ListenAddress: ":8080",
			Density:       0.25,
		},
		Telemetry: telemetry.DefaultConfig(),
	}
}

// Load reads path on top of Default. An empty path yields the defaults.
// The LOG_LEVEL environment variable is applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Telemetry.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks struct tags and the telemetry section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("field %s failed on %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return c.Telemetry.Validate()
}
