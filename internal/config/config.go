// Package config loads geoedit.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"geoedit/internal/logging"
)

const (
	DefaultPath = "geoedit.yaml"

	EnvConfig   = "GEOEDIT_CONFIG"
	EnvLogLevel = "GEOEDIT_LOG_LEVEL"
)

// Config mirrors geoedit.yaml.
type Config struct {
	Tools   Tools          `yaml:"tools"`
	Fields  Fields         `yaml:"fields"`
	Log     logging.Config `yaml:"log"`
	OpenDir string         `yaml:"open_dir"`
}

// Tools holds the options shared by the draw and edit tools.
type Tools struct {
	Drag          bool      `yaml:"drag"`
	NumObjects    int       `yaml:"num_objects"`
	SnapTolerance float64   `yaml:"snap_tolerance"`
	EmptyValue    string    `yaml:"empty_value"`
	DefaultVertex []float64 `yaml:"default_vertex"` // optional [x, y]
}

// Fields names the coordinate columns loaded shapes are stored under.
type Fields struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Tools: Tools{
			Drag:          true,
			SnapTolerance: 3,
		},
		Fields: Fields{X: "xs", Y: "ys"},
		Log: logging.Config{
			Level:  "info",
			Format: "console",
			Output: "file",
			File:   "geoedit.log",
		},
		OpenDir: ".",
	}
}

// Load reads .env (if any), resolves the config path and parses it over
// the defaults. An empty path means $GEOEDIT_CONFIG, then DefaultPath.
// A missing file at the default location is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Fields.X == "" && c.Fields.Y == "" {
		return errors.New("config: at least one of fields.x and fields.y must be set")
	}
	if c.Tools.NumObjects < 0 {
		return fmt.Errorf("config: num_objects must not be negative, got %d", c.Tools.NumObjects)
	}
	if c.Tools.SnapTolerance < 0 {
		return fmt.Errorf("config: snap_tolerance must not be negative, got %g", c.Tools.SnapTolerance)
	}
	if n := len(c.Tools.DefaultVertex); n != 0 && n != 2 {
		return fmt.Errorf("config: default_vertex needs two values, got %d", n)
	}
	return nil
}
