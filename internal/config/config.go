// Package config loads application settings from built-in defaults, an optional
// YAML file and AFFINITY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"affinity-map/internal/store"
	"affinity-map/internal/viewport"
)

// AppDir is the directory name used under the user config dir.
const AppDir = "affinity-map"

// ConfigEnv names the variable pointing at a YAML config file.
const ConfigEnv = "AFFINITY_CONFIG"

// Config holds every tunable of the application.
type Config struct {
	Store            string        `yaml:"store" env:"AFFINITY_STORE"`
	StorePath        string        `yaml:"store_path" env:"AFFINITY_STORE_PATH"`
	PanPolicy        string        `yaml:"pan_policy" env:"AFFINITY_PAN_POLICY"`
	PanMargin        float64       `yaml:"pan_margin" env:"AFFINITY_PAN_MARGIN"`
	WheelSensitivity float64       `yaml:"wheel_sensitivity" env:"AFFINITY_WHEEL_SENSITIVITY"`
	ZoomStep         float64       `yaml:"zoom_step" env:"AFFINITY_ZOOM_STEP"`
	SaveDelay        time.Duration `yaml:"save_delay" env:"AFFINITY_SAVE_DELAY"`
	WatchFile        string        `yaml:"watch_file" env:"AFFINITY_WATCH_FILE"`
	LogLevel         string        `yaml:"log_level" env:"AFFINITY_LOG_LEVEL"`
}

// Default returns the built-in configuration. StorePath is left empty and
// resolved per backend by Load.
func Default() Config {
	return Config{
		Store:            store.BackendFile,
		PanPolicy:        viewport.PolicyClampToMargin.String(),
		PanMargin:        viewport.DefaultMargin,
		WheelSensitivity: viewport.DefaultWheelSensitivity,
		ZoomStep:         viewport.DefaultZoomStep,
		SaveDelay:        250 * time.Millisecond,
		LogLevel:         "info",
	}
}

// Load builds the configuration. path may be empty, in which case ConfigEnv is
// consulted; when both are empty no file is read.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath(cfg.Store)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// DefaultStorePath returns the state location for a backend under the user
// config directory.
func DefaultStorePath(backend string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	name := "state.json"
	if strings.EqualFold(backend, store.BackendSQLite) {
		name = "state.db"
	}
	return filepath.Join(dir, AppDir, name)
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Store) {
	case store.BackendFile, store.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("store: %w: %q", store.ErrUnknownBackend, c.Store))
	}
	if _, err := viewport.ParsePolicy(c.PanPolicy); err != nil {
		errs = append(errs, fmt.Errorf("pan_policy: %w", err))
	}
	if c.PanMargin <= 0 {
		errs = append(errs, fmt.Errorf("pan_margin must be positive, got %v", c.PanMargin))
	}
	if c.WheelSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("wheel_sensitivity must be positive, got %v", c.WheelSensitivity))
	}
	if c.ZoomStep <= 0 {
		errs = append(errs, fmt.Errorf("zoom_step must be positive, got %v", c.ZoomStep))
	}
	if c.SaveDelay < 0 {
		errs = append(errs, fmt.Errorf("save_delay must not be negative, got %v", c.SaveDelay))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// ViewportSettings converts the config into controller settings.
func (c Config) ViewportSettings() (viewport.Settings, error) {
	policy, err := viewport.ParsePolicy(c.PanPolicy)
	if err != nil {
		return viewport.Settings{}, err
	}
	return viewport.Settings{
		Policy:           policy,
		Margin:           c.PanMargin,
		WheelSensitivity: c.WheelSensitivity,
		ZoomStep:         c.ZoomStep,
	}, nil
}

// ParseLevel maps a level name onto slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}
