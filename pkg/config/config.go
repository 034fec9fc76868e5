// Package config handles loading and saving wt configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/wt/config.yaml
//   - State:   ~/.local/state/wt/ (tour history database)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/walkthrough/pkg/icontext"
	"github.com/vanderheijden86/walkthrough/pkg/layout"
)

const appName = "wt"

// ViewportConfig is the pixel viewport used for layout measurement.
type ViewportConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// ExportConfig holds defaults for `wt export`.
type ExportConfig struct {
	Dir    string `yaml:"dir,omitempty"`
	Format string `yaml:"format,omitempty"` // svg, png or json
}

// HistoryConfig controls the tour history database.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"` // empty = <state dir>/wt.db
}

// Config is the top-level configuration for wt.
type Config struct {
	Language  string         `yaml:"language,omitempty"`   // en, es, fr
	IconTexts string         `yaml:"icon_texts,omitempty"` // empty = embedded asset
	Viewport  ViewportConfig `yaml:"viewport,omitempty"`
	Export    ExportConfig   `yaml:"export,omitempty"`
	History   HistoryConfig  `yaml:"history,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Language: "en",
		Viewport: ViewportConfig{
			Width:  390,
			Height: 844,
		},
		Export: ExportConfig{
			Dir:    "walkthrough-frames",
			Format: "svg",
		},
	}
}

// HistoryEnabled reports whether tour history should be recorded.
func (c Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// HistoryPath returns the database path, defaulting into the state dir.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "wt.db")
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if _, err := icontext.ParseLanguage(c.Language); err != nil {
		errs = append(errs, err)
	}
	if err := (layout.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("viewport %w", err))
	}
	switch c.Export.Format {
	case "svg", "png", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported export format %q (want svg, png or json)", c.Export.Format))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the XDG config directory for wt.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the XDG state directory for wt.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		applyEnv(&cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist. WT_LANG overrides the
// language from the file.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.IconTexts = expandHome(cfg.IconTexts)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	cfg.History.Path = expandHome(cfg.History.Path)
	applyEnv(&cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if lang := strings.TrimSpace(os.Getenv("WT_LANG")); lang != "" {
		cfg.Language = strings.ToLower(lang)
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
