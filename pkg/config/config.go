// Package config handles loading and saving the iv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/inventa/config.yaml
//   - Data:    ~/.local/share/inventa/ (grid layouts, exports)
//   - State:   ~/.local/state/inventa/ (saved grid view state)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	TimeoutMS int    `yaml:"timeout_ms,omitempty"`
}

// Timeout converts the configured timeout to a duration, falling back to
// zero (caller picks its default) when unset.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutMS <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultEntity string `yaml:"default_entity,omitempty"` // items, stocks, inbounds, outbounds
	PageSize      int    `yaml:"page_size,omitempty"`      // 10, 20, 50 or 100
	Locale        string `yaml:"locale,omitempty"`         // BCP 47 tag used for column sorting
}

// StateConfig controls where saved grid view state lives.
type StateConfig struct {
	Backend string `yaml:"backend,omitempty"` // file, sqlite or memory
	Path    string `yaml:"path,omitempty"`    // override for the state dir / db file
}

// Config is the top-level configuration for iv.
type Config struct {
	API   APIConfig   `yaml:"api,omitempty"`
	UI    UIConfig    `yaml:"ui,omitempty"`
	State StateConfig `yaml:"state,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:3000/api/v1",
			TimeoutMS: 15000,
		},
		UI: UIConfig{
			DefaultEntity: "items",
			PageSize:      20,
			Locale:        "en",
		},
		State: StateConfig{
			Backend: "file",
		},
	}
}

// Validate checks the enumerated fields. Zero values are fine, they fall
// back to defaults; set values have to be from the known sets.
func (c Config) Validate() error {
	switch c.State.Backend {
	case "", "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown state backend %q", c.State.Backend)
	}
	switch c.UI.DefaultEntity {
	case "", "items", "stocks", "inbounds", "outbounds":
	default:
		return fmt.Errorf("unknown entity %q", c.UI.DefaultEntity)
	}
	switch c.UI.PageSize {
	case 0, 10, 20, 50, 100:
	default:
		return fmt.Errorf("page size %d not in 10/20/50/100", c.UI.PageSize)
	}
	return nil
}

// ConfigDir returns the XDG config directory for iv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "inventa")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inventa")
}

// DataDir returns the XDG data directory for iv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "inventa")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "inventa")
}

// StateDir returns the XDG state directory for iv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "inventa")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "inventa")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// GridConfigDir returns the directory holding per-entity grid layout
// overrides (items.yaml, stocks.yaml, ...).
func GridConfigDir() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "grids")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	cfg.State.Path = expandHome(cfg.State.Path)
	return cfg, nil
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
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
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

// StatePath resolves where the chosen backend keeps its state. For the
// file backend this is a directory, for sqlite a database file.
func (c Config) StatePath() string {
	if c.State.Path != "" {
		return c.State.Path
	}
	dir := StateDir()
	if dir == "" {
		return ""
	}
	if c.State.Backend == "sqlite" {
		return filepath.Join(dir, "state.db")
	}
	return filepath.Join(dir, "grid-state")
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
