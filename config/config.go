// Package config loads and validates screensaver settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pipes/glyph"
	"github.com/lixenwraith/pipes/palette"
)

// EnvPath overrides the default config file location
const EnvPath = "PIPES_CONFIG"

// Framerates lists the accepted frames per second
var Framerates = []int{10, 20, 30, 50, 60, 100, 120}

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every user-facing setting
type Config struct {
	Symbols   []string `yaml:"symbols"`
	Framerate int      `yaml:"framerate"`
	Colors    string   `yaml:"colors"`
	MinPipes  int      `yaml:"minPipes"`
	MaxPipes  int      `yaml:"maxPipes"`
	Seed      int64    `yaml:"seed"`
	Sound     bool     `yaml:"sound"`
	Volume    float64  `yaml:"volume"`
	Debug     bool     `yaml:"debug"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Symbols:   []string{glyph.DefaultSet},
		Framerate: 100,
		Colors:    string(palette.Random),
		MinPipes:  3,
		MaxPipes:  25,
		Volume:    0.5,
	}
}

// DefaultPath returns $HOME/.config/pipes/config.yaml, or the EnvPath
// override when set
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pipes", "config.yaml")
}

// Load overlays the file at path on the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	expanded, err := expandPath(trimmed)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories
func (c *Config) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return err
	}
	return os.WriteFile(expanded, data, 0o644)
}

// Validate reports the first unusable setting
func (c *Config) Validate() error {
	if c.MinPipes < 1 {
		return fmt.Errorf("%w: minPipes must be >= 1, got %d", ErrInvalidConfig, c.MinPipes)
	}
	if c.MaxPipes < 1 {
		return fmt.Errorf("%w: maxPipes must be >= 1, got %d", ErrInvalidConfig, c.MaxPipes)
	}
	if c.MinPipes > c.MaxPipes {
		return fmt.Errorf("%w: minPipes %d exceeds maxPipes %d", ErrInvalidConfig, c.MinPipes, c.MaxPipes)
	}
	if !slices.Contains(Framerates, c.Framerate) {
		return fmt.Errorf("%w: framerate %d not one of %v", ErrInvalidConfig, c.Framerate, Framerates)
	}
	if _, err := palette.ParseFamily(c.Colors); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("%w: at least one symbol set is required", ErrInvalidConfig)
	}
	for _, name := range c.Symbols {
		if _, err := glyph.Lookup(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume must be within [0,1], got %g", ErrInvalidConfig, c.Volume)
	}
	return nil
}

// Family returns the parsed color family. Call after Validate.
func (c *Config) Family() palette.Family {
	f, _ := palette.ParseFamily(c.Colors)
	return f
}

// Interval returns the frame duration for the configured framerate
func (c *Config) Interval() time.Duration {
	if c.Framerate <= 0 {
		return time.Second / 100
	}
	return time.Second / time.Duration(c.Framerate)
}

func expandPath(path string) (string, error) {
	switch {
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	case path == "~":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return home, nil
	case filepath.IsAbs(path):
		return path, nil
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, path), nil
	}
}
