// Package config handles configuration loading and validation for gallery.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/gallery/internal/core/photos"
	"github.com/colonyops/gallery/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Layout LayoutConfig `yaml:"layout"`
	TUI    TUIConfig    `yaml:"tui"`
}

// APIConfig configures the image search request.
type APIConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Query       string        `yaml:"query"`
	PerPage     int           `yaml:"per_page"`
	Orientation string        `yaml:"orientation"`
	APIKey      string        `yaml:"api_key"` // usually supplied via PEXELS_API_KEY
	Timeout     time.Duration `yaml:"timeout"` // bounds the one-shot load
}

// LayoutConfig holds thumbnail strip geometry in terminal columns.
type LayoutConfig struct {
	ItemSize    int `yaml:"item_size"`
	ItemSpacing int `yaml:"item_spacing"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	FPS   int    `yaml:"fps"` // scroll animation frame rate
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Endpoint:    photos.DefaultEndpoint,
			Query:       photos.DefaultQuery,
			PerPage:     photos.DefaultPerPage,
			Orientation: photos.DefaultOrientation,
			Timeout:     10 * time.Second,
		},
		Layout: LayoutConfig{
			ItemSize:    12,
			ItemSpacing: 2,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
			FPS:   60,
		},
	}
}

// Load reads configuration from the given path and validates it.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and applies defaults without validating, so
// callers that report problems themselves can still inspect a bad config.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.Endpoint == "" {
		c.API.Endpoint = defaults.API.Endpoint
	}
	if c.API.Query == "" {
		c.API.Query = defaults.API.Query
	}
	if c.API.PerPage == 0 {
		c.API.PerPage = defaults.API.PerPage
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Layout.ItemSize == 0 {
		c.Layout.ItemSize = defaults.Layout.ItemSize
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.FPS == 0 {
		c.TUI.FPS = defaults.TUI.FPS
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.API.PerPage < 1 || c.API.PerPage > 80 {
		return fmt.Errorf("api.per_page must be between 1 and 80")
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	if c.Layout.ItemSize < 3 {
		return fmt.Errorf("layout.item_size must be at least 3")
	}

	if c.Layout.ItemSpacing < 0 {
		return fmt.Errorf("layout.item_spacing cannot be negative")
	}

	if c.TUI.FPS < 1 || c.TUI.FPS > 120 {
		return fmt.Errorf("tui.fps must be between 1 and 120")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme", c.TUI.Theme)
	}

	return nil
}

// FrameInterval returns the animation tick interval for the configured FPS.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.TUI.FPS)
}

// SourceOptions maps the API section onto Pexels client options.
func (c *Config) SourceOptions() photos.Options {
	return photos.Options{
		Endpoint:    c.API.Endpoint,
		Query:       c.API.Query,
		PerPage:     c.API.PerPage,
		Orientation: c.API.Orientation,
		APIKey:      c.API.APIKey,
	}
}
