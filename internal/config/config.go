// Package config loads the editor's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/emojiart"
)

// Config is the on-disk editor configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`

	// Palette is the string of glyphs offered in the palette strip.
	Palette string `yaml:"palette"`
	// DefaultEmojiSize is the size given to dropped emoji.
	DefaultEmojiSize int `yaml:"default_emoji_size"`
	// EmojiOnly rejects dropped text that is not a single emoji.
	EmojiOnly bool `yaml:"emoji_only"`

	// Autosave is how often a changed document is written back. Zero disables it.
	Autosave time.Duration `yaml:"autosave"`
	// FetchTimeout bounds a single background image fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	// FitDuration is the length of the zoom-to-fit animation.
	FitDuration time.Duration `yaml:"fit_duration"`

	ScreenshotDir string `yaml:"screenshot_dir"`
	// FontPath is a TTF/OTF file used to draw glyphs. Empty uses Go Regular.
	FontPath string `yaml:"font_path"`
	ShowHUD  bool   `yaml:"show_hud"`
}

// WindowConfig sets up the editor window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "EmojiArt",
			Width:     1024,
			Height:    768,
			Resizable: true,
		},
		Palette:          emojiart.DefaultPalette,
		DefaultEmojiSize: emojiart.DefaultEmojiSize,
		Autosave:         5 * time.Second,
		FetchTimeout:     30 * time.Second,
		FitDuration:      350 * time.Millisecond,
		ScreenshotDir:    "screenshots",
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Window.Title == "" {
		c.Window.Title = defaults.Window.Title
	}
	if c.Window.Width == 0 {
		c.Window.Width = defaults.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = defaults.Window.Height
	}
	if c.Palette == "" {
		c.Palette = defaults.Palette
	}
	if c.DefaultEmojiSize == 0 {
		c.DefaultEmojiSize = defaults.DefaultEmojiSize
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = defaults.FetchTimeout
	}
	if c.FitDuration == 0 {
		c.FitDuration = defaults.FitDuration
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = defaults.ScreenshotDir
	}
}

// EditorPalette parses Palette into glyphs.
func (c *Config) EditorPalette() emojiart.Palette {
	return emojiart.ParsePalette(c.Palette)
}
