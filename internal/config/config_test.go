package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/emojiart"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
	assert.Len(t, cfg.EditorPalette(), 6)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, emojiart.DefaultEmojiSize, cfg.DefaultEmojiSize)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
palette: "🍎 🌏"
default_emoji_size: 64
emoji_only: true
autosave: 0s
fetch_timeout: 2s
show_hud: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, "EmojiArt", cfg.Window.Title)
	assert.Equal(t, emojiart.Palette{"🍎", "🌏"}, cfg.EditorPalette())
	assert.Equal(t, 64, cfg.DefaultEmojiSize)
	assert.True(t, cfg.EmojiOnly)
	assert.Equal(t, time.Duration(0), cfg.Autosave)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 350*time.Millisecond, cfg.FitDuration)
	assert.True(t, cfg.ShowHUD)
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "window: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative width", func(c *Config) { c.Window.Width = -1 }, "window.width"},
		{"negative size", func(c *Config) { c.DefaultEmojiSize = -5 }, "default_emoji_size"},
		{"negative autosave", func(c *Config) { c.Autosave = -time.Second }, "autosave"},
		{"blank palette", func(c *Config) { c.Palette = "   " }, "palette"},
		{"non-emoji palette", func(c *Config) { c.Palette = "🍎x"; c.EmojiOnly = true }, "palette[1]"},
		{"missing font", func(c *Config) { c.FontPath = "/does/not/exist.ttf" }, "font_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidateFontPathDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontPath = t.TempDir()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}
