package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/phanxgames/emojiart"
)

// Validate checks the configuration for values the editor cannot use.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateSizes(),
		c.validateDurations(),
		criterio.Run("font_path", c.FontPath, isFileOrEmpty),
		c.validatePalette(),
	)
}

func (c *Config) validateSizes() error {
	var errs criterio.FieldErrorsBuilder
	for _, f := range []struct {
		field string
		value int
	}{
		{"window.width", c.Window.Width},
		{"window.height", c.Window.Height},
		{"default_emoji_size", c.DefaultEmojiSize},
	} {
		if f.value <= 0 {
			errs = errs.Append(f.field, fmt.Errorf("must be positive, got %d", f.value))
		}
	}
	return errs.ToError()
}

func (c *Config) validateDurations() error {
	var errs criterio.FieldErrorsBuilder
	for _, f := range []struct {
		field string
		value time.Duration
	}{
		{"autosave", c.Autosave},
		{"fetch_timeout", c.FetchTimeout},
		{"fit_duration", c.FitDuration},
	} {
		if f.value < 0 {
			errs = errs.Append(f.field, fmt.Errorf("must not be negative, got %s", f.value))
		}
	}
	return errs.ToError()
}

func (c *Config) validatePalette() error {
	glyphs := c.EditorPalette()
	if len(glyphs) == 0 {
		return criterio.NewFieldErrors("palette", fmt.Errorf("no glyphs"))
	}
	if !c.EmojiOnly {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	for i, g := range glyphs {
		if err := emojiart.ValidateGlyph(g); err != nil {
			errs = errs.Append(fmt.Sprintf("palette[%d]", i), err)
		}
	}
	return errs.ToError()
}

// isFileOrEmpty validates that a path is empty or names a readable file.
func isFileOrEmpty(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}
