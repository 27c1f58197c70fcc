package emojiart

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/pkg/errors"
	"github.com/rivo/uniseg"
)

// DefaultPalette is offered when no palette is configured.
const DefaultPalette = "⭐️⛈🍎🌏🥨⚾️"

// ErrInvalidGlyph is returned when a string is not exactly one emoji.
var ErrInvalidGlyph = errors.New("glyph must be a single emoji")

// Palette is the ordered set of glyphs offered for drag-to-add.
type Palette []string

// ParsePalette splits s into grapheme clusters, dropping whitespace and
// repeated glyphs while keeping first-seen order.
func ParsePalette(s string) Palette {
	var p Palette
	seen := make(map[string]struct{})
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		g := gr.Str()
		if strings.TrimSpace(g) == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		p = append(p, g)
	}
	return p
}

// String joins the palette back into a single string.
func (p Palette) String() string {
	return strings.Join(p, "")
}

// ValidateGlyph checks that glyph is exactly one emoji. Variation selectors
// are ignored so "⭐" and "⭐️" are treated alike.
func ValidateGlyph(glyph string) error {
	bare := strings.Map(func(r rune) rune {
		if r == '\uFE0F' || r == '\uFE0E' {
			return -1
		}
		return r
	}, glyph)
	if bare == "" {
		return ErrInvalidGlyph
	}
	found := gomoji.CollectAll(bare)
	if len(found) != 1 {
		return errors.Wrapf(ErrInvalidGlyph, "%q has %d emoji", glyph, len(found))
	}
	if strings.TrimSpace(gomoji.RemoveEmojis(bare)) != "" {
		return errors.Wrapf(ErrInvalidGlyph, "%q has non-emoji characters", glyph)
	}
	return nil
}

// IsEmoji reports whether glyph passes ValidateGlyph. It matches the
// signature of Reducer.Accept.
func IsEmoji(glyph string) bool {
	return ValidateGlyph(glyph) == nil
}
