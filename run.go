package emojiart

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window. The canvas viewport follows.
	Resizable bool
}

// Run opens a window and runs the editor until it is closed or its script
// finishes with ExitOnScriptDone set.
func Run(e *Editor, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 768
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(e); err != nil {
		return err
	}
	return e.ScriptErr()
}
