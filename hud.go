package emojiart

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawHUD prints frame rate, committed transform and selection state in the
// top-left corner of the canvas. Toggled with F3.
func (e *Editor) drawHUD(screen *ebiten.Image) {
	const w, h = 220, 64
	y := float32(paletteHeight)
	vector.DrawFilledRect(screen, 0, y, w, h, color.RGBA{0, 0, 0, 128}, false)

	pan := e.doc.SteadyStatePanOffset()
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nzoom: %.3f  pan: %.0f,%.0f\nitems: %d  selected: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		e.doc.SteadyStateZoomScale(), pan.X, pan.Y,
		e.doc.Len(), e.sel.Len())
	if e.doc.BackgroundURL() != "" && e.doc.BackgroundImage() == nil {
		msg += "\nloading background..."
	}
	ebitenutil.DebugPrintAt(screen, msg, 4, int(y)+4)
}
