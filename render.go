package emojiart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	paletteColor = color.RGBA{0xee, 0xee, 0xf2, 0xff}
	glyphColor   = Color{0.1, 0.1, 0.12, 1}
)

// renderer owns the GPU-side caches: one text face per integer glyph size
// and the uploaded background image.
type renderer struct {
	source *text.GoTextFaceSource
	faces  map[int]*text.GoTextFace

	bg       *ebiten.Image
	bgSource image.Image
}

func newRenderer(fontData []byte) (*renderer, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("emojiart: failed to parse font data: %w", err)
	}
	return &renderer{source: source, faces: make(map[int]*text.GoTextFace)}, nil
}

// face returns a cached face for the size rounded to whole pixels.
func (r *renderer) face(size float64) *text.GoTextFace {
	key := int(math.Round(size))
	if key < 1 {
		key = 1
	}
	f, ok := r.faces[key]
	if !ok {
		f = &text.GoTextFace{Source: r.source, Size: float64(key)}
		r.faces[key] = f
	}
	return f
}

// background returns the uploaded copy of img, re-uploading when the
// document's image changes.
func (r *renderer) background(img image.Image) *ebiten.Image {
	if img == nil {
		if r.bg != nil {
			r.bg.Deallocate()
		}
		r.bg, r.bgSource = nil, nil
		return nil
	}
	if r.bgSource != img {
		if r.bg != nil {
			r.bg.Deallocate()
		}
		r.bg = ebiten.NewImageFromImage(img)
		r.bgSource = img
	}
	return r.bg
}

// drawGlyph draws s centered on (x, y).
func (r *renderer) drawGlyph(dst *ebiten.Image, s string, x, y, size, opacity float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.Scale(float32(glyphColor.R), float32(glyphColor.G), float32(glyphColor.B), 1)
	op.ColorScale.ScaleAlpha(float32(opacity))
	text.Draw(dst, s, r.face(size), op)
}

// Draw implements ebiten.Game.
func (e *Editor) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	screen.Fill(paletteColor)

	// Sub-images keep the parent's coordinate space; canvas positions are
	// shifted down by the palette strip.
	canvas := screen.SubImage(image.Rect(b.Min.X, b.Min.Y+int(paletteHeight), b.Max.X, b.Max.Y)).(*ebiten.Image)
	canvas.Fill(color.White)

	frame := e.frame()
	if bg := e.renderer.background(e.doc.BackgroundImage()); bg != nil {
		bb := bg.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(bb.Dx())/2, -float64(bb.Dy())/2)
		op.GeoM.Scale(frame.Background.Scale, frame.Background.Scale)
		op.GeoM.Translate(frame.Background.Center.X, frame.Background.Center.Y+paletteHeight)
		op.Filter = ebiten.FilterLinear
		canvas.DrawImage(bg, op)
	}
	for _, p := range frame.Items {
		e.renderer.drawGlyph(canvas, p.Item.Text, p.Center.X, p.Center.Y+paletteHeight, p.FontSize, p.Opacity)
	}

	e.drawPalette(screen)
	if e.hud {
		e.drawHUD(screen)
	}
	e.flushScreenshots(screen)
}

// frame lays out the canvas, using the fit animation's zoom and pan while it runs.
func (e *Editor) frame() Frame {
	if e.fit != nil && !e.fit.Done {
		return e.reducer.LayoutAt(e.fit.Zoom, e.fit.Pan)
	}
	return e.reducer.Layout()
}

func (e *Editor) drawPalette(screen *ebiten.Image) {
	for i, g := range e.palette {
		x := float64(i)*paletteGlyphSpacing + paletteGlyphSpacing/2
		e.renderer.drawGlyph(screen, g, x, paletteHeight/2, float64(DefaultEmojiSize), 1)
	}
	if d := e.paletteDrag; d != nil {
		size := float64(e.reducer.DefaultSize) * e.doc.SteadyStateZoomScale()
		e.renderer.drawGlyph(screen, d.glyph, d.x, d.y, size, 0.5)
	}
}
