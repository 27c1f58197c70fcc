package emojiart

import "math"

// Mapper converts between document space and screen space.
//
// Document space is centered on the canvas origin and independent of zoom,
// pan and viewport. Pan is stored in document units and scaled by Zoom before
// it is applied, so changing the zoom never distorts accumulated pan.
//
//	screen = doc*Zoom + Viewport/2 + Pan*Zoom
type Mapper struct {
	Zoom     float64
	Pan      Vec2
	Viewport Size
}

// ToScreen converts a document-space point to screen space.
func (m Mapper) ToScreen(p Vec2) Vec2 {
	return p.Add(m.Pan).Scale(m.Zoom).Add(m.Viewport.Half())
}

// ToDocument converts a screen-space point to document space. It is the exact
// inverse of ToScreen for any positive Zoom. A zero zoom maps everything to
// -Pan.
func (m Mapper) ToDocument(s Vec2) Vec2 {
	return s.Sub(m.Viewport.Half()).Div(m.Zoom).Sub(m.Pan)
}

// PanDelta converts a screen-space translation into document units.
func (m Mapper) PanDelta(translation Vec2) Vec2 {
	return translation.Div(m.Zoom)
}

// ZoomToFit returns the zoom that fits an image of the given size entirely in
// the viewport, with pan reset to zero. When either size is degenerate it
// returns current and ok=false so callers leave scale and pan untouched.
func ZoomToFit(img, viewport Size, current float64) (scale float64, pan Vec2, ok bool) {
	if img.Degenerate() || viewport.Degenerate() {
		return current, Vec2{}, false
	}
	scale = math.Min(viewport.Width/img.Width, viewport.Height/img.Height)
	if !validFactor(scale) {
		return current, Vec2{}, false
	}
	return scale, Vec2{}, true
}
