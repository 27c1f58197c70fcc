package emojiart

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FitAnimation eases the displayed zoom and pan from one committed state to
// another. The document is committed immediately; the animation only changes
// what is drawn while it runs. Call Update(dt) each frame.
type FitAnimation struct {
	zoom *gween.Tween
	panX *gween.Tween
	panY *gween.Tween

	Zoom float64
	Pan  Vec2
	Done bool
}

// NewFitAnimation creates an animation from (fromZoom, fromPan) to
// (toZoom, toPan) over duration seconds.
func NewFitAnimation(fromZoom float64, fromPan Vec2, toZoom float64, toPan Vec2, duration float32, fn ease.TweenFunc) *FitAnimation {
	if fn == nil {
		fn = ease.OutCubic
	}
	return &FitAnimation{
		zoom: gween.New(float32(fromZoom), float32(toZoom), duration, fn),
		panX: gween.New(float32(fromPan.X), float32(toPan.X), duration, fn),
		panY: gween.New(float32(fromPan.Y), float32(toPan.Y), duration, fn),
		Zoom: fromZoom,
		Pan:  fromPan,
		Done: duration <= 0,
	}
}

// Update advances the animation by dt seconds.
func (a *FitAnimation) Update(dt float32) {
	if a.Done {
		return
	}
	z, doneZ := a.zoom.Update(dt)
	x, doneX := a.panX.Update(dt)
	y, doneY := a.panY.Update(dt)
	a.Zoom = float64(z)
	a.Pan = Vec2{float64(x), float64(y)}
	a.Done = doneZ && doneX && doneY
}
