package emojiart

import (
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// PinchEvent is a normalized magnification gesture. Scale is the factor
// relative to the start of the gesture.
type PinchEvent struct {
	Scale float64
	Phase Phase
}

// PanEvent is a normalized drag. Start is the screen point where the drag
// began and Translation the total screen-space movement since then.
type PanEvent struct {
	Start       Vec2
	Translation Vec2
	Phase       Phase
}

// TapEvent is a recognized tap. Count is 1 or 2; a double tap is never also
// delivered as two single taps.
type TapEvent struct {
	Point Vec2
	Count int
}

// DropPayload is the resolved content of a drop. A non-empty URL wins over
// Texts.
type DropPayload struct {
	URL   string
	Texts []string
}

// DropEvent is an external payload released at a screen point.
type DropEvent struct {
	Point   Vec2
	Payload DropPayload
}

// TapOutcome reports what a tap did.
type TapOutcome uint8

const (
	TapIgnored        TapOutcome = iota // nothing changed
	TapToggled                          // an item's selection was toggled
	TapClearedSelect                    // the selection was cleared
	TapZoomedToFit                      // zoom and pan were fitted to the background
)

type dragMode uint8

const (
	dragNone       dragMode = iota
	dragBackground          // pans the whole canvas
	dragItems               // moves specific items
)

// dragTarget is resolved once, on the first event of a drag.
type dragTarget struct {
	mode     dragMode
	ids      []int
	explicit bool // ids came from the selection rather than the hit test
}

// Reducer turns normalized gesture events into Document and Selection
// mutations. Every handler branches on Selection.Empty so the canvas/selected
// mode stays consistent across gestures.
type Reducer struct {
	doc *Document
	sel *Selection

	viewport Size
	preview  Preview
	drag     dragTarget
	pinching bool

	// DefaultSize is the size of dropped emoji.
	DefaultSize int
	// Accept filters dropped text; nil accepts any non-empty string.
	Accept func(text string) bool

	log zerolog.Logger
}

// NewReducer creates a reducer over doc and sel for a viewport of the given size.
func NewReducer(doc *Document, sel *Selection, viewport Size) *Reducer {
	return &Reducer{
		doc:         doc,
		sel:         sel,
		viewport:    viewport,
		preview:     idlePreview(),
		DefaultSize: DefaultEmojiSize,
		log:         zerolog.Nop(),
	}
}

// SetLogger sets the logger used for committed gestures.
func (r *Reducer) SetLogger(l zerolog.Logger) {
	r.log = l
}

// Document returns the document being edited.
func (r *Reducer) Document() *Document { return r.doc }

// Selection returns the selection consulted by every handler.
func (r *Reducer) Selection() *Selection { return r.sel }

// SetViewport updates the viewport size used for coordinate conversion.
func (r *Reducer) SetViewport(s Size) {
	r.viewport = s
}

// Viewport returns the current viewport size.
func (r *Reducer) Viewport() Size {
	return r.viewport
}

// Preview returns the current in-gesture overlay.
func (r *Reducer) Preview() Preview {
	return r.preview
}

// Active reports whether a pinch or drag is in progress.
func (r *Reducer) Active() bool {
	return r.pinching || r.drag.mode != dragNone
}

func (r *Reducer) state() layoutState {
	return layoutState{
		doc:      r.doc,
		sel:      r.sel,
		preview:  r.preview,
		viewport: r.viewport,
		zoom:     r.doc.SteadyStateZoomScale(),
		pan:      r.doc.SteadyStatePanOffset(),
	}
}

// Mapper returns the document/screen mapping currently on screen.
func (r *Reducer) Mapper() Mapper {
	return r.state().mapper()
}

// Layout computes what should be drawn for the current state.
func (r *Reducer) Layout() Frame {
	return r.state().frame()
}

// LayoutAt computes the frame as if the steady-state zoom and pan were the
// given values. Used to draw animated transitions between committed states.
func (r *Reducer) LayoutAt(zoom float64, pan Vec2) Frame {
	ls := r.state()
	ls.zoom, ls.pan = zoom, pan
	return ls.frame()
}

// HitTest returns the topmost item under a screen point.
func (r *Reducer) HitTest(screen Vec2) (EmojiItem, bool) {
	return r.state().hitTest(screen)
}

// --- Pinch ---

// Pinch handles a magnification gesture. Only the final factor is committed:
// to every selected item's size when a selection exists, otherwise to the
// steady-state zoom. Factors that are not positive and finite are ignored.
func (r *Reducer) Pinch(ev PinchEvent) {
	switch ev.Phase {
	case PhaseChanged:
		if !validFactor(ev.Scale) {
			return
		}
		r.pinching = true
		r.preview.Zoom = ev.Scale
	case PhaseEnded:
		r.pinching = false
		r.preview.Zoom = 1
		if !validFactor(ev.Scale) {
			return
		}
		if !r.sel.Empty() {
			for _, id := range r.sel.IDs() {
				r.doc.ScaleItem(id, ev.Scale)
			}
			r.log.Debug().Float64("factor", ev.Scale).Ints("ids", r.sel.IDs()).Msg("scaled selection")
			return
		}
		r.doc.SetSteadyState(r.doc.SteadyStateZoomScale()*ev.Scale, r.doc.SteadyStatePanOffset())
		r.log.Debug().Float64("zoom", r.doc.SteadyStateZoomScale()).Msg("committed zoom")
	case PhaseCancelled:
		r.pinching = false
		r.preview.Zoom = 1
	}
}

// --- Pan / drag ---

// Pan handles a drag. The target is resolved from the start point on the
// first event: empty canvas pans the background; an item moves either the
// selected set (when a selection exists) or just that item.
func (r *Reducer) Pan(ev PanEvent) {
	if ev.Phase == PhaseCancelled {
		r.endDrag()
		return
	}
	if r.drag.mode == dragNone {
		r.drag = r.resolveDrag(ev.Start)
	}

	// Live zoom keeps drag speed constant on screen while a pinch runs too.
	delta := Mapper{Zoom: r.state().liveZoom()}.PanDelta(ev.Translation)

	switch ev.Phase {
	case PhaseChanged:
		if r.drag.mode == dragBackground {
			r.preview.Pan = delta
		} else {
			r.preview.Drag = ev.Translation
			r.preview.DragIDs = r.drag.ids
		}
	case PhaseEnded:
		target := r.drag
		r.endDrag()
		if target.mode == dragBackground {
			r.doc.SetSteadyState(r.doc.SteadyStateZoomScale(), r.doc.SteadyStatePanOffset().Add(delta))
			r.log.Debug().Float64("x", delta.X).Float64("y", delta.Y).Msg("committed pan")
			return
		}
		for _, id := range target.ids {
			r.doc.MoveItem(id, delta.X, delta.Y)
		}
		if target.explicit {
			r.sel.Clear()
		}
		r.log.Debug().Ints("ids", target.ids).Float64("dx", delta.X).Float64("dy", delta.Y).Msg("moved items")
	}
}

func (r *Reducer) resolveDrag(start Vec2) dragTarget {
	hit, ok := r.HitTest(start)
	if !ok {
		return dragTarget{mode: dragBackground}
	}
	if !r.sel.Empty() {
		return dragTarget{mode: dragItems, ids: r.sel.IDs(), explicit: true}
	}
	return dragTarget{mode: dragItems, ids: []int{hit.ID}}
}

func (r *Reducer) endDrag() {
	r.drag = dragTarget{}
	r.preview.Pan = Vec2{}
	r.preview.Drag = Vec2{}
	r.preview.DragIDs = nil
}

// --- Tap ---

// Tap handles a recognized tap. A single tap toggles the tapped item or, on
// empty canvas, clears the selection. A double tap fits the background into
// the viewport and also clears the selection when it lands on empty canvas.
func (r *Reducer) Tap(ev TapEvent) TapOutcome {
	hit, onItem := r.HitTest(ev.Point)
	switch ev.Count {
	case 1:
		if onItem {
			r.sel.Toggle(hit.ID)
			return TapToggled
		}
		if r.sel.Empty() {
			return TapIgnored
		}
		r.sel.Clear()
		return TapClearedSelect
	case 2:
		if !onItem {
			r.sel.Clear()
		}
		return r.ZoomToFit()
	}
	return TapIgnored
}

// ZoomToFit fits the current background image into the viewport and resets
// the pan. Without a decoded image or with a degenerate viewport nothing
// changes.
func (r *Reducer) ZoomToFit() TapOutcome {
	scale, pan, ok := ZoomToFit(r.doc.BackgroundSize(), r.viewport, r.doc.SteadyStateZoomScale())
	if !ok {
		return TapIgnored
	}
	r.doc.SetSteadyState(scale, pan)
	r.log.Debug().Float64("zoom", scale).Msg("zoomed to fit")
	return TapZoomedToFit
}

// --- Drop ---

// Drop handles an external payload. A URL replaces the background; otherwise
// every accepted text becomes a new item at the drop location. Reports
// whether anything was used.
func (r *Reducer) Drop(ev DropEvent) bool {
	if ev.Payload.URL != "" {
		r.doc.SetBackgroundURL(ev.Payload.URL)
		r.log.Info().Str("url", ev.Payload.URL).Msg("background dropped")
		return true
	}
	loc := r.Mapper().ToDocument(ev.Point)
	if !finite(loc.X) || !finite(loc.Y) {
		r.log.Debug().Float64("x", ev.Point.X).Float64("y", ev.Point.Y).Msg("drop outside the canvas")
		return false
	}
	size := r.DefaultSize
	if size <= 0 {
		size = DefaultEmojiSize
	}
	found := false
	for _, text := range ev.Payload.Texts {
		if text == "" || !utf8.ValidString(text) || (r.Accept != nil && !r.Accept(text)) {
			r.log.Debug().Str("text", text).Msg("drop rejected")
			continue
		}
		it := r.doc.AddItem(text, clampInt32(loc.X), clampInt32(loc.Y), size)
		r.log.Debug().Int("id", it.ID).Str("text", text).Msg("emoji dropped")
		found = true
	}
	return found
}

// DeleteSelected removes every selected item and clears the selection.
func (r *Reducer) DeleteSelected() int {
	ids := r.sel.IDs()
	for _, id := range ids {
		r.doc.RemoveItem(id)
	}
	r.sel.Clear()
	return len(ids)
}
