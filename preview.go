package emojiart

// Preview is the ephemeral overlay of in-progress gesture values. It is
// computed from the latest gesture event, never written into the Document,
// and reset when the gesture ends or is cancelled.
type Preview struct {
	// Zoom is the live pinch factor relative to the steady-state zoom (1 when idle).
	Zoom float64
	// Pan is the live background pan in document units.
	Pan Vec2
	// Drag is the live screen-space offset applied to DragIDs.
	Drag    Vec2
	DragIDs []int
}

func idlePreview() Preview {
	return Preview{Zoom: 1}
}

func (p Preview) dragging(id int) bool {
	for _, d := range p.DragIDs {
		if d == id {
			return true
		}
	}
	return false
}

// BackgroundPlacement describes where the background image is drawn.
// The image is centered on Center and scaled uniformly by Scale.
type BackgroundPlacement struct {
	Center Vec2
	Scale  float64
}

// ItemPlacement describes where one item is drawn.
type ItemPlacement struct {
	Item     EmojiItem
	Center   Vec2    // screen-space center including any live drag offset
	FontSize float64 // on-screen glyph size
	Opacity  float64
	Selected bool
}

// Frame is everything the view layer needs to draw the canvas.
type Frame struct {
	Viewport   Size
	Background BackgroundPlacement
	Items      []ItemPlacement
}

// layoutState bundles the inputs shared by Layout and hit testing.
type layoutState struct {
	doc      *Document
	sel      *Selection
	preview  Preview
	viewport Size
	// zoom and pan are the steady-state values to lay out with. They come
	// from the document except while a fit animation overrides them.
	zoom float64
	pan  Vec2
}

// liveZoom is the steady-state zoom combined with any in-progress pinch.
func (ls layoutState) liveZoom() float64 {
	return ls.zoom * ls.preview.Zoom
}

// canvasZoom is the zoom applied to the background and to item positions.
// While a selection exists pinches resize the selected items only, so the
// canvas stays at the steady-state zoom.
func (ls layoutState) canvasZoom() float64 {
	if ls.sel.Empty() {
		return ls.liveZoom()
	}
	return ls.zoom
}

// itemZoom is the zoom applied to an item's glyph size.
func (ls layoutState) itemZoom(id int) float64 {
	if ls.sel.TracksLiveZoom(id) {
		return ls.liveZoom()
	}
	return ls.zoom
}

// mapper returns the document/screen mapping currently on screen.
func (ls layoutState) mapper() Mapper {
	return Mapper{
		Zoom:     ls.canvasZoom(),
		Pan:      ls.pan.Add(ls.preview.Pan),
		Viewport: ls.viewport,
	}
}

func (ls layoutState) frame() Frame {
	m := ls.mapper()
	f := Frame{
		Viewport: ls.viewport,
		Background: BackgroundPlacement{
			Center: m.ToScreen(Vec2{}),
			Scale:  m.Zoom,
		},
		Items: make([]ItemPlacement, 0, ls.doc.Len()),
	}
	for _, it := range ls.doc.items {
		p := ItemPlacement{
			Item:     it,
			Center:   m.ToScreen(it.Location()),
			FontSize: float64(it.Size) * ls.itemZoom(it.ID),
			Opacity:  1,
			Selected: ls.sel.Contains(it.ID),
		}
		if p.Selected {
			p.Opacity = 0.5
		}
		if ls.preview.dragging(it.ID) {
			p.Center = p.Center.Add(ls.preview.Drag)
		}
		f.Items = append(f.Items, p)
	}
	return f
}

// hitTest returns the topmost item whose on-screen size x size square,
// centered on its screen position, contains the screen point.
func (ls layoutState) hitTest(screen Vec2) (EmojiItem, bool) {
	m := ls.mapper()
	items := ls.doc.items
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		side := float64(it.Size) * ls.itemZoom(it.ID)
		if squareAround(m.ToScreen(it.Location()), side).Contains(screen.X, screen.Y) {
			return it, true
		}
	}
	return EmojiItem{}, false
}
