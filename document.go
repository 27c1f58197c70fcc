package emojiart

import (
	"image"
	"math"
	"strings"
)

// BackgroundLoader starts an asynchronous fetch of a background image.
// Results must be handed back on the caller's goroutine through
// Document.ResolveBackground.
type BackgroundLoader interface {
	Load(url string)
}

// Document owns the ordered emoji items, the background reference and the
// committed (steady-state) zoom and pan of the canvas.
//
// Document is not safe for concurrent use. All mutations are expected to
// arrive serially from the host's event loop.
type Document struct {
	backgroundURL   string
	backgroundImage image.Image
	items           []EmojiItem

	zoom float64
	pan  Vec2

	nextID   int
	revision uint64

	loader BackgroundLoader
	store  ChangeStore
}

// NewDocument returns an empty document with zoom 1 and no pan.
func NewDocument() *Document {
	return &Document{zoom: 1}
}

// SetBackgroundLoader sets the loader used by SetBackgroundURL.
func (d *Document) SetBackgroundLoader(l BackgroundLoader) {
	d.loader = l
}

// SetChangeStore sets the optional ECS bridge.
func (d *Document) SetChangeStore(store ChangeStore) {
	d.store = store
}

func (d *Document) emit(ev ChangeEvent) {
	if d.store != nil {
		d.store.EmitChange(ev)
	}
}

// Revision increases on every content mutation (items or background URL).
// Zoom, pan and the decoded image do not count as content.
func (d *Document) Revision() uint64 {
	return d.revision
}

// --- Items ---

// AddItem appends a new item and returns it. The new item gets an id that has
// never been handed out by this document. Invalid UTF-8 in text is replaced
// with U+FFFD, size is clamped to [1, MaxInt32] and coordinates to the int32
// range, so every item survives an Encode/Decode round trip.
func (d *Document) AddItem(text string, x, y, size int) EmojiItem {
	d.nextID++
	it := EmojiItem{
		Text: strings.ToValidUTF8(text, "\uFFFD"),
		Size: max(clampInt32(float64(size)), minItemSize),
		X:    clampInt32(float64(x)),
		Y:    clampInt32(float64(y)),
		ID:   d.nextID,
	}
	d.items = append(d.items, it)
	d.revision++
	d.emit(ChangeEvent{Type: ChangeItemAdded, Item: it})
	return it
}

// RemoveItem removes the item with the given id. Unknown ids are ignored.
func (d *Document) RemoveItem(id int) {
	i := d.index(id)
	if i < 0 {
		return
	}
	removed := d.items[i]
	copy(d.items[i:], d.items[i+1:])
	d.items[len(d.items)-1] = EmojiItem{}
	d.items = d.items[:len(d.items)-1]
	d.revision++
	d.emit(ChangeEvent{Type: ChangeItemRemoved, Item: removed})
}

// MoveItem offsets an item by (dx, dy) document units. Fractional offsets are
// truncated toward zero and non-finite offsets are ignored. Items may leave
// the canvas; coordinates only stop at the int32 range.
func (d *Document) MoveItem(id int, dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	i := d.index(id)
	if i < 0 {
		return
	}
	it := &d.items[i]
	it.X = clampInt32(float64(it.X) + math.Trunc(dx))
	it.Y = clampInt32(float64(it.Y) + math.Trunc(dy))
	d.revision++
	d.emit(ChangeEvent{Type: ChangeItemMoved, Item: *it})
}

// ScaleItem multiplies an item's size by factor, rounding half to even and
// never going below 1. Factors that are not positive and finite are ignored.
func (d *Document) ScaleItem(id int, factor float64) {
	if !validFactor(factor) {
		return
	}
	i := d.index(id)
	if i < 0 {
		return
	}
	it := &d.items[i]
	size := math.RoundToEven(float64(it.Size) * factor)
	if size < minItemSize {
		size = minItemSize
	}
	if size > math.MaxInt32 {
		size = math.MaxInt32
	}
	it.Size = int(size)
	d.revision++
	d.emit(ChangeEvent{Type: ChangeItemScaled, Item: *it})
}

// Item returns the item with the given id.
func (d *Document) Item(id int) (EmojiItem, bool) {
	i := d.index(id)
	if i < 0 {
		return EmojiItem{}, false
	}
	return d.items[i], true
}

// Items returns a copy of the items in z-order (last is topmost).
func (d *Document) Items() []EmojiItem {
	out := make([]EmojiItem, len(d.items))
	copy(out, d.items)
	return out
}

// Len returns the number of items.
func (d *Document) Len() int {
	return len(d.items)
}

// index is a linear scan; documents hold a handful of stickers.
func (d *Document) index(id int) int {
	for i := range d.items {
		if d.items[i].ID == id {
			return i
		}
	}
	return -1
}

// --- Background ---

// BackgroundURL returns the current background reference, or "" if none.
func (d *Document) BackgroundURL() string {
	return d.backgroundURL
}

// BackgroundImage returns the decoded background, or nil while it is loading
// or absent.
func (d *Document) BackgroundImage() image.Image {
	return d.backgroundImage
}

// SetBackgroundURL replaces the background reference, drops the cached image
// and asks the loader to fetch the new one. An empty url clears the
// background without fetching.
func (d *Document) SetBackgroundURL(url string) {
	d.backgroundURL = url
	d.backgroundImage = nil
	d.revision++
	d.emit(ChangeEvent{Type: ChangeBackgroundURL, BackgroundURL: url})
	if url != "" && d.loader != nil {
		d.loader.Load(url)
	}
}

// ResolveBackground applies the outcome of a fetch started for url. The result
// is discarded when url is no longer the current background or the fetch
// failed. Reports whether the image was applied.
func (d *Document) ResolveBackground(url string, img image.Image, err error) bool {
	if err != nil || img == nil || url == "" || url != d.backgroundURL {
		return false
	}
	d.backgroundImage = img
	d.emit(ChangeEvent{Type: ChangeBackgroundImage, BackgroundURL: url})
	return true
}

// BackgroundSize returns the pixel size of the decoded background, or the
// zero Size if there is none.
func (d *Document) BackgroundSize() Size {
	if d.backgroundImage == nil {
		return Size{}
	}
	b := d.backgroundImage.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// --- Steady state ---

// SteadyStateZoomScale returns the last committed zoom.
func (d *Document) SteadyStateZoomScale() float64 {
	return d.zoom
}

// SteadyStatePanOffset returns the last committed pan, in document units.
func (d *Document) SteadyStatePanOffset() Vec2 {
	return d.pan
}

// SetSteadyState commits a zoom and pan. A zoom that is not positive and
// finite leaves the zoom unchanged; positive values are clamped to
// MinZoomScale.
func (d *Document) SetSteadyState(zoom float64, pan Vec2) {
	if validFactor(zoom) {
		d.zoom = math.Max(zoom, MinZoomScale)
	}
	if finite(pan.X) && finite(pan.Y) {
		d.pan = pan
	}
	d.emit(ChangeEvent{Type: ChangeSteadyState, Zoom: d.zoom, Pan: d.pan})
}

// Equal reports whether two documents have the same persisted content:
// background URL and items in order. Session state is not compared.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.backgroundURL != o.backgroundURL || len(d.items) != len(o.items) {
		return false
	}
	for i := range d.items {
		if d.items[i] != o.items[i] {
			return false
		}
	}
	return true
}
