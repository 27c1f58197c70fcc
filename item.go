package emojiart

// EmojiItem is one sticker placed on the canvas.
//
// X and Y are offsets from the document-space origin, which is the center of
// the canvas. ID is assigned by the owning Document and never changes.
type EmojiItem struct {
	Text string
	Size int
	X, Y int
	ID   int
}

// Location returns the item's document-space position.
func (e EmojiItem) Location() Vec2 {
	return Vec2{float64(e.X), float64(e.Y)}
}
