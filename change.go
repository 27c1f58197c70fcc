package emojiart

// ChangeStore is the interface for optional ECS integration.
// When set on a Document, every committed mutation is forwarded to it.
type ChangeStore interface {
	EmitChange(event ChangeEvent)
}

// ChangeType identifies a kind of document mutation.
type ChangeType uint8

const (
	ChangeItemAdded         ChangeType = iota // an item was appended
	ChangeItemRemoved                         // an item was removed
	ChangeItemMoved                           // an item's X/Y changed
	ChangeItemScaled                          // an item's Size changed
	ChangeBackgroundURL                       // the background URL was replaced
	ChangeBackgroundImage                     // a fetch for the current URL resolved
	ChangeSteadyState                         // committed zoom or pan changed
)

func (t ChangeType) String() string {
	switch t {
	case ChangeItemAdded:
		return "item-added"
	case ChangeItemRemoved:
		return "item-removed"
	case ChangeItemMoved:
		return "item-moved"
	case ChangeItemScaled:
		return "item-scaled"
	case ChangeBackgroundURL:
		return "background-url"
	case ChangeBackgroundImage:
		return "background-image"
	case ChangeSteadyState:
		return "steady-state"
	default:
		return "unknown"
	}
}

// ChangeEvent carries the state of the document after a mutation.
type ChangeEvent struct {
	Type ChangeType
	// Item is the affected item after the change (valid for item changes).
	// For ChangeItemRemoved it holds the item as it was before removal.
	Item EmojiItem
	// BackgroundURL is valid for background changes.
	BackgroundURL string
	// Zoom and Pan are valid for ChangeSteadyState.
	Zoom float64
	Pan  Vec2
}
