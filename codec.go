package emojiart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is wrapped by every Decode failure.
var ErrInvalidDocument = errors.New("emojiart: invalid document")

// documentJSON is the persisted form. Pointer fields detect missing keys.
type documentJSON struct {
	BackgroundURL *string     `json:"backgroundURL"`
	Emojis        *[]itemJSON `json:"emojis"`
}

type itemJSON struct {
	Text *string `json:"text"`
	Size *int    `json:"size"`
	X    *int    `json:"x"`
	Y    *int    `json:"y"`
	ID   *int    `json:"id"`
}

// Encode serializes the document's background URL and items. Zoom, pan and
// the decoded image are session state and are not written.
func (d *Document) Encode() ([]byte, error) {
	var out documentJSON
	if d.backgroundURL != "" {
		url := d.backgroundURL
		out.BackgroundURL = &url
	}
	emojis := make([]itemJSON, len(d.items))
	for i := range d.items {
		it := d.items[i]
		emojis[i] = itemJSON{Text: &it.Text, Size: &it.Size, X: &it.X, Y: &it.Y, ID: &it.ID}
	}
	out.Emojis = &emojis
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses a payload produced by Encode. Missing required fields,
// non-positive sizes and duplicate ids are rejected as a whole; there is no
// partial decode. Unknown fields are ignored.
func Decode(data []byte) (*Document, error) {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if in.Emojis == nil {
		return nil, fmt.Errorf("%w: missing emojis", ErrInvalidDocument)
	}

	d := NewDocument()
	if in.BackgroundURL != nil {
		d.backgroundURL = *in.BackgroundURL
	}

	seen := make(map[int]struct{}, len(*in.Emojis))
	d.items = make([]EmojiItem, 0, len(*in.Emojis))
	for i, e := range *in.Emojis {
		if e.Text == nil || e.Size == nil || e.X == nil || e.Y == nil || e.ID == nil {
			return nil, fmt.Errorf("%w: emoji %d: missing field", ErrInvalidDocument, i)
		}
		if *e.Size <= 0 {
			return nil, fmt.Errorf("%w: emoji %d: size %d", ErrInvalidDocument, i, *e.Size)
		}
		if _, dup := seen[*e.ID]; dup {
			return nil, fmt.Errorf("%w: emoji %d: duplicate id %d", ErrInvalidDocument, i, *e.ID)
		}
		seen[*e.ID] = struct{}{}
		d.items = append(d.items, EmojiItem{Text: *e.Text, Size: *e.Size, X: *e.X, Y: *e.Y, ID: *e.ID})
		if *e.ID > d.nextID {
			d.nextID = *e.ID
		}
	}
	return d, nil
}
