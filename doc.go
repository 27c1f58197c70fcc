// Package emojiart is a zoomable, pannable emoji sticker canvas for
// [Ebitengine].
//
// A [Document] holds an optional background image reference and an ordered
// list of [EmojiItem] stickers. The [Editor] draws it and turns mouse, touch
// and wheel input into edits: dragging from the palette strip adds emoji,
// pinching zooms the canvas or resizes the selection, and dragging pans the
// canvas or moves stickers.
//
// # Quick start
//
//	doc := emojiart.NewDocument()
//	editor, err := emojiart.NewEditor(doc, emojiart.EditorConfig{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	emojiart.Run(editor, emojiart.RunConfig{Title: "EmojiArt", Width: 1024, Height: 768})
//
// # Coordinates
//
// Document space is centered on the canvas origin. A [Mapper] converts to
// and from screen space:
//
//	screen = (doc + pan) * zoom + viewport/2
//
// Pan is kept in document units, so committed pans survive later zooms.
//
// # Gestures without a window
//
// [Reducer] holds every gesture rule and has no Ebitengine dependency. Feed
// it [PinchEvent], [PanEvent], [TapEvent] and [DropEvent] values directly, or
// use a [Script]:
//
//	doc := emojiart.NewDocument()
//	r := emojiart.NewReducer(doc, emojiart.NewSelection(), emojiart.Size{Width: 800, Height: 600})
//	r.Drop(emojiart.DropEvent{Point: emojiart.Vec2{X: 400, Y: 300}, Payload: emojiart.DropPayload{Texts: []string{"🍎"}}})
//
// While a gesture is in progress its values live in a [Preview] and are only
// committed to the Document when the gesture ends. [Reducer.Layout] combines
// both into a [Frame] for drawing.
//
// # Persistence
//
// [Document.Encode] and [Decode] read and write the JSON document format:
//
//	{"backgroundURL":"https://example.com/bg.png","emojis":[{"text":"🍎","size":40,"x":0,"y":0,"id":1}]}
//
// Zoom and pan are session state and are not persisted.
//
// # Backgrounds
//
// [Document.SetBackgroundURL] hands the URL to a [BackgroundLoader]. The
// [AsyncLoader] fetches on a goroutine and [AsyncLoader.Deliver] applies
// results on the game loop. A result for a URL that has since been replaced
// is discarded.
//
// # ECS integration
//
// Set a [ChangeStore] with [Document.SetChangeStore] to receive every
// committed mutation. The ecs subpackage provides a Donburi adapter.
//
// [Ebitengine]: https://ebitengine.org
package emojiart
