package emojiart

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	paletteHeight       = 64.0
	paletteGlyphSpacing = 56.0
	defaultFitDuration  = 0.35
)

// EditorConfig holds the optional settings for NewEditor.
type EditorConfig struct {
	// Palette is offered in the strip above the canvas. Defaults to DefaultPalette.
	Palette Palette
	// DefaultEmojiSize is the size given to dropped emoji. Defaults to 40.
	DefaultEmojiSize int
	// EmojiOnly rejects dropped text that is not a single emoji.
	EmojiOnly bool
	// FontData is TTF/OTF data used to draw glyphs. Defaults to Go Regular.
	FontData []byte
	// ScreenshotDir receives PNGs queued with Screenshot. Defaults to "screenshots".
	ScreenshotDir string
	// ShowHUD starts with the debug overlay visible.
	ShowHUD bool
	// FitDuration is the zoom-to-fit animation length in seconds.
	FitDuration float32
	// Autosave, when set, is called with the document every AutosaveInterval
	// if its content changed.
	Autosave         func(*Document) error
	AutosaveInterval time.Duration
	// Loader delivers background fetch results on the game loop. Optional.
	Loader *AsyncLoader
	// Script is run frame by frame, and ExitOnScriptDone ends the game when
	// it finishes.
	Script           *Script
	ExitOnScriptDone bool
	// UpdateFunc runs at the end of every Update. A non-nil error stops the game.
	UpdateFunc func() error
	Logger     zerolog.Logger
}

// Editor is an ebiten.Game that edits a Document: a palette strip on top and
// the pannable, zoomable canvas below it.
type Editor struct {
	doc        *Document
	sel        *Selection
	reducer    *Reducer
	recognizer *Recognizer
	loader     *AsyncLoader

	palette     Palette
	paletteDrag *paletteDrag
	fit         *FitAnimation
	fitDuration float32

	inject           injector
	runner           *ScriptRunner
	exitOnScriptDone bool

	autosave         func(*Document) error
	autosaveInterval time.Duration
	sinceSave        time.Duration
	savedRevision    uint64

	screenshotQueue []string
	ScreenshotDir   string

	updateFunc func() error

	hud       bool
	renderer  *renderer
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchBuf  []ebiten.TouchID

	log zerolog.Logger
}

// paletteDrag is a glyph picked from the palette and not yet dropped.
type paletteDrag struct {
	glyph string
	x, y  float64
}

// NewEditor creates an editor for doc.
func NewEditor(doc *Document, cfg EditorConfig) (*Editor, error) {
	if len(cfg.Palette) == 0 {
		cfg.Palette = ParsePalette(DefaultPalette)
	}
	if cfg.FontData == nil {
		cfg.FontData = goregular.TTF
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.FitDuration <= 0 {
		cfg.FitDuration = defaultFitDuration
	}
	r, err := newRenderer(cfg.FontData)
	if err != nil {
		return nil, err
	}

	sel := NewSelection()
	e := &Editor{
		doc:              doc,
		sel:              sel,
		reducer:          NewReducer(doc, sel, Size{}),
		loader:           cfg.Loader,
		palette:          cfg.Palette,
		fitDuration:      cfg.FitDuration,
		exitOnScriptDone: cfg.ExitOnScriptDone,
		autosave:         cfg.Autosave,
		autosaveInterval: cfg.AutosaveInterval,
		savedRevision:    doc.Revision(),
		ScreenshotDir:    cfg.ScreenshotDir,
		hud:              cfg.ShowHUD,
		renderer:         r,
		updateFunc:       cfg.UpdateFunc,
		log:              cfg.Logger,
	}
	if cfg.DefaultEmojiSize > 0 {
		e.reducer.DefaultSize = cfg.DefaultEmojiSize
	}
	if cfg.EmojiOnly {
		e.reducer.Accept = IsEmoji
	}
	if cfg.Script != nil {
		e.runner = NewScriptRunner(cfg.Script)
	}
	e.reducer.SetLogger(cfg.Logger)
	e.recognizer = NewRecognizer(editorSink{e})
	return e, nil
}

// Document returns the document being edited.
func (e *Editor) Document() *Document { return e.doc }

// Reducer returns the gesture reducer driving the canvas.
func (e *Editor) Reducer() *Reducer { return e.reducer }

// ScriptErr returns the error that stopped the attached script, if any.
func (e *Editor) ScriptErr() error {
	if e.runner == nil {
		return nil
	}
	return e.runner.Err()
}

// Update implements ebiten.Game.
func (e *Editor) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())

	if e.loader != nil {
		e.loader.Deliver(e.doc)
	}
	if e.fit != nil {
		e.fit.Update(float32(dt.Seconds()))
		if e.fit.Done {
			e.fit = nil
		}
	}
	if e.runner != nil {
		e.runner.step(e)
		if e.runner.Done() && e.exitOnScriptDone {
			return ebiten.Termination
		}
	}

	e.handleKeys()
	e.processInput()
	e.sel.Prune(e.doc)
	e.maybeAutosave(dt)
	if e.updateFunc != nil {
		return e.updateFunc()
	}
	return nil
}

// Layout implements ebiten.Game.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	h := float64(outsideHeight) - paletteHeight
	if h < 0 {
		h = 0
	}
	e.reducer.SetViewport(Size{Width: float64(outsideWidth), Height: h})
	return outsideWidth, outsideHeight
}

func (e *Editor) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if n := e.reducer.DeleteSelected(); n > 0 {
			e.log.Info().Int("count", n).Msg("deleted selection")
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.sel.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		e.fitAnimated()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		e.hud = !e.hud
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		e.Screenshot("manual")
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.Save()
	}
}

// processInput samples mouse, touch and wheel and feeds the recognizer.
// Presses that start on the palette strip become palette drags instead.
func (e *Editor) processInput() {
	mouse, ok := e.inject.next()
	if !ok {
		mx, my := ebiten.CursorPosition()
		mouse = PointerSample{X: float64(mx), Y: float64(my), Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)}
	}
	if e.handlePaletteDrag(mouse) {
		mouse.Pressed = false
	}

	samples := make([]PointerSample, 0, maxPointers)
	samples = append(samples, toCanvas(mouse))
	e.touchBuf = ebiten.AppendTouchIDs(e.touchBuf[:0])
	var active [maxPointers]bool
	for _, tid := range e.touchBuf {
		slot := e.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		samples = append(samples, toCanvas(PointerSample{ID: slot, X: float64(tx), Y: float64(ty), Pressed: true}))
	}
	for i := 1; i < maxPointers; i++ {
		if e.touchUsed[i] && !active[i] {
			e.touchUsed[i] = false
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		e.recognizer.Wheel(wy)
	}
	e.recognizer.Process(samples)
}

// toCanvas shifts a window-space sample into canvas space.
func toCanvas(s PointerSample) PointerSample {
	s.Y -= paletteHeight
	return s
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (e *Editor) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if e.touchUsed[i] && e.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !e.touchUsed[i] {
			e.touchUsed[i] = true
			e.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// handlePaletteDrag tracks drags out of the palette strip and turns their
// release into a text drop. Reports whether the sample was consumed.
func (e *Editor) handlePaletteDrag(s PointerSample) bool {
	if e.paletteDrag != nil {
		e.paletteDrag.x, e.paletteDrag.y = s.X, s.Y
		if s.Pressed {
			return true
		}
		glyph := e.paletteDrag.glyph
		e.paletteDrag = nil
		if s.Y >= paletteHeight {
			e.reducer.Drop(DropEvent{
				Point:   Vec2{s.X, s.Y - paletteHeight},
				Payload: DropPayload{Texts: []string{glyph}},
			})
		}
		return true
	}
	if !s.Pressed || s.Y >= paletteHeight || e.recognizer.pointers[0].down {
		return false
	}
	if i := int(s.X / paletteGlyphSpacing); i >= 0 && i < len(e.palette) {
		e.paletteDrag = &paletteDrag{glyph: e.palette[i], x: s.X, y: s.Y}
		return true
	}
	return false
}

// editorSink forwards recognized gestures to the reducer and animates fits.
type editorSink struct{ e *Editor }

func (s editorSink) Pinch(ev PinchEvent) {
	s.e.fit = nil
	s.e.reducer.Pinch(ev)
}

func (s editorSink) Pan(ev PanEvent) {
	s.e.fit = nil
	s.e.reducer.Pan(ev)
}

func (s editorSink) Tap(ev TapEvent) TapOutcome {
	zoom, pan := s.e.doc.SteadyStateZoomScale(), s.e.doc.SteadyStatePanOffset()
	out := s.e.reducer.Tap(ev)
	if out == TapZoomedToFit {
		s.e.animateFrom(zoom, pan)
	}
	return out
}

func (e *Editor) fitAnimated() {
	zoom, pan := e.doc.SteadyStateZoomScale(), e.doc.SteadyStatePanOffset()
	if e.reducer.ZoomToFit() == TapZoomedToFit {
		e.animateFrom(zoom, pan)
	}
}

func (e *Editor) animateFrom(zoom float64, pan Vec2) {
	e.fit = NewFitAnimation(zoom, pan,
		e.doc.SteadyStateZoomScale(), e.doc.SteadyStatePanOffset(), e.fitDuration, nil)
}

// applyScriptStep runs a gesture step, animating fits like a real tap would.
func (e *Editor) applyScriptStep(st ScriptStep) (bool, error) {
	zoom, pan := e.doc.SteadyStateZoomScale(), e.doc.SteadyStatePanOffset()
	ok, err := applyStep(e.reducer, st)
	if err == nil && (st.Action == "fit" || st.Action == "tap") &&
		(zoom != e.doc.SteadyStateZoomScale() || pan != e.doc.SteadyStatePanOffset()) {
		e.animateFrom(zoom, pan)
	}
	return ok, err
}

// --- Autosave ---

func (e *Editor) maybeAutosave(dt time.Duration) {
	if e.autosave == nil || e.autosaveInterval <= 0 {
		return
	}
	e.sinceSave += dt
	if e.sinceSave < e.autosaveInterval {
		return
	}
	e.sinceSave = 0
	e.Save()
}

// Save hands the document to the autosave function if its content changed
// since the last successful save. Failures are logged and retried on the
// next call.
func (e *Editor) Save() {
	if e.autosave == nil || e.doc.Revision() == e.savedRevision {
		return
	}
	if err := e.autosave(e.doc); err != nil {
		e.log.Error().Err(err).Msg("save document")
		return
	}
	e.savedRevision = e.doc.Revision()
	e.log.Debug().Uint64("revision", e.savedRevision).Msg("document saved")
}
