package emojiart

import "math"

// --- Constants ---

const (
	maxPointers            = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone    = 4.0 // pixels
	defaultDoubleTapFrames = 18  // ~0.3s at 60 TPS
	defaultDoubleTapSlop   = 24.0
	wheelIdleFrames        = 8
	wheelStep              = 1.1
)

// GestureSink receives normalized gestures. *Reducer implements it.
type GestureSink interface {
	Pinch(PinchEvent)
	Pan(PanEvent)
	Tap(TapEvent) TapOutcome
}

// PointerSample is the state of one pointer during one frame.
type PointerSample struct {
	ID      int // 0 = mouse, 1-9 = touch slots
	X, Y    float64
	Pressed bool
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	// consumed pointers took part in a pinch; their release is not a tap.
	consumed bool
}

// --- Pinch state ---

type pinchState struct {
	active      bool
	initialDist float64
	lastScale   float64
}

type pendingTap struct {
	active     bool
	x, y       float64
	framesLeft int
}

type wheelState struct {
	active    bool
	scale     float64
	idleCount int
}

// Recognizer turns raw pointer samples into pans, pinches and taps.
//
// Call Process once per frame with every pointer that is known this frame.
// A pointer missing from the samples is treated as released. A single tap is
// held back for the double-tap window so a double tap is never also reported
// as two single taps.
type Recognizer struct {
	sink GestureSink

	pointers [maxPointers]pointerState
	pinch    pinchState
	tap      pendingTap
	wheel    wheelState

	dragDeadZone    float64
	doubleTapFrames int
	doubleTapSlop   float64
}

// NewRecognizer creates a recognizer that forwards gestures to sink.
func NewRecognizer(sink GestureSink) *Recognizer {
	return &Recognizer{
		sink:            sink,
		dragDeadZone:    defaultDragDeadZone,
		doubleTapFrames: defaultDoubleTapFrames,
		doubleTapSlop:   defaultDoubleTapSlop,
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (r *Recognizer) SetDragDeadZone(pixels float64) {
	r.dragDeadZone = pixels
}

// SetDoubleTapFrames sets how many frames a single tap waits for a second one.
func (r *Recognizer) SetDoubleTapFrames(frames int) {
	if frames < 1 {
		frames = 1
	}
	r.doubleTapFrames = frames
}

// Process runs one frame of recognition.
func (r *Recognizer) Process(samples []PointerSample) {
	var seen [maxPointers]bool
	for _, s := range samples {
		if s.ID < 0 || s.ID >= maxPointers {
			continue
		}
		seen[s.ID] = true
		r.processPointer(s.ID, s.X, s.Y, s.Pressed)
	}
	for i := range r.pointers {
		if !seen[i] && r.pointers[i].down {
			ps := &r.pointers[i]
			r.processPointer(i, ps.lastX, ps.lastY, false)
		}
	}
	r.detectPinch()
	r.tickTap()
	r.tickWheel()
}

// processPointer runs the pointer state machine for a single pointer.
func (r *Recognizer) processPointer(id int, x, y float64, pressed bool) {
	ps := &r.pointers[id]

	switch {
	case pressed && !ps.down:
		*ps = pointerState{down: true, startX: x, startY: y, lastX: x, lastY: y}
	case !pressed && ps.down:
		start := Vec2{ps.startX, ps.startY}
		switch {
		case ps.dragging:
			r.sink.Pan(PanEvent{Start: start, Translation: Vec2{x - ps.startX, y - ps.startY}, Phase: PhaseEnded})
		case !ps.consumed && !r.pinch.active:
			r.registerTap(x, y)
		}
		*ps = pointerState{lastX: x, lastY: y}
	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging && !ps.consumed && !r.pinch.active {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > r.dragDeadZone {
					ps.dragging = true
				}
			}
			if ps.dragging {
				r.sink.Pan(PanEvent{
					Start:       Vec2{ps.startX, ps.startY},
					Translation: Vec2{x - ps.startX, y - ps.startY},
					Phase:       PhaseChanged,
				})
			}
		}
		ps.lastX = x
		ps.lastY = y
	}
}

// --- Pinch detection ---

func (r *Recognizer) detectPinch() {
	var p [2]int
	count := 0
	for i := 1; i < maxPointers; i++ {
		if r.pointers[i].down {
			if count < 2 {
				p[count] = i
			}
			count++
		}
	}

	if count == 2 {
		ps0 := &r.pointers[p[0]]
		ps1 := &r.pointers[p[1]]
		dx := ps1.lastX - ps0.lastX
		dy := ps1.lastY - ps0.lastY
		dist := math.Sqrt(dx*dx + dy*dy)

		if !r.pinch.active {
			// A drag that turns into a pinch is abandoned, not committed.
			for _, ps := range []*pointerState{ps0, ps1} {
				if ps.dragging {
					r.sink.Pan(PanEvent{Start: Vec2{ps.startX, ps.startY}, Phase: PhaseCancelled})
					ps.dragging = false
				}
			}
			r.pinch = pinchState{active: true, initialDist: dist, lastScale: 1}
		} else if r.pinch.initialDist > 0 && dist > 0 {
			r.pinch.lastScale = dist / r.pinch.initialDist
			r.sink.Pinch(PinchEvent{Scale: r.pinch.lastScale, Phase: PhaseChanged})
		}
		ps0.consumed = true
		ps1.consumed = true
		return
	}

	if r.pinch.active {
		r.pinch.active = false
		r.sink.Pinch(PinchEvent{Scale: r.pinch.lastScale, Phase: PhaseEnded})
		for i := 1; i < maxPointers; i++ {
			if r.pointers[i].down {
				r.pointers[i].consumed = true
			}
		}
	}
}

// --- Taps ---

func (r *Recognizer) registerTap(x, y float64) {
	if r.tap.active {
		dx := x - r.tap.x
		dy := y - r.tap.y
		if math.Sqrt(dx*dx+dy*dy) <= r.doubleTapSlop {
			r.tap = pendingTap{}
			r.sink.Tap(TapEvent{Point: Vec2{x, y}, Count: 2})
			return
		}
		// Too far away: the first tap stands on its own.
		r.flushTap()
	}
	r.tap = pendingTap{active: true, x: x, y: y, framesLeft: r.doubleTapFrames}
}

func (r *Recognizer) tickTap() {
	if !r.tap.active {
		return
	}
	r.tap.framesLeft--
	if r.tap.framesLeft <= 0 {
		r.flushTap()
	}
}

func (r *Recognizer) flushTap() {
	t := r.tap
	r.tap = pendingTap{}
	r.sink.Tap(TapEvent{Point: Vec2{t.x, t.y}, Count: 1})
}

// --- Wheel zoom ---

// Wheel feeds scroll-wheel movement as a pinch: each notch scales by 10%.
// The pinch ends after a few frames without wheel input.
func (r *Recognizer) Wheel(dy float64) {
	if dy == 0 || r.pinch.active {
		return
	}
	if !r.wheel.active {
		r.wheel = wheelState{active: true, scale: 1}
	}
	r.wheel.scale *= math.Pow(wheelStep, dy)
	r.wheel.idleCount = 0
	r.sink.Pinch(PinchEvent{Scale: r.wheel.scale, Phase: PhaseChanged})
}

func (r *Recognizer) tickWheel() {
	if !r.wheel.active {
		return
	}
	r.wheel.idleCount++
	if r.wheel.idleCount > wheelIdleFrames {
		scale := r.wheel.scale
		r.wheel = wheelState{}
		r.sink.Pinch(PinchEvent{Scale: scale, Phase: PhaseEnded})
	}
}
