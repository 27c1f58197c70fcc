package emojiart

// injector queues synthetic mouse samples. Screen coordinates are used,
// identical to real mouse input. One sample is consumed per frame and
// replaces the real mouse for that frame.
type injector struct {
	queue []PointerSample
}

// InjectPress queues a pointer press at the given screen coordinates.
func (e *Editor) InjectPress(x, y float64) {
	e.inject.queue = append(e.inject.queue, PointerSample{X: x, Y: y, Pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (e *Editor) InjectMove(x, y float64) {
	e.inject.queue = append(e.inject.queue, PointerSample{X: x, Y: y, Pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (e *Editor) InjectRelease(x, y float64) {
	e.inject.queue = append(e.inject.queue, PointerSample{X: x, Y: y, Pressed: false})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (e *Editor) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// Pending reports whether injected samples are still queued.
func (in *injector) Pending() bool {
	return len(in.queue) > 0
}

// next pops one queued sample.
func (in *injector) next() (PointerSample, bool) {
	if len(in.queue) == 0 {
		return PointerSample{}, false
	}
	s := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]
	return s, true
}
