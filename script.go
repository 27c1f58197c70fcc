package emojiart

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ScriptStep is a single action in a gesture script.
//
// Gesture actions (pinch, pan, tap, drop, viewport, delete, fit) are applied
// straight to a Reducer. Pointer actions (click, drag), screenshot and wait
// need a running Editor.
type ScriptStep struct {
	Action string   `yaml:"action"`
	Label  string   `yaml:"label,omitempty"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	DX     float64  `yaml:"dx,omitempty"`
	DY     float64  `yaml:"dy,omitempty"`
	ToX    float64  `yaml:"toX,omitempty"`
	ToY    float64  `yaml:"toY,omitempty"`
	Scale  float64  `yaml:"scale,omitempty"`
	Count  int      `yaml:"count,omitempty"`
	Width  float64  `yaml:"width,omitempty"`
	Height float64  `yaml:"height,omitempty"`
	URL    string   `yaml:"url,omitempty"`
	Text   []string `yaml:"text,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
}

// Script is an ordered list of steps. YAML and JSON are both accepted.
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// LoadScript parses a gesture script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &s, nil
}

func knownAction(a string) bool {
	switch a {
	case "pinch", "pan", "tap", "drop", "viewport", "delete", "fit",
		"click", "drag", "screenshot", "wait":
		return true
	}
	return false
}

// Apply runs every step against r. Steps that need an Editor are rejected.
func (s *Script) Apply(r *Reducer) error {
	for i, st := range s.Steps {
		ok, err := applyStep(r, st)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
		if !ok {
			return fmt.Errorf("step %d (%s): needs a running editor", i, st.Action)
		}
	}
	return nil
}

// applyStep applies a gesture step. It returns false for pointer, screenshot
// and wait steps, which only an Editor can run.
func applyStep(r *Reducer, st ScriptStep) (bool, error) {
	switch st.Action {
	case "pinch":
		if !validFactor(st.Scale) {
			return true, fmt.Errorf("scale %v must be positive", st.Scale)
		}
		r.Pinch(PinchEvent{Scale: st.Scale, Phase: PhaseChanged})
		r.Pinch(PinchEvent{Scale: st.Scale, Phase: PhaseEnded})
	case "pan":
		start := Vec2{st.X, st.Y}
		tr := Vec2{st.DX, st.DY}
		r.Pan(PanEvent{Start: start, Translation: tr, Phase: PhaseChanged})
		r.Pan(PanEvent{Start: start, Translation: tr, Phase: PhaseEnded})
	case "tap":
		count := st.Count
		if count == 0 {
			count = 1
		}
		if count != 1 && count != 2 {
			return true, fmt.Errorf("tap count %d", count)
		}
		r.Tap(TapEvent{Point: Vec2{st.X, st.Y}, Count: count})
	case "drop":
		r.Drop(DropEvent{Point: Vec2{st.X, st.Y}, Payload: DropPayload{URL: st.URL, Texts: st.Text}})
	case "viewport":
		r.SetViewport(Size{Width: st.Width, Height: st.Height})
	case "delete":
		r.DeleteSelected()
	case "fit":
		r.ZoomToFit()
	default:
		return false, nil
	}
	return true, nil
}

// ScriptRunner sequences a script across editor frames, injecting pointer
// input and screenshots. Attach to an Editor via SetScript.
type ScriptRunner struct {
	script    *Script
	cursor    int
	waitCount int
	done      bool
	err       error
}

// NewScriptRunner wraps a loaded script.
func NewScriptRunner(s *Script) *ScriptRunner {
	return &ScriptRunner{script: s}
}

// Done reports whether all steps have been executed.
func (sr *ScriptRunner) Done() bool {
	return sr.done
}

// Err returns the first step error, if any. A failing step stops the runner.
func (sr *ScriptRunner) Err() error {
	return sr.err
}

// step advances the runner by one frame. Called from Editor.Update.
func (sr *ScriptRunner) step(e *Editor) {
	if sr.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if e.inject.Pending() {
		return
	}
	if sr.waitCount > 0 {
		sr.waitCount--
		return
	}
	if sr.cursor >= len(sr.script.Steps) {
		sr.done = true
		return
	}

	st := sr.script.Steps[sr.cursor]
	sr.cursor++

	switch st.Action {
	case "screenshot":
		e.Screenshot(st.Label)
	case "click":
		e.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		e.InjectDrag(st.X, st.Y, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			sr.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		if _, err := e.applyScriptStep(st); err != nil {
			sr.err = fmt.Errorf("step %d (%s): %w", sr.cursor-1, st.Action, err)
			sr.done = true
			return
		}
	}

	if sr.cursor >= len(sr.script.Steps) && sr.waitCount == 0 && !e.inject.Pending() {
		sr.done = true
	}
}
