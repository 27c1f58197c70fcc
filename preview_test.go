package emojiart

import (
	"image"
	"testing"
)

func TestLayoutIdle(t *testing.T) {
	doc, _, r := newTestReducer()
	doc.AddItem("🍎", 10, -20, 40)
	doc.SetSteadyState(2, Vec2{5, 0})

	f := r.Layout()
	if f.Viewport != (Size{300, 200}) {
		t.Errorf("viewport = %v", f.Viewport)
	}
	// (0 + 5) * 2 + 150
	if !vecApprox(f.Background.Center, Vec2{160, 100}) || f.Background.Scale != 2 {
		t.Errorf("background = %+v", f.Background)
	}
	p := f.Items[0]
	if !vecApprox(p.Center, Vec2{180, 60}) {
		t.Errorf("center = %v, want (180,60)", p.Center)
	}
	if p.FontSize != 80 || p.Opacity != 1 || p.Selected {
		t.Errorf("placement = %+v", p)
	}
}

func TestLayoutPinchWithoutSelection(t *testing.T) {
	doc, _, r := newTestReducer()
	doc.AddItem("🍎", 10, 0, 40)
	r.Pinch(PinchEvent{Scale: 2, Phase: PhaseChanged})

	f := r.Layout()
	if f.Background.Scale != 2 {
		t.Errorf("background scale = %v, want live 2", f.Background.Scale)
	}
	if f.Items[0].FontSize != 80 {
		t.Errorf("font size = %v, want 80", f.Items[0].FontSize)
	}
	if !vecApprox(f.Items[0].Center, Vec2{170, 100}) {
		t.Errorf("center = %v, want (170,100)", f.Items[0].Center)
	}
}

func TestLayoutPinchWithSelection(t *testing.T) {
	doc, sel, r := newTestReducer()
	a := doc.AddItem("🍎", 10, 0, 40)
	doc.AddItem("🌏", -10, 0, 40)
	sel.Toggle(a.ID)
	r.Pinch(PinchEvent{Scale: 2, Phase: PhaseChanged})

	f := r.Layout()
	if f.Background.Scale != 1 {
		t.Errorf("background scale = %v, want steady 1", f.Background.Scale)
	}
	if f.Items[0].FontSize != 80 {
		t.Errorf("selected font size = %v, want 80", f.Items[0].FontSize)
	}
	if f.Items[1].FontSize != 40 {
		t.Errorf("unselected font size = %v, want 40", f.Items[1].FontSize)
	}
	// Positions stay at the steady-state zoom.
	if !vecApprox(f.Items[0].Center, Vec2{160, 100}) {
		t.Errorf("center = %v, want (160,100)", f.Items[0].Center)
	}
}

func TestLayoutBackgroundPanPreview(t *testing.T) {
	_, _, r := newTestReducer()
	r.Pan(PanEvent{Start: Vec2{10, 10}, Translation: Vec2{30, 0}, Phase: PhaseChanged})
	f := r.Layout()
	if !vecApprox(f.Background.Center, Vec2{180, 100}) {
		t.Errorf("background center = %v, want (180,100)", f.Background.Center)
	}
}

func TestLayoutAtOverridesSteadyState(t *testing.T) {
	doc, _, r := newTestReducer()
	doc.AddItem("🍎", 10, 0, 40)
	f := r.LayoutAt(0.5, Vec2{20, 0})
	if f.Background.Scale != 0.5 {
		t.Errorf("scale = %v, want 0.5", f.Background.Scale)
	}
	if !vecApprox(f.Items[0].Center, Vec2{165, 100}) {
		t.Errorf("center = %v, want (165,100)", f.Items[0].Center)
	}
	if doc.SteadyStateZoomScale() != 1 {
		t.Error("LayoutAt changed the document")
	}
}

func TestHitTestTopmost(t *testing.T) {
	doc, _, r := newTestReducer()
	doc.AddItem("🍎", 0, 0, 40)
	top := doc.AddItem("🌏", 10, 0, 40)

	tests := []struct {
		name   string
		point  Vec2
		wantID int
		wantOK bool
	}{
		{"overlap picks topmost", Vec2{155, 100}, top.ID, true},
		{"only bottom", Vec2{131, 100}, 1, true},
		{"edge of top", Vec2{180, 120}, top.ID, true},
		{"outside", Vec2{181, 100}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, ok := r.HitTest(tt.point)
			if ok != tt.wantOK || it.ID != tt.wantID {
				t.Errorf("HitTest(%v) = %d %v, want %d %v", tt.point, it.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestHitTestUsesOnScreenSize(t *testing.T) {
	doc, _, r := newTestReducer()
	a := doc.AddItem("🍎", 0, 0, 40)
	doc.SetSteadyState(0.5, Vec2{})
	if _, ok := r.HitTest(Vec2{165, 100}); ok {
		t.Error("hit outside the 20px on-screen square")
	}
	if it, ok := r.HitTest(Vec2{159, 100}); !ok || it.ID != a.ID {
		t.Error("missed inside the on-screen square")
	}
}

func TestLayoutBackgroundImageUnaffected(t *testing.T) {
	doc, _, r := newTestReducer()
	doc.SetBackgroundURL("bg")
	doc.ResolveBackground("bg", image.NewRGBA(image.Rect(0, 0, 10, 10)), nil)
	f := r.Layout()
	if !vecApprox(f.Background.Center, Vec2{150, 100}) {
		t.Errorf("background center = %v, want viewport center", f.Background.Center)
	}
}
