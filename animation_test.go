package emojiart

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestFitAnimationReachesTarget(t *testing.T) {
	a := NewFitAnimation(1, Vec2{10, -10}, 2, Vec2{}, 0.5, ease.Linear)
	if a.Zoom != 1 || a.Pan != (Vec2{10, -10}) || a.Done {
		t.Fatalf("initial = %+v", a)
	}

	a.Update(0.25)
	if !approxEqual(a.Zoom, 1.5, 1e-6) || !vecApprox(a.Pan, Vec2{5, -5}) {
		t.Errorf("halfway zoom = %v pan = %v", a.Zoom, a.Pan)
	}
	if a.Done {
		t.Error("done halfway")
	}

	a.Update(0.5)
	if !a.Done {
		t.Fatal("not done after full duration")
	}
	if !approxEqual(a.Zoom, 2, 1e-6) || !vecApprox(a.Pan, Vec2{}) {
		t.Errorf("final zoom = %v pan = %v", a.Zoom, a.Pan)
	}
	a.Update(1)
	if !approxEqual(a.Zoom, 2, 1e-6) {
		t.Error("update after done changed values")
	}
}

func TestFitAnimationDefaultEase(t *testing.T) {
	a := NewFitAnimation(1, Vec2{}, 3, Vec2{}, 1, nil)
	a.Update(0.5)
	// OutCubic is ahead of linear at the midpoint.
	if a.Zoom <= 2 {
		t.Errorf("zoom at midpoint = %v, want > 2", a.Zoom)
	}
}

func TestFitAnimationZeroDuration(t *testing.T) {
	a := NewFitAnimation(1, Vec2{}, 3, Vec2{}, 0, nil)
	if !a.Done {
		t.Error("zero-duration animation not done")
	}
}
