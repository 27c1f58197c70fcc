package ecs

import (
	"testing"

	"github.com/phanxgames/emojiart"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_PublishesDocumentChanges(t *testing.T) {
	world := donburi.NewWorld()
	doc := emojiart.NewDocument()
	doc.SetChangeStore(NewDonburiStore(world))

	var received []emojiart.ChangeEvent
	ChangeEventType.Subscribe(world, func(w donburi.World, e emojiart.ChangeEvent) {
		received = append(received, e)
	})

	it := doc.AddItem("🍎", 10, 20, 40)
	doc.SetSteadyState(2, emojiart.Vec2{X: 5})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	ChangeEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != emojiart.ChangeItemAdded || e0.Item != it {
		t.Errorf("event 0: %+v", e0)
	}
	e1 := received[1]
	if e1.Type != emojiart.ChangeSteadyState || e1.Zoom != 2 || e1.Pan.X != 5 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsChangeStore(t *testing.T) {
	world := donburi.NewWorld()
	var store emojiart.ChangeStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	ChangeEventType.Subscribe(world, func(w donburi.World, e emojiart.ChangeEvent) {
		count1++
	})
	ChangeEventType.Subscribe(world, func(w donburi.World, e emojiart.ChangeEvent) {
		count2++
	})

	store.EmitChange(emojiart.ChangeEvent{Type: emojiart.ChangeBackgroundURL, BackgroundURL: "a"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestMirror_TracksItems(t *testing.T) {
	world := donburi.NewWorld()
	doc := emojiart.NewDocument()
	doc.SetChangeStore(NewDonburiStore(world))
	mirror := NewMirror(world)

	a := doc.AddItem("🍎", 0, 0, 40)
	b := doc.AddItem("🌏", 5, 5, 40)
	doc.MoveItem(a.ID, 3, 4)
	doc.ScaleItem(b.ID, 2)
	ChangeEventType.ProcessEvents(world)

	items := mirror.Items()
	if mirror.Len() != 2 || len(items) != 2 {
		t.Fatalf("mirror has %d items (%d listed), want 2", mirror.Len(), len(items))
	}
	if items[0].X != 3 || items[0].Y != 4 {
		t.Errorf("moved item mirrored at (%d,%d)", items[0].X, items[0].Y)
	}
	if items[1].Size != 80 {
		t.Errorf("scaled item mirrored with size %d", items[1].Size)
	}

	doc.RemoveItem(a.ID)
	ChangeEventType.ProcessEvents(world)
	items = mirror.Items()
	if len(items) != 1 || items[0].ID != b.ID {
		t.Errorf("after remove: %+v", items)
	}
}

func TestMirror_Sync(t *testing.T) {
	world := donburi.NewWorld()
	mirror := NewMirror(world)

	doc := emojiart.NewDocument()
	doc.AddItem("🍎", 0, 0, 40)
	doc.AddItem("🌏", 0, 0, 40)
	mirror.Sync(doc.Items())
	if mirror.Len() != 2 {
		t.Fatalf("Len = %d, want 2", mirror.Len())
	}

	mirror.Sync(nil)
	if mirror.Len() != 0 || len(mirror.Items()) != 0 {
		t.Errorf("Sync(nil) left %d items", mirror.Len())
	}
}
