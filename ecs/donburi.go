package ecs

import (
	"sort"

	"github.com/phanxgames/emojiart"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// ChangeEventType is the Donburi event type for document changes.
var ChangeEventType = events.NewEventType[emojiart.ChangeEvent]()

// ItemComponent holds the mirrored state of one emoji item.
var ItemComponent = donburi.NewComponentType[emojiart.EmojiItem]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates a ChangeStore backed by a Donburi world.
// Changes are published to ChangeEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) emojiart.ChangeStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitChange(event emojiart.ChangeEvent) {
	ChangeEventType.Publish(s.world, event)
}

// Mirror keeps one entity with an ItemComponent per document item. It is
// updated when ChangeEventType events are processed.
type Mirror struct {
	world    donburi.World
	entities map[int]donburi.Entity
	query    *donburi.Query
}

// NewMirror subscribes a mirror to ChangeEventType on world.
func NewMirror(world donburi.World) *Mirror {
	m := &Mirror{
		world:    world,
		entities: make(map[int]donburi.Entity),
		query:    donburi.NewQuery(filter.Contains(ItemComponent)),
	}
	ChangeEventType.Subscribe(world, m.apply)
	return m
}

func (m *Mirror) apply(w donburi.World, ev emojiart.ChangeEvent) {
	switch ev.Type {
	case emojiart.ChangeItemAdded:
		m.add(ev.Item)
	case emojiart.ChangeItemRemoved:
		if e, ok := m.entities[ev.Item.ID]; ok {
			w.Remove(e)
			delete(m.entities, ev.Item.ID)
		}
	case emojiart.ChangeItemMoved, emojiart.ChangeItemScaled:
		if e, ok := m.entities[ev.Item.ID]; ok && w.Valid(e) {
			ItemComponent.SetValue(w.Entry(e), ev.Item)
		}
	}
}

func (m *Mirror) add(it emojiart.EmojiItem) {
	e := m.world.Create(ItemComponent)
	ItemComponent.SetValue(m.world.Entry(e), it)
	m.entities[it.ID] = e
}

// Sync replaces every mirrored entity with one per item. Use it to seed the
// mirror from a document that was loaded before the store was attached.
func (m *Mirror) Sync(items []emojiart.EmojiItem) {
	for id, e := range m.entities {
		m.world.Remove(e)
		delete(m.entities, id)
	}
	for _, it := range items {
		m.add(it)
	}
}

// Items returns the mirrored items ordered by id.
func (m *Mirror) Items() []emojiart.EmojiItem {
	var out []emojiart.EmojiItem
	m.query.Each(m.world, func(entry *donburi.Entry) {
		out = append(out, *ItemComponent.Get(entry))
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of mirrored items.
func (m *Mirror) Len() int {
	return len(m.entities)
}
