// Package ecs provides ECS adapters for emojiart's change notifications.
//
// [NewDonburiStore] bridges document mutations (items added, moved, scaled,
// removed, background and steady-state changes) into a [Donburi] world as
// typed events. Subscribe to [ChangeEventType] in your ECS systems to receive
// them, or attach a [Mirror] to keep one entity per item.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	doc.SetChangeStore(store)
//	mirror := ecs.NewMirror(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
