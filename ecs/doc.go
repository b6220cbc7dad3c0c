// Package ecs bridges perimeter menu events into a [Donburi] world.
//
// [NewDonburiStore] publishes every menu event (expand, collapse, select,
// hover) as a typed Donburi event and keeps one entity per menu whose [Menu]
// component mirrors the menu's latest state. Subscribe to [MenuEventType] in
// your ECS systems, or query [MenuQuery] each tick.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
