// Package ecs provides ECS adapters for tactile's scatter transform events.
//
// The primary adapter is [NewDonburiStore], which bridges scatter transform
// events (start, update, end, wheel zoom) into a [Donburi] world as typed
// events. Subscribe to [TransformEventType] in your ECS systems to receive
// them. Set a scatter's EntityID to tie its events to an entity.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	surface.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
