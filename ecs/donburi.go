// Package ecs provides ECS adapters for tactile.
package ecs

import (
	"github.com/phanxgames/tactile"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransformEventType is the Donburi event type for scatter transform events.
// Subscribe to it in your ECS systems to follow scatters being dragged,
// pinched, thrown and bounced.
var TransformEventType = events.NewEventType[tactile.TransformEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Transform events are published to TransformEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) tactile.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event tactile.TransformEvent) {
	TransformEventType.Publish(s.world, event)
}
