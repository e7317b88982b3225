// Package ecs provides ECS adapters for mach.
package ecs

import (
	"github.com/phanxgames/mach"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType is the Donburi event type for mach input events.
// Subscribe to this in your ECS systems to receive click, pan, zoom and
// sequence events.
var InputEventType = events.NewEventType[mach.InputEvent]()

type donburiSink struct {
	world donburi.World
	only  map[mach.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Input events are published to InputEventType and can be consumed with
// events.Subscribe and ProcessEvents. When types are given, only events of
// those types are published.
func NewDonburiSink(world donburi.World, types ...mach.EventType) mach.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.only = make(map[mach.EventType]bool, len(types))
		for _, t := range types {
			s.only[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event mach.InputEvent) {
	if s.only != nil && !s.only[event.Type] {
		return
	}
	InputEventType.Publish(s.world, event)
}
