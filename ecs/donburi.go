// Package ecs provides ECS adapters for alder.
package ecs

import (
	"github.com/phanxgames/alder"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Event is the Donburi payload for graph events forwarded from the alder
// bus. Args holds the original emit arguments; their types depend on Name
// (for example alder.CameraState for alder.EventCameraChange and
// alder.DragState for the drag lifecycle events).
type Event struct {
	Name alder.GraphEvent
	Args []any
}

// GraphEventType is the Donburi event type for alder graph events.
// Subscribe to this in your ECS systems to receive camera, drag, selection,
// and theme events.
var GraphEventType = events.NewEventType[Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Attach it
// with Graph.SetEventSink; every bus event is published to GraphEventType
// and can be consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) alder.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitGraphEvent(event alder.GraphEvent, args []any) {
	GraphEventType.Publish(s.world, Event{Name: event, Args: args})
}
