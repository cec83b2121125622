// Package ecs provides ECS adapters for alder's graph event bus.
//
// The primary adapter is [NewDonburiSink], which forwards graph events
// (camera, selection, click, drag) into a [Donburi] world as typed events.
// Subscribe to [GraphEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	graph.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
