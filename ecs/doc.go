// Package ecs provides ECS adapters for mach's scene input events.
//
// The primary adapter is [NewDonburiSink], which bridges mach input events
// (click, pan, zoom, sequence) into a [Donburi] world as typed events.
// Subscribe to [InputEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world) // or NewDonburiSink(world, mach.EventClick)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
