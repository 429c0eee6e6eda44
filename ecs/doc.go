// Package ecs provides ECS adapters for scrolltween.
//
// [NewDonburiSink] forwards controller events (progress, boundary, reset)
// into a [Donburi] world as typed events. Subscribe to [ProgressEventType] in
// your ECS systems to receive them:
//
//	c.SetEventSink(ecs.NewDonburiSink(world))
//
// [EntityHost] lets tracks animate entities: it reads and writes the
// [Appearance] component. [Resolver] finds hosts by [Name] so timeline
// documents can target entities directly.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
