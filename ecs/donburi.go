package ecs

import (
	"github.com/phanxgames/scrolltween"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ProgressEventType is the Donburi event type for controller events.
var ProgressEventType = events.NewEventType[scrolltween.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on ProgressEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) scrolltween.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event scrolltween.Event) {
	ProgressEventType.Publish(s.world, event)
}
