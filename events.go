package scrolltween

// EventSink is the interface for optional event forwarding, e.g. into an ECS
// world. When set on a Controller, every progress update, boundary crossing
// and reset is reported after it has been applied.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a kind of controller event.
type EventType uint8

const (
	EventProgress EventType = iota // progress changed and all actions ran
	EventBoundary                  // a boundary observer fired
	EventReset                     // ResetProgress was called
)

func (t EventType) String() string {
	switch t {
	case EventProgress:
		return "progress"
	case EventBoundary:
		return "boundary"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event carries controller state for an EventSink.
type Event struct {
	Type     EventType
	Progress float64
	Previous float64
	// Boundary fields (valid for EventBoundary)
	Threshold float64
	Direction Direction
}
