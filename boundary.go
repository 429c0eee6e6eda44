package scrolltween

// Direction is the direction of the most recent threshold crossing.
type Direction uint8

const (
	DirectionNone     Direction = iota // not crossed since creation or last reset
	DirectionForward                   // progress increased past the threshold
	DirectionBackward                  // progress decreased past the threshold
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// boundaryObserver fires fn when progress crosses threshold in direction
// fireOn. lastDirection stops repeated firing until the opposite crossing (or
// a reset) re-arms it.
type boundaryObserver struct {
	id            uint32
	threshold     float64
	fireOn        Direction
	lastDirection Direction
	fn            func()
	removed       bool
}

// cross applies one progress step to the observer and reports whether it
// should fire.
func (o *boundaryObserver) cross(prev, next float64) (Direction, bool) {
	switch {
	case prev < o.threshold && o.threshold <= next:
		if o.lastDirection == DirectionForward {
			return DirectionNone, false
		}
		o.lastDirection = DirectionForward
		return DirectionForward, o.fireOn == DirectionForward
	case prev > o.threshold && o.threshold >= next:
		if o.lastDirection == DirectionBackward {
			return DirectionNone, false
		}
		o.lastDirection = DirectionBackward
		return DirectionBackward, o.fireOn == DirectionBackward
	}
	return DirectionNone, false
}

// ObserverHandle identifies a registered boundary observer.
type ObserverHandle struct {
	ctrl *Controller
	obs  *boundaryObserver
}

// Remove unregisters the observer. Safe to call more than once, and from
// inside any controller callback.
func (h ObserverHandle) Remove() {
	if h.ctrl == nil || h.obs == nil || h.obs.removed {
		return
	}
	h.obs.removed = true
	h.ctrl.removeObserver(h.obs)
}

// Direction returns the observer's last crossing direction.
func (h ObserverHandle) Direction() Direction {
	if h.obs == nil {
		return DirectionNone
	}
	return h.obs.lastDirection
}

// Threshold returns the observed progress position.
func (h ObserverHandle) Threshold() float64 {
	if h.obs == nil {
		return 0
	}
	return h.obs.threshold
}
