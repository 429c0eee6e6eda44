package scrolltween

import "math"

// evaluator is the type-erased side of a binding so tracks of different value
// types can live in one list.
type evaluator interface {
	apply(p float64)
	bound() bool
}

// binding pairs a track with its action. A nil action makes it inert.
type binding[T Lerper[T]] struct {
	track  *Track[T]
	action func(T)
}

func (b *binding[T]) apply(p float64) {
	if b.action == nil {
		return
	}
	b.action(b.track.Value(p))
}

func (b *binding[T]) bound() bool {
	return b.action != nil
}

// Controller owns a set of tracks and boundary observers and dispatches
// progress updates to them. The zero value is not usable; create one with
// NewController.
//
// Controller is single-threaded: all methods must be called from the same
// goroutine, typically the one that delivers scroll events.
type Controller struct {
	progress  float64
	bindings  []evaluator
	observers []*boundaryObserver
	nextID    uint32

	store       EventSink
	debug       bool
	warnedInert bool
}

// NewController creates a controller at progress 0 with no tracks.
func NewController() *Controller {
	return &Controller{}
}

// Progress returns the current progress.
func (c *Controller) Progress() float64 {
	return c.progress
}

// TrackCount returns the number of registered tracks, bound or not.
func (c *Controller) TrackCount() int {
	return len(c.bindings)
}

// ObserverCount returns the number of registered boundary observers.
func (c *Controller) ObserverCount() int {
	return len(c.observers)
}

// SetEventSink sets the optional event sink. Pass nil to disable.
func (c *Controller) SetEventSink(sink EventSink) {
	c.store = sink
}

// SetDebugMode enables or disables debug mode. When enabled, boundary
// crossings, resets and inert tracks are logged to stderr.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// ObserveForwardBoundary registers fn to run when progress crosses at moving
// forward. It fires once per crossing and re-arms after progress crosses back
// or after ResetProgress. Thresholds outside the reachable range never fire.
func (c *Controller) ObserveForwardBoundary(at float64, fn func()) ObserverHandle {
	return c.observe(at, DirectionForward, fn)
}

// ObserveBackwardBoundary is the mirror of ObserveForwardBoundary: fn runs
// when progress crosses at moving backward.
func (c *Controller) ObserveBackwardBoundary(at float64, fn func()) ObserverHandle {
	return c.observe(at, DirectionBackward, fn)
}

func (c *Controller) observe(at float64, dir Direction, fn func()) ObserverHandle {
	c.nextID++
	o := &boundaryObserver{id: c.nextID, threshold: at, fireOn: dir, fn: fn}
	c.observers = append(c.observers, o)
	return ObserverHandle{ctrl: c, obs: o}
}

// UpdateProgress moves the controller to progress p. Every bound track is
// evaluated at p and its action invoked; only then are boundary observers
// checked against the step from the previous progress. NaN is ignored.
//
// Boundary callbacks may call UpdateProgress or ResetProgress themselves.
func (c *Controller) UpdateProgress(p float64) {
	if math.IsNaN(p) {
		if c.debug {
			c.debugf("ignoring NaN progress")
		}
		return
	}
	prev := c.progress
	c.progress = p

	c.dispatch(p)

	if c.store != nil {
		c.store.EmitEvent(Event{Type: EventProgress, Progress: p, Previous: prev})
	}

	c.checkBoundaries(prev, p)
}

// Refresh re-runs every bound action at the current progress without
// checking boundaries. Useful after binding actions to push initial values.
func (c *Controller) Refresh() {
	c.dispatch(c.progress)
}

// ResetProgress sets progress back to 0 and clears every observer's crossing
// state so forward boundaries can fire again. No actions run; callers that
// reposition their scroll source deliver the new progress themselves.
func (c *Controller) ResetProgress() {
	prev := c.progress
	c.progress = 0
	for _, o := range c.observers {
		o.lastDirection = DirectionNone
	}
	if c.debug {
		c.debugf("reset progress (was %g)", prev)
	}
	if c.store != nil {
		c.store.EmitEvent(Event{Type: EventReset, Progress: 0, Previous: prev})
	}
}

func (c *Controller) dispatch(p float64) {
	// Index loop: actions may register new tracks, which then join next update.
	n := len(c.bindings)
	for i := 0; i < n && i < len(c.bindings); i++ {
		c.bindings[i].apply(p)
	}
	if c.debug && !c.warnedInert {
		c.warnInert()
	}
}

type firing struct {
	obs *boundaryObserver
	dir Direction
}

// checkBoundaries updates every observer's state first and runs callbacks
// afterwards, so a callback that resets or re-enters the controller sees a
// consistent state for all observers.
func (c *Controller) checkBoundaries(prev, next float64) {
	var fired []firing
	for _, o := range c.observers {
		dir, fire := o.cross(prev, next)
		if dir != DirectionNone && c.debug {
			c.debugf("boundary #%d at %g crossed %s (%g -> %g)", o.id, o.threshold, dir, prev, next)
		}
		if fire {
			fired = append(fired, firing{obs: o, dir: dir})
		}
	}
	for _, f := range fired {
		if f.obs.removed {
			continue
		}
		if f.obs.fn != nil {
			f.obs.fn()
		}
		if c.store != nil {
			c.store.EmitEvent(Event{
				Type:      EventBoundary,
				Progress:  next,
				Previous:  prev,
				Threshold: f.obs.threshold,
				Direction: f.dir,
			})
		}
	}
}

func (c *Controller) register(e evaluator) {
	c.bindings = append(c.bindings, e)
}

func (c *Controller) unregister(e evaluator) {
	for i, b := range c.bindings {
		if b == e {
			copy(c.bindings[i:], c.bindings[i+1:])
			c.bindings[len(c.bindings)-1] = nil
			c.bindings = c.bindings[:len(c.bindings)-1]
			return
		}
	}
}

func (c *Controller) removeObserver(o *boundaryObserver) {
	for i, x := range c.observers {
		if x == o {
			copy(c.observers[i:], c.observers[i+1:])
			c.observers[len(c.observers)-1] = nil
			c.observers = c.observers[:len(c.observers)-1]
			return
		}
	}
}
