package scrolltween

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// ErrOrderingViolation is wrapped by every *OrderingError.
var ErrOrderingViolation = errors.New("scrolltween: keyframe positions must strictly increase")

// ErrTrackSealed is returned when a builder is used after WithAction.
var ErrTrackSealed = errors.New("scrolltween: track already bound to an action")

// ErrNilAction is returned by WithAction when given a nil callback.
var ErrNilAction = errors.New("scrolltween: nil action")

// OrderingError reports a keyframe whose position does not come after the
// previous keyframe of the same track.
type OrderingError struct {
	Op   string  // builder call that failed: "To", "ThenTo", "ToEased", "ThenHoldUntil"
	Prev float64 // position of the previous keyframe
	At   float64 // rejected position
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("scrolltween: %s at %g must come after previous keyframe at %g", e.Op, e.At, e.Prev)
}

func (e *OrderingError) Unwrap() error {
	return ErrOrderingViolation
}

// TrackBuilder extends a track one keyframe at a time. Every call returns the
// same builder so calls chain; the first error sticks and later calls are
// ignored. WithAction ends the chain.
type TrackBuilder[T Lerper[T]] struct {
	ctrl    *Controller
	binding *binding[T]
	err     error
	sealed  bool
}

// TweenFrom starts a new track on c whose value is from for all progress at
// or before at. The track is registered immediately and stays inert until an
// action is bound with WithAction.
func TweenFrom[T Lerper[T]](c *Controller, from T, at float64) *TrackBuilder[T] {
	b := &binding[T]{track: newTrack(from, at)}
	c.register(b)
	return &TrackBuilder[T]{ctrl: c, binding: b}
}

// To adds a linear segment from the previous keyframe to value at position at.
func (b *TrackBuilder[T]) To(value T, at float64) *TrackBuilder[T] {
	return b.keyPair("To", value, at, nil)
}

// ThenTo is identical to To. It reads better further down a chain.
func (b *TrackBuilder[T]) ThenTo(value T, at float64) *TrackBuilder[T] {
	return b.keyPair("ThenTo", value, at, nil)
}

// ToEased adds a segment like To whose progress is shaped by fn, for example
// ease.InOutCubic. A nil fn is linear.
func (b *TrackBuilder[T]) ToEased(value T, at float64, fn ease.TweenFunc) *TrackBuilder[T] {
	return b.keyPair("ToEased", value, at, fn)
}

// ThenHoldUntil keeps the last keyframe's value constant until at.
func (b *TrackBuilder[T]) ThenHoldUntil(at float64) *TrackBuilder[T] {
	if !b.check("ThenHoldUntil", at) {
		return b
	}
	b.binding.track.appendHold(at)
	return b
}

// WithAction binds fn to the track and ends the chain. fn is called with the
// track's value on every progress update. If any earlier call in the chain
// failed, the track has already been dropped and that error is returned.
func (b *TrackBuilder[T]) WithAction(fn func(T)) error {
	if b.err != nil {
		return b.err
	}
	if b.sealed {
		return ErrTrackSealed
	}
	if fn == nil {
		return ErrNilAction
	}
	b.binding.action = fn
	b.sealed = true
	return nil
}

// Track returns the track under construction.
func (b *TrackBuilder[T]) Track() *Track[T] {
	return b.binding.track
}

// Err returns the first error recorded by the chain, if any.
func (b *TrackBuilder[T]) Err() error {
	return b.err
}

func (b *TrackBuilder[T]) keyPair(op string, value T, at float64, fn ease.TweenFunc) *TrackBuilder[T] {
	if !b.check(op, at) {
		return b
	}
	b.binding.track.appendKeyPair(value, at, fn)
	return b
}

// check validates at against the previous keyframe. On failure the error is
// recorded and the half-built track is removed from the controller.
func (b *TrackBuilder[T]) check(op string, at float64) bool {
	if b.err != nil {
		return false
	}
	if b.sealed {
		b.err = ErrTrackSealed
		return false
	}
	prev := b.binding.track.lastAt()
	// Written as a negation so NaN positions are rejected too.
	if !(at > prev) {
		b.err = &OrderingError{Op: op, Prev: prev, At: at}
		b.ctrl.unregister(b.binding)
		return false
	}
	return true
}
