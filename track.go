package scrolltween

import (
	"math"

	"github.com/tanema/gween/ease"
)

// SegmentKind distinguishes the two segment variants of a track.
type SegmentKind uint8

const (
	SegmentKeyPair SegmentKind = iota // interpolates from one value to another
	SegmentHold                       // keeps the previous value constant
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentKeyPair:
		return "keypair"
	case SegmentHold:
		return "hold"
	default:
		return "unknown"
	}
}

// segment covers the progress range [start, end). For holds from == to.
type segment[T Lerper[T]] struct {
	kind       SegmentKind
	from, to   T
	start, end float64
	ease       ease.TweenFunc
}

// fraction returns how far p lies into the segment, clamped to [0, 1].
func (s *segment[T]) fraction(p float64) float64 {
	span := s.end - s.start
	if span <= 0 {
		// Zero-length segments jump straight to their end value.
		return 1
	}
	f := (p - s.start) / span
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	return f
}

// value evaluates the segment at p. The endpoints are returned exactly; in
// between, the easing function may leave [0, 1] so back and elastic curves
// overshoot.
func (s *segment[T]) value(p float64) T {
	if s.kind == SegmentHold {
		return s.from
	}
	f := s.fraction(p)
	switch {
	case f <= 0:
		return s.from
	case f >= 1:
		return s.to
	}
	if s.ease != nil {
		f = float64(s.ease(float32(f), 0, 1, 1))
	}
	return s.from.Lerp(s.to, f)
}

// Segment is a read-only view of one track segment.
type Segment[T Lerper[T]] struct {
	Kind       SegmentKind
	From, To   T
	Start, End float64
	Eased      bool
}

// Track maps progress to a value through an ordered list of contiguous
// segments. A track with no segments holds its initial value everywhere.
type Track[T Lerper[T]] struct {
	origin   T
	originAt float64
	segments []segment[T]
}

func newTrack[T Lerper[T]](from T, at float64) *Track[T] {
	return &Track[T]{origin: from, originAt: at}
}

// Start returns the position of the first keyframe.
func (t *Track[T]) Start() float64 {
	return t.originAt
}

// End returns the position of the last keyframe.
func (t *Track[T]) End() float64 {
	if len(t.segments) == 0 {
		return t.originAt
	}
	return t.segments[len(t.segments)-1].end
}

// First returns the value held for all progress at or before Start.
func (t *Track[T]) First() T {
	return t.origin
}

// Last returns the value held for all progress at or after End.
func (t *Track[T]) Last() T {
	if len(t.segments) == 0 {
		return t.origin
	}
	return t.segments[len(t.segments)-1].to
}

// Len returns the number of segments.
func (t *Track[T]) Len() int {
	return len(t.segments)
}

// Segments returns a copy of the track's segments in order.
func (t *Track[T]) Segments() []Segment[T] {
	out := make([]Segment[T], len(t.segments))
	for i := range t.segments {
		s := &t.segments[i]
		out[i] = Segment[T]{
			Kind:  s.kind,
			From:  s.from,
			To:    s.to,
			Start: s.start,
			End:   s.end,
			Eased: s.ease != nil,
		}
	}
	return out
}

// Value evaluates the track at progress p. It never fails: progress before
// the first keyframe and NaN yield First, progress past the last yields Last.
func (t *Track[T]) Value(p float64) T {
	n := len(t.segments)
	if n == 0 || p <= t.originAt || math.IsNaN(p) {
		return t.origin
	}
	if p >= t.segments[n-1].end {
		return t.segments[n-1].to
	}
	// Binary search for the first segment whose end lies beyond p.
	lo, hi := 0, n-1
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if p < t.segments[mid].end {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return t.segments[lo].value(p)
}

// lastAt returns the position a new segment would start from.
func (t *Track[T]) lastAt() float64 {
	return t.End()
}

func (t *Track[T]) appendKeyPair(to T, at float64, fn ease.TweenFunc) {
	t.segments = append(t.segments, segment[T]{
		kind:  SegmentKeyPair,
		from:  t.Last(),
		to:    to,
		start: t.lastAt(),
		end:   at,
		ease:  fn,
	})
}

func (t *Track[T]) appendHold(at float64) {
	v := t.Last()
	t.segments = append(t.segments, segment[T]{
		kind:  SegmentHold,
		from:  v,
		to:    v,
		start: t.lastAt(),
		end:   at,
	})
}
