package scrolltween

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func scalarTrack(t *testing.T) *Track[Scalar] {
	t.Helper()
	c := NewController()
	b := TweenFrom(c, Scalar(0), 0).To(1, 100).ThenTo(0, 200)
	if err := b.Err(); err != nil {
		t.Fatalf("build track: %v", err)
	}
	return b.Track()
}

func TestTrackTwoKeyframes(t *testing.T) {
	c := NewController()
	tr := TweenFrom(c, Scalar(2), 10).To(6, 30).Track()

	tests := []struct {
		name string
		p    float64
		want Scalar
	}{
		{"at start", 10, 2},
		{"at end", 30, 6},
		{"midpoint", 20, 4},
		{"before start", -5, 2},
		{"after end", 1000, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Value(tt.p); got != tt.want {
				t.Errorf("Value(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestTrackUpAndDownScenario(t *testing.T) {
	tr := scalarTrack(t)

	if got := tr.Value(50); got != 0.5 {
		t.Errorf("Value(50) = %v, want 0.5", got)
	}
	if got := tr.Value(150); got != 0.5 {
		t.Errorf("Value(150) = %v, want 0.5", got)
	}
	if got := tr.Value(250); got != 0 {
		t.Errorf("Value(250) = %v, want 0 (clamped)", got)
	}
	if got := tr.Value(100); got != 1 {
		t.Errorf("Value(100) = %v, want 1", got)
	}
}

func TestTrackHoldKeepsValue(t *testing.T) {
	c := NewController()
	tr := TweenFrom(c, Scalar(0), 0).To(0.75, 100).ThenHoldUntil(300).ThenTo(0, 400).Track()

	for _, p := range []float64{100, 150, 200, 299.999, 300} {
		if got := tr.Value(p); got != 0.75 {
			t.Errorf("Value(%v) = %v, want 0.75 inside hold", p, got)
		}
	}
	if got := tr.Value(350); got != 0.375 {
		t.Errorf("Value(350) = %v, want 0.375", got)
	}
}

func TestTrackStartValueIsExact(t *testing.T) {
	c := NewController()
	start := Rect{X: 0.1, Y: 0.2, Width: 0.3, Height: 1.0 / 3.0}
	tr := TweenFrom(c, start, 7.5).To(Rect{X: 99, Y: -1, Width: 1e9, Height: 3}, 12.25).Track()

	if got := tr.Value(7.5); got != start {
		t.Errorf("Value(start) = %+v, want %+v bit-for-bit", got, start)
	}
}

func TestTrackSegmentBoundaryContinuity(t *testing.T) {
	c := NewController()
	tr := TweenFrom(c, Scalar(1.0/3.0), 0).To(0.7, 10).ThenTo(0.1, 20).Track()

	// At an interior keyframe the next segment starts from the previous end.
	if got := tr.Value(10); got != 0.7 {
		t.Errorf("Value(10) = %v, want 0.7", got)
	}
}

func TestTrackWithoutSegments(t *testing.T) {
	c := NewController()
	tr := TweenFrom(c, Scalar(0.4), 50).Track()

	for _, p := range []float64{-100, 50, 51, 1e6} {
		if got := tr.Value(p); got != 0.4 {
			t.Errorf("Value(%v) = %v, want 0.4", p, got)
		}
	}
	if tr.Start() != 50 || tr.End() != 50 {
		t.Errorf("Start/End = %v/%v, want 50/50", tr.Start(), tr.End())
	}
}

func TestTrackRectInterpolatesComponents(t *testing.T) {
	c := NewController()
	from := Rect{X: 0, Y: 10, Width: 100, Height: 40}
	to := Rect{X: 50, Y: 30, Width: 200, Height: 0}
	tr := TweenFrom(c, from, 0).To(to, 10).Track()

	got := tr.Value(5)
	want := Rect{X: 25, Y: 20, Width: 150, Height: 20}
	if got != want {
		t.Errorf("Value(5) = %+v, want %+v", got, want)
	}
}

func TestTrackEasedSegment(t *testing.T) {
	c := NewController()
	linear := TweenFrom(c, Scalar(0), 0).To(100, 1).Track()
	eased := TweenFrom(c, Scalar(0), 0).ToEased(100, 1, ease.OutCubic).Track()

	l := float64(linear.Value(0.5))
	e := float64(eased.Value(0.5))
	// OutCubic should be ahead of linear at the midpoint.
	if e <= l+1 {
		t.Errorf("eased = %f, linear = %f; OutCubic should lead at midpoint", e, l)
	}
	// Endpoints stay exact regardless of easing precision.
	if got := eased.Value(1); got != 100 {
		t.Errorf("eased end = %v, want 100", got)
	}
	if got := eased.Value(0); got != 0 {
		t.Errorf("eased start = %v, want 0", got)
	}
}

func TestTrackEasedSegmentOvershoots(t *testing.T) {
	c := NewController()
	tr := TweenFrom(c, Scalar(0), 0).ToEased(1, 100, ease.OutBack).Track()

	want := float64(ease.OutBack(0.7, 0, 1, 1))
	if got := float64(tr.Value(70)); math.Abs(got-want) > 1e-6 || got <= 1 {
		t.Errorf("Value(70) = %f, want %f (past the end value)", got, want)
	}
	if got := tr.Value(100); got != 1 {
		t.Errorf("Value(100) = %v, want exactly 1", got)
	}
}

func TestTrackValueNaN(t *testing.T) {
	c := NewController()
	tr := TweenFrom(c, Scalar(3), 10).To(7, 20).Track()
	if got := tr.Value(math.NaN()); got != 3 {
		t.Errorf("Value(NaN) = %v, want First (3)", got)
	}
}

func TestTrackSegmentsSnapshot(t *testing.T) {
	c := NewController()
	tr := TweenFrom(c, Scalar(0), 0).To(1, 10).ThenHoldUntil(20).ToEased(0, 30, ease.InQuad).Track()

	segs := tr.Segments()
	if len(segs) != 3 || tr.Len() != 3 {
		t.Fatalf("len(Segments()) = %d, Len() = %d, want 3", len(segs), tr.Len())
	}
	if segs[0].Kind != SegmentKeyPair || segs[0].Start != 0 || segs[0].End != 10 {
		t.Errorf("segment 0 = %+v", segs[0])
	}
	if segs[1].Kind != SegmentHold || segs[1].From != 1 || segs[1].To != 1 {
		t.Errorf("segment 1 = %+v", segs[1])
	}
	if !segs[2].Eased || segs[2].Start != 20 || segs[2].End != 30 {
		t.Errorf("segment 2 = %+v", segs[2])
	}
	if tr.First() != 0 || tr.Last() != 0 {
		t.Errorf("First/Last = %v/%v, want 0/0", tr.First(), tr.Last())
	}
}

func TestSegmentZeroLengthJumpsToEnd(t *testing.T) {
	s := segment[Scalar]{kind: SegmentKeyPair, from: 1, to: 5, start: 10, end: 10}
	if got := s.value(10); got != 5 {
		t.Errorf("value = %v, want 5", got)
	}
	if f := s.fraction(10); f != 1 {
		t.Errorf("fraction = %v, want 1", f)
	}
}

func TestTrackManySegmentsLookup(t *testing.T) {
	c := NewController()
	b := TweenFrom(c, Scalar(0), 0)
	for i := 1; i <= 64; i++ {
		b.To(Scalar(i), float64(i*10))
	}
	tr := b.Track()
	for i := 0; i < 64; i++ {
		p := float64(i*10) + 5
		want := Scalar(i) + 0.5
		if got := tr.Value(p); math.Abs(float64(got-want)) > 1e-12 {
			t.Errorf("Value(%v) = %v, want %v", p, got, want)
		}
	}
}
