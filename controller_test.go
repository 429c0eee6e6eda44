package scrolltween

import (
	"math"
	"testing"
)

type recordingSink struct {
	events []Event
}

func (s *recordingSink) EmitEvent(e Event) {
	s.events = append(s.events, e)
}

func TestControllerDispatchesActions(t *testing.T) {
	c := NewController()
	var alpha Scalar
	var frame Rect
	if err := TweenFrom(c, Scalar(0), 0).To(1, 100).ThenTo(0, 200).
		WithAction(func(v Scalar) { alpha = v }); err != nil {
		t.Fatal(err)
	}
	if err := TweenFrom(c, Rect{Width: 10, Height: 10}, 0).
		To(Rect{X: 100, Width: 10, Height: 10}, 100).
		WithAction(func(r Rect) { frame = r }); err != nil {
		t.Fatal(err)
	}

	c.UpdateProgress(50)
	if alpha != 0.5 {
		t.Errorf("alpha = %v, want 0.5", alpha)
	}
	if frame.X != 50 {
		t.Errorf("frame.X = %v, want 50", frame.X)
	}

	c.UpdateProgress(150)
	if alpha != 0.5 {
		t.Errorf("alpha = %v, want 0.5", alpha)
	}
	if frame.X != 100 {
		t.Errorf("frame.X = %v, want 100 (clamped)", frame.X)
	}

	c.UpdateProgress(250)
	if alpha != 0 {
		t.Errorf("alpha = %v, want 0 (clamped)", alpha)
	}
	if c.Progress() != 250 {
		t.Errorf("Progress = %v, want 250", c.Progress())
	}
}

func TestControllerActionsRunBeforeBoundaries(t *testing.T) {
	c := NewController()
	var order []string
	_ = TweenFrom(c, Scalar(0), 0).To(1, 100).WithAction(func(Scalar) {
		order = append(order, "action")
	})
	c.ObserveForwardBoundary(50, func() { order = append(order, "boundary") })
	_ = TweenFrom(c, Scalar(0), 0).To(1, 100).WithAction(func(Scalar) {
		order = append(order, "action")
	})

	c.UpdateProgress(60)
	want := []string{"action", "action", "boundary"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestControllerUnboundTrackIsInert(t *testing.T) {
	c := NewController()
	TweenFrom(c, Scalar(0), 0).To(1, 100)
	if c.TrackCount() != 1 {
		t.Fatalf("TrackCount = %d, want 1", c.TrackCount())
	}
	// Nothing observable; must simply not panic.
	c.UpdateProgress(50)
	c.Refresh()
}

func TestControllerResetDoesNotDispatch(t *testing.T) {
	c := NewController()
	calls := 0
	_ = TweenFrom(c, Scalar(0), 0).To(1, 100).WithAction(func(Scalar) { calls++ })

	c.UpdateProgress(80)
	c.ResetProgress()
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (reset must not run actions)", calls)
	}
	if c.Progress() != 0 {
		t.Errorf("Progress = %v, want 0", c.Progress())
	}
}

func TestControllerRefresh(t *testing.T) {
	c := NewController()
	var got Scalar = -1
	_ = TweenFrom(c, Scalar(0.25), 0).To(1, 100).WithAction(func(v Scalar) { got = v })

	c.Refresh()
	if got != 0.25 {
		t.Errorf("got = %v after Refresh at progress 0, want 0.25", got)
	}
}

func TestControllerIgnoresNaN(t *testing.T) {
	c := NewController()
	calls := 0
	_ = TweenFrom(c, Scalar(0), 0).To(1, 100).WithAction(func(Scalar) { calls++ })

	c.UpdateProgress(40)
	c.UpdateProgress(math.NaN())
	if calls != 1 || c.Progress() != 40 {
		t.Errorf("calls = %d, progress = %v; NaN should be ignored", calls, c.Progress())
	}
}

func TestControllerEventSink(t *testing.T) {
	c := NewController()
	sink := &recordingSink{}
	c.SetEventSink(sink)
	c.ObserveForwardBoundary(10, func() {})

	c.UpdateProgress(5)
	c.UpdateProgress(15)
	c.ResetProgress()

	want := []EventType{EventProgress, EventProgress, EventBoundary, EventReset}
	if len(sink.events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(sink.events), len(want), sink.events)
	}
	for i, typ := range want {
		if sink.events[i].Type != typ {
			t.Errorf("event %d type = %v, want %v", i, sink.events[i].Type, typ)
		}
	}
	b := sink.events[2]
	if b.Threshold != 10 || b.Direction != DirectionForward || b.Previous != 5 || b.Progress != 15 {
		t.Errorf("boundary event = %+v", b)
	}
	if sink.events[3].Previous != 15 {
		t.Errorf("reset event Previous = %v, want 15", sink.events[3].Previous)
	}

	c.SetEventSink(nil)
	c.UpdateProgress(1)
	if len(sink.events) != len(want) {
		t.Error("events delivered after sink removed")
	}
}

func TestControllerTrackAddedDuringDispatch(t *testing.T) {
	c := NewController()
	added := false
	lateCalls := 0
	_ = TweenFrom(c, Scalar(0), 0).To(1, 10).WithAction(func(Scalar) {
		if added {
			return
		}
		added = true
		_ = TweenFrom(c, Scalar(0), 0).To(1, 10).WithAction(func(Scalar) { lateCalls++ })
	})

	c.UpdateProgress(1)
	if lateCalls != 0 {
		t.Errorf("lateCalls = %d, want 0 during the registering update", lateCalls)
	}
	c.UpdateProgress(2)
	if lateCalls != 1 {
		t.Errorf("lateCalls = %d, want 1 on the next update", lateCalls)
	}
}

func TestControllerUpdateProgressZeroAlloc(t *testing.T) {
	c := NewController()
	view := NewView("v", Rect{Width: 10, Height: 10})
	_ = TweenFrom(c, Scalar(0), 0).To(1, 100).ThenHoldUntil(200).ThenTo(0, 300).WithAction(ApplyAlpha(view))
	_ = TweenFrom(c, view.Frame(), 0).To(Rect{X: 300, Width: 10, Height: 10}, 300).WithAction(ApplyFrame(view))
	c.ObserveForwardBoundary(1e9, func() {})

	// Warm up.
	c.UpdateProgress(1)

	p := 0.0
	result := testing.AllocsPerRun(100, func() {
		p += 1.5
		c.UpdateProgress(p)
	})
	if result > 0 {
		t.Errorf("UpdateProgress allocated %f times per run, want 0", result)
	}
}
