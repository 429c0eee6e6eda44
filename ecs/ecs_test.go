package ecs

import (
	"testing"

	"github.com/phanxgames/scrolltween"
	"github.com/phanxgames/scrolltween/timeline"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSinkReceivesControllerEvents(t *testing.T) {
	world := donburi.NewWorld()
	c := scrolltween.NewController()
	c.SetEventSink(NewDonburiSink(world))
	c.ObserveForwardBoundary(100, func() {})

	var received []scrolltween.Event
	ProgressEventType.Subscribe(world, func(w donburi.World, e scrolltween.Event) {
		received = append(received, e)
	})

	c.UpdateProgress(150)
	c.ResetProgress()

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	ProgressEventType.ProcessEvents(world)

	var progress, boundary, reset int
	for _, e := range received {
		switch e.Type {
		case scrolltween.EventProgress:
			progress++
			if e.Progress != 150 || e.Previous != 0 {
				t.Errorf("progress event = %+v", e)
			}
		case scrolltween.EventBoundary:
			boundary++
			if e.Threshold != 100 || e.Direction != scrolltween.DirectionForward {
				t.Errorf("boundary event = %+v", e)
			}
		case scrolltween.EventReset:
			reset++
			if e.Previous != 150 {
				t.Errorf("reset event = %+v", e)
			}
		}
	}
	if progress != 1 || boundary != 1 || reset != 1 {
		t.Errorf("got %d progress, %d boundary, %d reset events", progress, boundary, reset)
	}
}

func TestDonburiSinkMultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	ProgressEventType.Subscribe(world, func(w donburi.World, e scrolltween.Event) {
		count1++
	})
	ProgressEventType.Subscribe(world, func(w donburi.World, e scrolltween.Event) {
		count2++
	})

	sink.EmitEvent(scrolltween.Event{Type: scrolltween.EventReset})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func newEntity(world donburi.World, name string, a Appearance) donburi.Entity {
	e := world.Create(NameComponent, AppearanceComponent)
	entry := world.Entry(e)
	NameComponent.SetValue(entry, Name(name))
	AppearanceComponent.SetValue(entry, a)
	return e
}

func TestEntityHostDrivenByTrack(t *testing.T) {
	world := donburi.NewWorld()
	e := newEntity(world, "logo", Appearance{Alpha: 1})
	host := NewEntityHost(world, e)

	c := scrolltween.NewController()
	tb := scrolltween.TweenFrom(c, scrolltween.Scalar(1), 0).To(0, 100)
	if err := tb.WithAction(scrolltween.ApplyAlpha(host)); err != nil {
		t.Fatal(err)
	}
	fb := scrolltween.TweenFrom(c, scrolltween.Rect{}, 0).To(scrolltween.Rect{X: 50, Width: 10, Height: 10}, 100)
	if err := fb.WithAction(scrolltween.ApplyFrame(host)); err != nil {
		t.Fatal(err)
	}

	c.UpdateProgress(50)
	a := AppearanceComponent.Get(world.Entry(e))
	if a.Alpha != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", a.Alpha)
	}
	if a.Frame != (scrolltween.Rect{X: 25, Width: 5, Height: 5}) {
		t.Errorf("Frame = %+v", a.Frame)
	}
	if host.Alpha() != 0.5 || host.Frame().X != 25 {
		t.Errorf("host reads %v %+v", host.Alpha(), host.Frame())
	}
}

func TestEntityHostDisposedWhenRemoved(t *testing.T) {
	world := donburi.NewWorld()
	e := newEntity(world, "logo", Appearance{Alpha: 1})
	host := NewEntityHost(world, e)
	if host.IsDisposed() {
		t.Fatal("live entity reported disposed")
	}

	world.Remove(e)
	if !host.IsDisposed() {
		t.Error("removed entity should be disposed")
	}
	// Writes to a removed entity are dropped.
	host.SetAlpha(0.3)
	host.SetFrame(scrolltween.Rect{X: 1})
	if host.Alpha() != 0 || host.Frame() != (scrolltween.Rect{}) {
		t.Error("removed entity should read as zero")
	}
}

func TestResolverDrivesTimeline(t *testing.T) {
	world := donburi.NewWorld()
	newEntity(world, "other", Appearance{Alpha: 1})
	logo := newEntity(world, "logo", Appearance{Alpha: 1})

	doc, err := timeline.Parse([]byte(`
name: fade
viewport: {width: 100, height: 100}
tracks:
  - name: logo-fade
    target: logo
    property: alpha
    from: {value: 1, at: 0}
    steps:
      - {to: 0, at: 1w}
`))
	if err != nil {
		t.Fatal(err)
	}

	c := scrolltween.NewController()
	if _, err := timeline.Compile(c, doc, timeline.Bindings{Hosts: Resolver{World: world}, Strict: true}); err != nil {
		t.Fatal(err)
	}
	c.UpdateProgress(75)

	if got := AppearanceComponent.Get(world.Entry(logo)).Alpha; got != 0.25 {
		t.Errorf("logo alpha = %v, want 0.25", got)
	}

	if _, ok := (Resolver{World: world}).Resolve("missing"); ok {
		t.Error("Resolve(missing) should fail")
	}
}
