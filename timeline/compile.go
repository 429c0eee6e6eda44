package timeline

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/phanxgames/scrolltween"
	"github.com/tanema/gween/ease"
)

// Compile errors.
var (
	ErrUnknownTarget = errors.New("timeline: unknown target")
	ErrUnknownAction = errors.New("timeline: unknown boundary action")
	ErrNoScroll      = errors.New("timeline: sliding-frame track needs a scroll source")
)

// Resolver finds the host a track's target names.
type Resolver interface {
	Resolve(target string) (scrolltween.PropertyHost, bool)
}

// Hosts is a Resolver backed by a map.
type Hosts map[string]scrolltween.PropertyHost

// Resolve implements Resolver.
func (h Hosts) Resolve(target string) (scrolltween.PropertyHost, bool) {
	host, ok := h[target]
	return host, ok
}

// ViewResolver resolves targets by view name within a tree.
type ViewResolver struct {
	Root *scrolltween.View
}

// Resolve implements Resolver.
func (r ViewResolver) Resolve(target string) (scrolltween.PropertyHost, bool) {
	if r.Root == nil {
		return nil, false
	}
	v := r.Root.FindByName(target)
	if v == nil {
		return nil, false
	}
	return v, true
}

// Bindings connects a document to the running program.
type Bindings struct {
	// Hosts resolves track targets. When nil every track is compiled inert,
	// which is enough for sampling.
	Hosts Resolver
	// Scroll is required by sliding-frame tracks bound to a host.
	Scroll scrolltween.ScrollSource
	// Actions maps boundary action names to callbacks. "reset" is built in.
	Actions map[string]func()
	// OnBoundary, if set, runs before the action of every boundary that fires.
	OnBoundary func(b BoundarySpec, dir scrolltween.Direction)
	// Strict turns unresolved targets and actions into errors. Otherwise they
	// are logged and left unbound.
	Strict bool
	// Logf receives warnings. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

func (b *Bindings) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Compiled is a document registered on a controller.
type Compiled struct {
	Document   *Document
	Controller *scrolltween.Controller
	Observers  []scrolltween.ObserverHandle

	tracks []compiledTrack
}

type compiledTrack struct {
	spec   *TrackSpec
	scalar *scrolltween.Track[scrolltween.Scalar]
	rect   *scrolltween.Track[scrolltween.Rect]
	bound  bool
}

// Sample is one track's value at a progress.
type Sample struct {
	Track    string
	Property Property
	Kind     ValueKind
	Bound    bool
	Scalar   float64
	Rect     scrolltween.Rect
}

// String formats the value: "0.5" for scalars, "16,720 368x48" for rects.
func (s Sample) String() string {
	g := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	if s.Kind == ValueScalar {
		return g(s.Scalar)
	}
	r := s.Rect
	return g(r.X) + "," + g(r.Y) + " " + g(r.Width) + "x" + g(r.Height)
}

// Compile registers every track and boundary of doc on c. Targets and
// actions are resolved before anything is registered, so an unresolved name
// leaves c untouched.
func Compile(c *scrolltween.Controller, doc *Document, b Bindings) (*Compiled, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	hosts := make([]scrolltween.PropertyHost, len(doc.Tracks))
	for i := range doc.Tracks {
		h, err := resolveHost(&doc.Tracks[i], &b, doc.Name)
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", doc.Tracks[i].Name, err)
		}
		hosts[i] = h
	}
	actions := make([]func(), len(doc.Boundaries))
	for i, spec := range doc.Boundaries {
		fn, err := boundaryAction(c, spec, &b, doc.Name)
		if err != nil {
			return nil, fmt.Errorf("boundary %q: %w", spec.Name, err)
		}
		actions[i] = fn
	}

	out := &Compiled{Document: doc, Controller: c}
	for i := range doc.Tracks {
		spec := &doc.Tracks[i]
		ct, err := compileTrack(c, doc.Viewport, spec, hosts[i], b.Scroll)
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", spec.Name, err)
		}
		out.tracks = append(out.tracks, ct)
	}

	for i, spec := range doc.Boundaries {
		at := spec.At.Resolve(doc.Viewport)
		var h scrolltween.ObserverHandle
		if spec.direction() == DirectionBackward {
			h = c.ObserveBackwardBoundary(at, actions[i])
		} else {
			h = c.ObserveForwardBoundary(at, actions[i])
		}
		out.Observers = append(out.Observers, h)
	}
	return out, nil
}

// Remove unregisters the document's boundary observers. Its tracks stay on
// the controller.
func (cp *Compiled) Remove() {
	for _, h := range cp.Observers {
		h.Remove()
	}
	cp.Observers = nil
}

// Span returns the earliest and latest keyframe positions of all tracks.
func (cp *Compiled) Span() (start, end float64) {
	start, end = math.Inf(1), math.Inf(-1)
	for _, t := range cp.tracks {
		var s, e float64
		if t.scalar != nil {
			s, e = t.scalar.Start(), t.scalar.End()
		} else {
			s, e = t.rect.Start(), t.rect.End()
		}
		start = math.Min(start, s)
		end = math.Max(end, e)
	}
	if len(cp.tracks) == 0 {
		return 0, 0
	}
	return start, end
}

// Sample evaluates every track at p without running actions.
func (cp *Compiled) Sample(p float64) []Sample {
	out := make([]Sample, 0, len(cp.tracks))
	for _, t := range cp.tracks {
		s := Sample{Track: t.spec.Name, Property: t.spec.Property, Bound: t.bound}
		if t.scalar != nil {
			s.Kind = ValueScalar
			s.Scalar = float64(t.scalar.Value(p))
		} else {
			s.Kind = ValueRect
			s.Rect = t.rect.Value(p)
		}
		out = append(out, s)
	}
	return out
}

// ScalarTrack returns the named scalar track.
func (cp *Compiled) ScalarTrack(name string) (*scrolltween.Track[scrolltween.Scalar], bool) {
	for _, t := range cp.tracks {
		if t.spec.Name == name && t.scalar != nil {
			return t.scalar, true
		}
	}
	return nil, false
}

// RectTrack returns the named rect track.
func (cp *Compiled) RectTrack(name string) (*scrolltween.Track[scrolltween.Rect], bool) {
	for _, t := range cp.tracks {
		if t.spec.Name == name && t.rect != nil {
			return t.rect, true
		}
	}
	return nil, false
}

// planStep is a resolved step.
type planStep[T scrolltween.Lerper[T]] struct {
	hold  bool
	value T
	at    float64
	fn    ease.TweenFunc
}

func buildTrack[T scrolltween.Lerper[T]](c *scrolltween.Controller, from T, at float64, steps []planStep[T]) *scrolltween.TrackBuilder[T] {
	tb := scrolltween.TweenFrom(c, from, at)
	for _, st := range steps {
		if st.hold {
			tb = tb.ThenHoldUntil(st.at)
		} else {
			tb = tb.ToEased(st.value, st.at, st.fn)
		}
	}
	return tb
}

// resolveHost finds the track's host. A nil host with a nil error means the
// track is compiled inert.
func resolveHost(spec *TrackSpec, b *Bindings, doc string) (scrolltween.PropertyHost, error) {
	if b.Hosts == nil {
		return nil, nil
	}
	host, ok := b.Hosts.Resolve(spec.Target)
	switch {
	case ok:
		if spec.Property == PropertySlidingFrame && b.Scroll == nil {
			return nil, ErrNoScroll
		}
		return host, nil
	case b.Strict:
		return nil, fmt.Errorf("%w %q", ErrUnknownTarget, spec.Target)
	default:
		b.logf("scrolltween: timeline %q: no host for target %q; track %q left unbound",
			doc, spec.Target, spec.Name)
		return nil, nil
	}
}

func compileTrack(c *scrolltween.Controller, vp Size, spec *TrackSpec, host scrolltween.PropertyHost, scroll scrolltween.ScrollSource) (compiledTrack, error) {
	ct := compiledTrack{spec: spec}
	from := spec.From.At.Resolve(vp)
	switch spec.Property {
	case PropertyAlpha:
		steps := make([]planStep[scrolltween.Scalar], len(spec.Steps))
		for i, st := range spec.Steps {
			steps[i] = resolveStep(st, vp, func(v Value) scrolltween.Scalar { return v.ResolveScalar(vp) })
		}
		tb := buildTrack(c, spec.From.Value.ResolveScalar(vp), from, steps)
		ct.scalar = tb.Track()
		if err := tb.Err(); err != nil {
			return ct, err
		}
		if host != nil {
			if err := tb.WithAction(scrolltween.ApplyAlpha(host)); err != nil {
				return ct, err
			}
			ct.bound = true
		}

	default:
		steps := make([]planStep[scrolltween.Rect], len(spec.Steps))
		for i, st := range spec.Steps {
			steps[i] = resolveStep(st, vp, func(v Value) scrolltween.Rect { return v.ResolveRect(vp) })
		}
		tb := buildTrack(c, spec.From.Value.ResolveRect(vp), from, steps)
		ct.rect = tb.Track()
		if err := tb.Err(); err != nil {
			return ct, err
		}
		if host != nil {
			action := scrolltween.ApplyFrame(host)
			if spec.Property == PropertySlidingFrame {
				action = scrolltween.SlidingFrame(host, scroll)
			}
			if err := tb.WithAction(action); err != nil {
				return ct, err
			}
			ct.bound = true
		}
	}
	return ct, nil
}

func resolveStep[T scrolltween.Lerper[T]](st Step, vp Size, conv func(Value) T) planStep[T] {
	if st.Hold != nil {
		return planStep[T]{hold: true, at: st.Hold.Resolve(vp)}
	}
	fn, _ := lookupEase(st.Ease)
	return planStep[T]{value: conv(*st.To), at: st.At.Resolve(vp), fn: fn}
}

func boundaryAction(c *scrolltween.Controller, spec BoundarySpec, b *Bindings, doc string) (func(), error) {
	var action func()
	switch {
	case spec.Action == ActionReset:
		action = c.ResetProgress
	case b.Actions[spec.Action] != nil:
		action = b.Actions[spec.Action]
	case b.Strict:
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, spec.Action)
	case b.Actions != nil:
		b.logf("scrolltween: timeline %q: no action %q for boundary %q", doc, spec.Action, spec.Name)
	}

	notify := b.OnBoundary
	dir := scrolltween.DirectionForward
	if spec.direction() == DirectionBackward {
		dir = scrolltween.DirectionBackward
	}
	return func() {
		if notify != nil {
			notify(spec, dir)
		}
		if action != nil {
			action()
		}
	}, nil
}
