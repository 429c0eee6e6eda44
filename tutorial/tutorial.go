// Package tutorial builds a looping onboarding carousel on top of a
// scrolltween Controller: six horizontal pages whose last page is a copy of
// the first, a background that cross-fades through a gradient, a star field
// and a tower, copy text that fades page by page, and bottom controls that
// slide away and come back. Reaching the last page jumps silently back to the
// first, so the carousel appears to loop forever.
package tutorial

import (
	"errors"

	"github.com/phanxgames/scrolltween"
)

const (
	// contentPages is the number of scroll pages, including the copy of the
	// first page at the end.
	contentPages = 6
	// dotPages is the number of distinct pages shown by the page control.
	dotPages = 5
	// baselineWidth is the viewport width copy sizes are authored for.
	baselineWidth = 414.0
)

// ErrDetached is returned by Build when the container has no parent view to
// host the scroll content.
var ErrDetached = errors.New("tutorial: container view has no parent")

// Image names set on the views Build creates. Renderers that resolve images
// look these up; others fall back to the views' fill colors.
const (
	ImageStars = "stars"
	ImageTower = "eiffel_tower"
)

// TopCopyImages and BottomCopyImages name the copy images for pages two
// through five.
var (
	TopCopyImages    = [4]string{"top_copy_s2", "top_copy_s3", "top_copy_s4", "top_copy_s5"}
	BottomCopyImages = [4]string{"bottom_copy_s2", "bottom_copy_s3", "bottom_copy_s4", "bottom_copy_s5"}
)

// Options holds asset sizes and colors. Copy sizes are in points at
// baselineWidth and are scaled to the viewport.
type Options struct {
	StarsSize       scrolltween.Vec2
	TopCopySizes    [4]scrolltween.Vec2
	BottomCopySizes [4]scrolltween.Vec2
	GradientTop     scrolltween.Color
	GradientBottom  scrolltween.Color
	StarsColor      scrolltween.Color
	TowerColor      scrolltween.Color
	CopyColor       scrolltween.Color
	Debug           bool
}

// DefaultOptions returns the stock asset sizes and palette.
func DefaultOptions() Options {
	top := scrolltween.Vec2{X: 300, Y: 64}
	bottom := scrolltween.Vec2{X: 330, Y: 120}
	return Options{
		StarsSize:       scrolltween.Vec2{X: 326, Y: 462},
		TopCopySizes:    [4]scrolltween.Vec2{top, top, top, top},
		BottomCopySizes: [4]scrolltween.Vec2{bottom, bottom, bottom, bottom},
		GradientTop:     scrolltween.RGB8(155, 39, 153),
		GradientBottom:  scrolltween.RGB8(38, 198, 218),
		StarsColor:      scrolltween.Color{R: 1, G: 1, B: 1, A: 0.25},
		TowerColor:      scrolltween.RGB8(42, 36, 70),
		CopyColor:       scrolltween.Color{R: 1, G: 1, B: 1, A: 0.85},
	}
}

// Tutorial is a built carousel. Feed input into Scroll and call
// Scroll.Update every tick; the controller is driven by the scroll offset.
type Tutorial struct {
	Controller *scrolltween.Controller
	Scroll     *scrolltween.ScrollView
	// Content is the scrolled layer; its frame follows the scroll offset.
	Content *scrolltween.View
	Screen  Screen

	Snapshot     *scrolltween.View
	Gradient     *scrolltween.View
	Stars        *scrolltween.View
	Tower        *scrolltween.View
	TopCopies    [4]*scrolltween.View
	BottomCopies [4]*scrolltween.View

	viewport scrolltween.Vec2
	loops    int
	handles  []scrolltween.CallbackHandle
}

// Build moves s.Container into a paged scroll layer and describes every
// animation of the carousel. Track errors are joined into the returned error.
func Build(s Screen, opts Options) (*Tutorial, error) {
	superview := s.Container.Parent
	if superview == nil {
		return nil, ErrDetached
	}

	t := &Tutorial{
		Controller: scrolltween.NewController(),
		Screen:     s,
		viewport:   s.Container.Bounds().Size(),
	}
	t.Controller.SetDebugMode(opts.Debug)

	t.layout(superview)
	err := t.describeBottomControls()
	t.observeEnd()
	err = errors.Join(err, t.describeBackground(opts), t.describeText(opts))
	if err != nil {
		t.Dispose()
		return nil, err
	}

	t.handles = append(t.handles,
		scrolltween.Drive(t.Controller, t.Scroll),
		t.Scroll.OnOffsetChange(func(scrolltween.Vec2) { t.syncPage() }),
	)
	return t, nil
}

// Loops returns how many times the carousel wrapped back to the first page.
func (t *Tutorial) Loops() int {
	return t.loops
}

// Viewport returns the visible size.
func (t *Tutorial) Viewport() scrolltween.Vec2 {
	return t.viewport
}

// Dispose detaches the tutorial from its scroll view and disposes the
// scrolled layer with everything in it.
func (t *Tutorial) Dispose() {
	for _, h := range t.handles {
		h.Remove()
	}
	t.handles = nil
	if t.Content != nil {
		t.Content.Dispose()
	}
}

// layout creates the scroll layer, moves the first page into it, appends a
// copy of the first page at the end and lifts the buttons and page control
// out of the container so they can move independently.
func (t *Tutorial) layout(superview *scrolltween.View) {
	s := t.Screen
	w, h := t.viewport.X, t.viewport.Y
	snapshot := s.Container.Clone()

	t.Scroll = scrolltween.NewScrollView(t.viewport, scrolltween.Vec2{X: w * contentPages, Y: h})
	t.Scroll.SetPagingEnabled(true)

	t.Content = scrolltween.NewView("scroll-content", scrolltween.Rect{Width: w * contentPages, Height: h})
	t.Content.Fill = scrolltween.Color{}
	superview.AddChild(t.Content)
	t.handles = append(t.handles, t.Scroll.OnOffsetChange(func(off scrolltween.Vec2) {
		f := t.Content.Frame()
		f.X, f.Y = -off.X, -off.Y
		t.Content.SetFrame(f)
	}))

	s.PageControl.SetCurrentPage(0)
	t.Content.AddChild(s.Container)

	xOffset := t.Scroll.ContentSize().X - w
	snapshot.SetFrame(s.Container.Frame().Offset(xOffset, 0))
	t.Content.AddChild(snapshot)
	t.Snapshot = snapshot

	buttonsFrame := s.Buttons.ConvertRect(s.Buttons.Bounds(), t.Content)
	pageControlFrame := s.PageControl.ConvertRect(s.PageControl.Bounds(), t.Content)
	t.Content.AddChild(s.Buttons)
	t.Content.AddChild(s.PageControl.View)
	s.Buttons.SetFrame(buttonsFrame)
	s.PageControl.SetFrame(pageControlFrame)
}

// describeBottomControls slides the buttons off the bottom edge on the way to
// page two and back in on the way to the last page. The page control drops by
// the buttons' height to take their place.
func (t *Tutorial) describeBottomControls() error {
	s := t.Screen
	w, h := t.viewport.X, t.viewport.Y
	buttons := s.Buttons.Frame()
	pc := s.PageControl.Frame()

	hidden := scrolltween.Rect{X: buttons.X, Y: h, Width: buttons.Width, Height: buttons.Height}
	err := scrolltween.TweenFrom(t.Controller, buttons, -w).
		To(buttons, 0).
		ThenTo(hidden, w).
		ThenHoldUntil(w * 4).
		ThenTo(buttons, w*5).
		WithAction(scrolltween.SlidingFrame(s.Buttons, t.Scroll))
	if err != nil {
		return err
	}

	lowered := pc.Offset(0, buttons.Height)
	return scrolltween.TweenFrom(t.Controller, pc, 0).
		To(lowered, w).
		ThenHoldUntil(w * 4).
		ThenTo(pc, w*5).
		WithAction(scrolltween.SlidingFrame(s.PageControl, t.Scroll))
}

// observeEnd jumps back to the first page when the copy of it at the end
// comes fully into view.
func (t *Tutorial) observeEnd() {
	end := t.Scroll.ContentSize().X - t.viewport.X
	t.Controller.ObserveForwardBoundary(end, func() {
		t.Scroll.CancelDrag()
		t.Scroll.SetOffset(scrolltween.Vec2{})
		t.Controller.ResetProgress()
		t.Screen.PageControl.SetCurrentPage(0)
		t.loops++
	})
}

func (t *Tutorial) describeBackground(opts Options) error {
	return errors.Join(
		t.describeGradient(opts),
		t.describeStars(opts),
		t.describeTower(opts),
	)
}

// describeGradient pins a full-screen gradient over pages two and three and
// fades it in and back out.
func (t *Tutorial) describeGradient(opts Options) error {
	w := t.viewport.X
	viewport := scrolltween.Rect{Width: w, Height: t.viewport.Y}

	v := scrolltween.NewView("gradient", viewport.Offset(w, 0))
	v.Gradient = &scrolltween.Gradient{Top: opts.GradientTop, Bottom: opts.GradientBottom}
	v.SetAlpha(0)
	t.Content.InsertChildBelow(v, t.Screen.PageControl.View)
	t.Gradient = v

	if err := scrolltween.TweenFrom(t.Controller, viewport, w).
		ThenHoldUntil(w * 3).
		WithAction(scrolltween.SlidingFrame(v, t.Scroll)); err != nil {
		return err
	}
	return scrolltween.TweenFrom(t.Controller, scrolltween.Scalar(v.Alpha()), w).
		To(1, w*2).
		ThenTo(0, w*3).
		WithAction(scrolltween.ApplyAlpha(v))
}

// describeStars does the same for a centered star field.
func (t *Tutorial) describeStars(opts Options) error {
	w := t.viewport.X
	size := opts.StarsSize
	frame := scrolltween.Rect{X: (w - size.X) / 2, Width: size.X, Height: size.Y}

	v := scrolltween.NewView("stars", frame.Offset(w, 0))
	v.Image = ImageStars
	v.Fill = opts.StarsColor
	v.SetAlpha(0)
	t.Content.InsertChildBelow(v, t.Screen.PageControl.View)
	t.Stars = v

	if err := scrolltween.TweenFrom(t.Controller, frame, w).
		ThenHoldUntil(w * 3).
		WithAction(scrolltween.SlidingFrame(v, t.Scroll)); err != nil {
		return err
	}
	return scrolltween.TweenFrom(t.Controller, scrolltween.Scalar(v.Alpha()), w).
		To(1, w*2).
		ThenTo(0, w*3).
		WithAction(scrolltween.ApplyAlpha(v))
}

// describeTower pins the tower over pages three to five, fading in on page
// four and out again on the way to the last page.
func (t *Tutorial) describeTower(opts Options) error {
	w := t.viewport.X
	viewport := scrolltween.Rect{Width: w, Height: t.viewport.Y}

	v := scrolltween.NewView("tower", viewport.Offset(w*2, 0))
	v.Image = ImageTower
	v.Fill = opts.TowerColor
	v.SetAlpha(0)
	t.Content.AddChild(v)
	t.Tower = v

	if err := scrolltween.TweenFrom(t.Controller, viewport, w*2).
		ThenHoldUntil(w * 4).
		WithAction(scrolltween.SlidingFrame(v, t.Scroll)); err != nil {
		return err
	}
	return scrolltween.TweenFrom(t.Controller, scrolltween.Scalar(v.Alpha()), w*2).
		To(1, w*3).
		ThenHoldUntil(w * 4).
		ThenTo(0, w*5).
		WithAction(scrolltween.ApplyAlpha(v))
}

// describeText places the bottom copy on pages two to five, where it scrolls
// with the content, and pins the top copy to the screen from page two on,
// cross-fading one caption into the next.
func (t *Tutorial) describeText(opts Options) error {
	w := t.viewport.X
	multiplier := w / baselineWidth
	topY := 50 * multiplier
	bottomY := 80 * multiplier

	for i := range t.BottomCopies {
		size := opts.BottomCopySizes[i]
		sw, sh := size.X*multiplier, size.Y*multiplier
		v := scrolltween.NewView(BottomCopyImages[i], scrolltween.Rect{
			X: float64(i+1)*w + (w-sw)/2, Y: bottomY, Width: sw, Height: sh,
		})
		v.Image = BottomCopyImages[i]
		v.Fill = opts.CopyColor
		t.Content.AddChild(v)
		t.BottomCopies[i] = v
	}

	var errs []error
	for i := range t.TopCopies {
		size := opts.TopCopySizes[i]
		sw, sh := size.X*multiplier, size.Y*multiplier
		frame := scrolltween.Rect{X: (w-sw)/2 + w, Y: topY, Width: sw, Height: sh}
		v := scrolltween.NewView(TopCopyImages[i], frame)
		v.Image = TopCopyImages[i]
		v.Fill = opts.CopyColor
		t.Content.AddChild(v)
		t.TopCopies[i] = v

		if i != 0 {
			v.SetAlpha(0)
			progress := float64(i) * w
			errs = append(errs, scrolltween.TweenFrom(t.Controller, scrolltween.Scalar(v.Alpha()), progress).
				To(1, progress+w).
				ThenTo(0, progress+w*2).
				WithAction(scrolltween.ApplyAlpha(v)))
		} else {
			errs = append(errs, scrolltween.TweenFrom(t.Controller, scrolltween.Scalar(v.Alpha()), w).
				To(0, w*2).
				WithAction(scrolltween.ApplyAlpha(v)))
		}

		errs = append(errs, scrolltween.TweenFrom(t.Controller, frame, 0).
			To(frame.Offset(-w, 0), w).
			ThenHoldUntil(w*4).
			WithAction(scrolltween.SlidingFrame(v, t.Scroll)))
	}

	// The first caption faded out on the way here; show it again for the
	// next loop.
	first := t.TopCopies[0]
	end := t.Scroll.ContentSize().X - w
	t.Controller.ObserveForwardBoundary(end, func() {
		first.SetAlpha(1)
	})
	return errors.Join(errs...)
}

// syncPage keeps the page control on the nearest page. The copy of the first
// page at the end counts as the last distinct page until the loop fires.
func (t *Tutorial) syncPage() {
	t.Screen.PageControl.SetCurrentPage(t.Scroll.Page())
}
