package scrolltween

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollSource is a scrollable viewport whose offset drives progress.
type ScrollSource interface {
	Offset() Vec2
	SetOffset(Vec2)
	ContentSize() Vec2
	PagingEnabled() bool
	// OnOffsetChange registers fn to run after every offset change.
	OnOffsetChange(fn func(Vec2)) CallbackHandle
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters the callback. Safe to call on the zero value and more
// than once.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// Drive feeds src's horizontal offset into c as progress on every change.
func Drive(c *Controller, src ScrollSource) CallbackHandle {
	return src.OnOffsetChange(func(off Vec2) {
		c.UpdateProgress(off.X)
	})
}

const (
	defaultSnapDuration   = 0.3 // seconds
	defaultFlickThreshold = 8.0 // pixels per drag step
)

type offsetListener struct {
	id uint32
	fn func(Vec2)
}

// snapAnim holds an active page snap tween.
type snapAnim struct {
	tweenX *gween.Tween
	target float64
}

// ScrollView is a toolkit-free scroll model: a viewport sliding over a larger
// content area, with optional paging. It implements ScrollSource.
//
// Input adapters call BeginDrag, DragBy and EndDrag; the host loop calls
// Update every tick so page snapping can animate.
type ScrollView struct {
	viewport    Vec2
	contentSize Vec2
	offset      Vec2
	paging      bool

	// ScrollEnabled gates user input (drag and wheel). SetOffset always works.
	ScrollEnabled bool
	// SnapDuration is how long, in seconds, a page snap takes.
	SnapDuration float32
	// SnapEase shapes page snaps.
	SnapEase ease.TweenFunc
	// FlickThreshold is the last drag step, in pixels, above which releasing
	// a drag moves to the neighbouring page instead of the nearest one.
	FlickThreshold float64

	listeners []offsetListener
	nextID    uint32
	snap      *snapAnim

	dragging bool
	lastDX   float64
}

// NewScrollView creates a scroll view with the given viewport and content
// sizes, offset zero, paging disabled.
func NewScrollView(viewport, content Vec2) *ScrollView {
	return &ScrollView{
		viewport:       viewport,
		contentSize:    content,
		ScrollEnabled:  true,
		SnapDuration:   defaultSnapDuration,
		SnapEase:       ease.OutCubic,
		FlickThreshold: defaultFlickThreshold,
	}
}

// Offset returns the content offset at the viewport's top-left corner.
func (s *ScrollView) Offset() Vec2 {
	return s.offset
}

// SetOffset moves the viewport, clamped to the content. Any running snap is
// cancelled. Listeners run only if the offset actually changed.
func (s *ScrollView) SetOffset(off Vec2) {
	s.snap = nil
	s.setOffset(off)
}

// ContentSize returns the size of the scrollable content.
func (s *ScrollView) ContentSize() Vec2 {
	return s.contentSize
}

// SetContentSize changes the content size and re-clamps the offset.
func (s *ScrollView) SetContentSize(size Vec2) {
	s.contentSize = size
	s.setOffset(s.offset)
}

// ViewportSize returns the visible size.
func (s *ScrollView) ViewportSize() Vec2 {
	return s.viewport
}

// PagingEnabled reports whether drags settle on page boundaries.
func (s *ScrollView) PagingEnabled() bool {
	return s.paging
}

// SetPagingEnabled enables or disables paging.
func (s *ScrollView) SetPagingEnabled(enabled bool) {
	s.paging = enabled
}

// MaxOffset returns the largest reachable offset.
func (s *ScrollView) MaxOffset() Vec2 {
	return Vec2{
		X: math.Max(0, s.contentSize.X-s.viewport.X),
		Y: math.Max(0, s.contentSize.Y-s.viewport.Y),
	}
}

// OnOffsetChange registers fn to run after every offset change.
func (s *ScrollView) OnOffsetChange(fn func(Vec2)) CallbackHandle {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, offsetListener{id: id, fn: fn})
	return CallbackHandle{remove: func() { s.removeListener(id) }}
}

// PageCount returns the number of horizontal pages of content.
func (s *ScrollView) PageCount() int {
	if s.viewport.X <= 0 {
		return 0
	}
	return int(math.Ceil(s.contentSize.X / s.viewport.X))
}

// Page returns the index of the page nearest the current offset.
func (s *ScrollView) Page() int {
	if s.viewport.X <= 0 {
		return 0
	}
	return int(math.Round(s.offset.X / s.viewport.X))
}

// ScrollToPage moves to page i, clamped to the valid range. When animated the
// move is tweened over SnapDuration and advanced by Update.
func (s *ScrollView) ScrollToPage(i int, animated bool) {
	last := s.PageCount() - 1
	if i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	target := float64(i) * s.viewport.X
	if !animated || s.SnapDuration <= 0 {
		s.SetOffset(Vec2{X: target, Y: s.offset.Y})
		return
	}
	fn := s.SnapEase
	if fn == nil {
		fn = ease.Linear
	}
	s.snap = &snapAnim{
		tweenX: gween.New(float32(s.offset.X), float32(target), s.SnapDuration, fn),
		target: target,
	}
}

// Snapping reports whether a page snap is in progress.
func (s *ScrollView) Snapping() bool {
	return s.snap != nil
}

// Dragging reports whether a drag is in progress.
func (s *ScrollView) Dragging() bool {
	return s.dragging
}

// BeginDrag starts a user drag. It cancels any running snap.
func (s *ScrollView) BeginDrag() {
	if !s.ScrollEnabled {
		return
	}
	s.snap = nil
	s.dragging = true
	s.lastDX = 0
}

// DragBy moves the content with the pointer: a pointer moving left by dx
// pixels scrolls forward by dx.
func (s *ScrollView) DragBy(dx, dy float64) {
	if !s.dragging {
		return
	}
	s.lastDX = dx
	s.setOffset(Vec2{X: s.offset.X - dx, Y: s.offset.Y - dy})
}

// EndDrag finishes a drag. With paging enabled the view snaps to the nearest
// page, or to the neighbouring page in the flick direction when the last drag
// step exceeded FlickThreshold.
func (s *ScrollView) EndDrag() {
	if !s.dragging {
		return
	}
	s.dragging = false
	if !s.paging || s.viewport.X <= 0 {
		return
	}
	pos := s.offset.X / s.viewport.X
	target := int(math.Round(pos))
	switch {
	case s.lastDX <= -s.FlickThreshold:
		target = int(math.Ceil(pos))
	case s.lastDX >= s.FlickThreshold:
		target = int(math.Floor(pos))
	}
	s.ScrollToPage(target, true)
}

// CancelDrag ends a drag in place without snapping, e.g. before jumping the
// offset programmatically.
func (s *ScrollView) CancelDrag() {
	s.dragging = false
	s.lastDX = 0
}

// ScrollBy scrolls by a wheel delta. With paging enabled, any horizontal
// delta moves one page in its direction.
func (s *ScrollView) ScrollBy(dx, dy float64) {
	if !s.ScrollEnabled || s.dragging {
		return
	}
	if s.paging {
		switch {
		case dx > 0:
			s.ScrollToPage(s.Page()+1, true)
		case dx < 0:
			s.ScrollToPage(s.Page()-1, true)
		}
		return
	}
	s.SetOffset(Vec2{X: s.offset.X + dx, Y: s.offset.Y + dy})
}

// Update advances a running page snap by dt seconds.
func (s *ScrollView) Update(dt float32) {
	if s.snap == nil {
		return
	}
	snap := s.snap
	val, done := snap.tweenX.Update(dt)
	x := float64(val)
	if done {
		// Land exactly on the page; float32 tween values can be off by a hair.
		s.snap = nil
		x = snap.target
	}
	s.setOffset(Vec2{X: x, Y: s.offset.Y})
}

func (s *ScrollView) setOffset(off Vec2) {
	maxOff := s.MaxOffset()
	off.X = math.Max(0, math.Min(off.X, maxOff.X))
	off.Y = math.Max(0, math.Min(off.Y, maxOff.Y))
	if off == s.offset {
		return
	}
	s.offset = off
	s.notify()
}

func (s *ScrollView) notify() {
	// Index loop: listeners may add listeners or move the offset again.
	n := len(s.listeners)
	for i := 0; i < n && i < len(s.listeners); i++ {
		s.listeners[i].fn(s.offset)
	}
}

func (s *ScrollView) removeListener(id uint32) {
	for i, l := range s.listeners {
		if l.id == id {
			copy(s.listeners[i:], s.listeners[i+1:])
			s.listeners[len(s.listeners)-1] = offsetListener{}
			s.listeners = s.listeners[:len(s.listeners)-1]
			return
		}
	}
}
