package scrolltween

// disposable is implemented by hosts that can go away underneath a track.
type disposable interface {
	IsDisposed() bool
}

func hostGone(h any) bool {
	d, ok := h.(disposable)
	return ok && d.IsDisposed()
}

// ApplyAlpha returns an action that writes a Scalar track to h's opacity.
func ApplyAlpha(h AlphaHost) func(Scalar) {
	return func(v Scalar) {
		if hostGone(h) {
			return
		}
		h.SetAlpha(float64(v))
	}
}

// ApplyFrame returns an action that writes a Rect track to h's frame as is.
func ApplyFrame(h FrameHost) func(Rect) {
	return func(r Rect) {
		if hostGone(h) {
			return
		}
		h.SetFrame(r)
	}
}

// SlidingFrame returns an action for hosts laid out inside src's content.
// Keyframes describe the frame relative to the visible viewport; the action
// shifts them by src's current horizontal offset so the host appears pinned
// to the screen while the content scrolls underneath.
func SlidingFrame(h FrameHost, src ScrollSource) func(Rect) {
	return func(r Rect) {
		if hostGone(h) {
			return
		}
		h.SetFrame(r.Offset(src.Offset().X, 0))
	}
}

// ApplyFill returns an action that writes a Color track to v's fill color.
func ApplyFill(v *View) func(Color) {
	return func(c Color) {
		if v.IsDisposed() {
			return
		}
		v.Fill = c
	}
}
