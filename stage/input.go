package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scrolltween"
)

// pointerState tracks the single pointer that drives scrolling: the mouse, or
// the first touch while one is active.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
}

// processInput reads real mouse, touch and wheel input.
func (s *Stage) processInput() {
	if x, y, pressed, ok := s.readTouch(); ok {
		s.processPointer(x, y, pressed)
	} else {
		mx, my := ebiten.CursorPosition()
		s.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	}

	if xoff, yoff := ebiten.Wheel(); xoff != 0 || yoff != 0 {
		s.processWheel(xoff, yoff)
	}
}

// readTouch follows the first touch until it lifts. ok is false when no
// touch is active or was active last frame.
func (s *Stage) readTouch() (x, y float64, pressed, ok bool) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	if s.touchActive {
		for _, id := range s.touchIDs {
			if id == s.touchID {
				tx, ty := ebiten.TouchPosition(id)
				return float64(tx), float64(ty), true, true
			}
		}
		s.touchActive = false
		return s.pointer.lastX, s.pointer.lastY, false, true
	}
	if len(s.touchIDs) == 0 {
		return 0, 0, false, false
	}
	s.touchID = s.touchIDs[0]
	s.touchActive = true
	tx, ty := ebiten.TouchPosition(s.touchID)
	return float64(tx), float64(ty), true, true
}

// processPointer runs the press/drag/release state machine.
func (s *Stage) processPointer(x, y float64, pressed bool) {
	ps := &s.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.dragging {
			dx := x - ps.startX
			dy := y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
				ps.dragging = true
				if s.scroll != nil {
					s.scroll.BeginDrag()
					// Include the movement swallowed by the dead zone.
					s.scroll.DragBy(ps.lastX-ps.startX, 0)
				}
			}
		}
		if ps.dragging && s.scroll != nil {
			s.scroll.DragBy(x-ps.lastX, 0)
		}
		ps.lastX, ps.lastY = x, y

	case !pressed && ps.down:
		if ps.dragging {
			if s.scroll != nil {
				s.scroll.EndDrag()
			}
		} else if s.OnTap != nil {
			s.OnTap(s.HitTest(x, y), x, y)
		}
		ps.down = false
		ps.dragging = false
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// processWheel flips pages for vertical or horizontal wheel motion. Wheel
// down or right moves forward.
func (s *Stage) processWheel(xoff, yoff float64) {
	if s.scroll == nil {
		return
	}
	dx := xoff
	if dx == 0 {
		dx = -yoff
	}
	s.scroll.ScrollBy(dx, 0)
}

// HitTest returns the topmost visible, non-transparent view containing the
// screen point, or nil.
func (s *Stage) HitTest(x, y float64) *scrolltween.View {
	return hitTest(s.root, 0, 0, 1, x, y)
}

func hitTest(v *scrolltween.View, ox, oy, alpha, x, y float64) *scrolltween.View {
	if v == nil || !v.Visible {
		return nil
	}
	alpha *= v.Alpha()
	if alpha <= 0 {
		return nil
	}
	f := v.Frame()
	ox += f.X
	oy += f.Y
	children := v.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := hitTest(children[i], ox, oy, alpha, x, y); hit != nil {
			return hit
		}
	}
	if (scrolltween.Rect{X: ox, Y: oy, Width: f.Width, Height: f.Height}).Contains(x, y) {
		return v
	}
	return nil
}
