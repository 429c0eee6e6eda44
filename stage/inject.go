package stage

// syntheticEvent is a queued pointer or wheel event in screen coordinates.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	wheel   bool
	wheelX  float64
	wheelY  float64
}

// InjectPress queues a pointer press. Each queued event is consumed by one
// Update, replacing real input for that frame.
func (s *Stage) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held.
func (s *Stage) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release.
func (s *Stage) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectTap queues a press and release at the same point. Consumes two frames.
func (s *Stage) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 evenly spaced moves
// and a release at (toX, toY). Minimum frames is 2.
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event.
func (s *Stage) InjectWheel(xoff, yoff float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{wheel: true, wheelX: xoff, wheelY: yoff})
}

// PendingInput returns the number of queued synthetic events.
func (s *Stage) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one queued event and feeds it through the same
// paths as real input. It reports whether an event was consumed.
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.wheel {
		s.processWheel(evt.wheelX, evt.wheelY)
		return true
	}
	s.processPointer(evt.x, evt.y, evt.pressed)
	return true
}
