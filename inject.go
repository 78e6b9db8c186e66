package skyscroll

// syntheticEvent is a single injected input event, in screen coordinates.
type syntheticEvent struct {
	kind   EventType
	x, y   float64
	dx, dy float64
}

// InjectWheel queues a wheel event. dy > 0 scrolls down. The event is
// consumed on a later frame's input pass, one event per frame.
func (s *Scene) InjectWheel(dx, dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: EventWheel, dx: dx, dy: dy})
}

// InjectTouch queues a touch-start event at the given screen coordinates.
func (s *Scene) InjectTouch(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: EventTouchStart, x: x, y: y})
}

// InjectPointer queues a pointer move to the given screen coordinates.
func (s *Scene) InjectPointer(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: EventPointerMove, x: x, y: y})
}

// InjectPointerPath queues pointer moves linearly interpolated from
// (fromX, fromY) to (toX, toY) over the given number of frames (minimum 1).
func (s *Scene) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		s.InjectPointer(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and dispatches it.
// Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case EventWheel:
		s.fireWheel(WheelContext{DeltaX: evt.dx, DeltaY: evt.dy})
	case EventTouchStart:
		s.fireTouchStart(TouchContext{X: evt.x, Y: evt.y})
	case EventPointerMove:
		s.firePointerMove(evt.x, evt.y)
	}
	return true
}
