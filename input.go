package skyscroll

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventWheel        EventType = iota // fires when the wheel or trackpad scrolls
	EventTouchStart                    // fires when a new touch begins
	EventPointerMove                   // fires when the pointer position changes
)

// WheelContext carries wheel event data. DeltaY follows the page-scroll
// convention: positive means scrolling down (content moves up).
type WheelContext struct {
	DeltaX, DeltaY float64
}

// TouchContext carries touch-start data in screen coordinates.
type TouchContext struct {
	TouchID int
	X, Y    float64
}

// PointerContext carries pointer position data in screen coordinates.
type PointerContext struct {
	X, Y float64
}

// --- Handler registry ---

type wheelHandler struct {
	id uint32
	fn func(WheelContext)
}

type touchHandler struct {
	id uint32
	fn func(TouchContext)
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	wheel       []wheelHandler
	touchStart  []touchHandler
	pointerMove []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventWheel:
		h.reg.wheel = removeHandler(h.reg.wheel, func(x wheelHandler) bool { return x.id == h.id })
	case EventTouchStart:
		h.reg.touchStart = removeHandler(h.reg.touchStart, func(x touchHandler) bool { return x.id == h.id })
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, func(x pointerHandler) bool { return x.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// OnWheel registers a scene-level wheel callback.
func (s *Scene) OnWheel(fn func(WheelContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.wheel = append(s.handlers.wheel, wheelHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventWheel}
}

// OnTouchStart registers a scene-level touch-start callback.
func (s *Scene) OnTouchStart(fn func(TouchContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.touchStart = append(s.handlers.touchStart, touchHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTouchStart}
}

// OnPointerMove registers a scene-level pointer-move callback.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

func (s *Scene) fireWheel(ctx WheelContext) {
	for _, h := range s.handlers.wheel {
		h.fn(ctx)
	}
}

func (s *Scene) fireTouchStart(ctx TouchContext) {
	for _, h := range s.handlers.touchStart {
		h.fn(ctx)
	}
}

func (s *Scene) firePointerMove(x, y float64) {
	if s.pointerKnown && x == s.pointerX && y == s.pointerY {
		return
	}
	s.pointerKnown = true
	s.pointerX, s.pointerY = x, y
	ctx := PointerContext{X: x, Y: y}
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
}

// PointerPosition returns the last known pointer position in screen
// coordinates and whether any position has been observed yet.
func (s *Scene) PointerPosition() (x, y float64, ok bool) {
	return s.pointerX, s.pointerY, s.pointerKnown
}

// processInput is called from Scene.Update to dispatch input. Injected events
// take priority: while any are queued, real devices are not read.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.headless {
		return
	}

	mx, my := ebiten.CursorPosition()
	s.firePointerMove(float64(mx), float64(my))

	// Ebitengine reports positive yoff when scrolling up; flip it to the
	// page-scroll convention.
	if xoff, yoff := ebiten.Wheel(); xoff != 0 || yoff != 0 {
		s.fireWheel(WheelContext{DeltaX: -xoff, DeltaY: -yoff})
	}

	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	for _, tid := range s.touchBuf {
		tx, ty := ebiten.TouchPosition(tid)
		s.fireTouchStart(TouchContext{TouchID: int(tid), X: float64(tx), Y: float64(ty)})
	}
}
