package skyscroll

import "testing"

func TestInjectWheelOnePerFrame(t *testing.T) {
	s := NewScene()
	s.SetHeadless(true)

	var deltas []float64
	s.OnWheel(func(ctx WheelContext) { deltas = append(deltas, ctx.DeltaY) })

	s.InjectWheel(0, 1)
	s.InjectWheel(0, -2)
	if s.PendingInjections() != 2 {
		t.Fatalf("pending = %d, want 2", s.PendingInjections())
	}

	s.processInput()
	if len(deltas) != 1 || deltas[0] != 1 {
		t.Fatalf("after frame 1 deltas = %v, want [1]", deltas)
	}
	s.processInput()
	if len(deltas) != 2 || deltas[1] != -2 {
		t.Fatalf("after frame 2 deltas = %v, want [1 -2]", deltas)
	}
	s.processInput()
	if len(deltas) != 2 {
		t.Error("empty queue should dispatch nothing in headless mode")
	}
}

func TestInjectTouch(t *testing.T) {
	s := NewScene()
	var got TouchContext
	fired := 0
	s.OnTouchStart(func(ctx TouchContext) {
		got = ctx
		fired++
	})
	s.InjectTouch(12, 34)
	s.processInput()
	if fired != 1 || got.X != 12 || got.Y != 34 {
		t.Errorf("touch = %+v fired %d, want (12, 34) once", got, fired)
	}
}

func TestInjectPointerPath(t *testing.T) {
	s := NewScene()
	s.SetHeadless(true)
	var xs []float64
	s.OnPointerMove(func(ctx PointerContext) { xs = append(xs, ctx.X) })

	s.InjectPointerPath(0, 0, 100, 0, 4)
	for s.PendingInjections() > 0 {
		s.processInput()
	}
	want := []float64{25, 50, 75, 100}
	if len(xs) != len(want) {
		t.Fatalf("moves = %v, want %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, xs[i], want[i])
		}
	}
	if x, _, ok := s.PointerPosition(); !ok || x != 100 {
		t.Errorf("PointerPosition = %v ok=%v, want 100", x, ok)
	}
}

func TestPointerMoveSkipsSamePosition(t *testing.T) {
	s := NewScene()
	fired := 0
	s.OnPointerMove(func(PointerContext) { fired++ })
	s.InjectPointer(5, 5)
	s.InjectPointer(5, 5)
	s.processInput()
	s.processInput()
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := NewScene()
	a, b := 0, 0
	ha := s.OnWheel(func(WheelContext) { a++ })
	s.OnWheel(func(WheelContext) { b++ })

	s.InjectWheel(0, 1)
	s.processInput()
	ha.Remove()
	ha.Remove()
	s.InjectWheel(0, 1)
	s.processInput()

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want a=1 b=2", a, b)
	}
}
