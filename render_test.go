package skyscroll

import "testing"

func tagged(name string, r float64) *Node {
	n := NewSprite(name, nil)
	n.Color = Color{R: r, G: 1, B: 1, A: 1}
	return n
}

func collect(s *Scene) []float32 {
	s.commands = s.commands[:0]
	updateWorldTransform(s.root, identityTransform, 1, false)
	order := 0
	s.traverse(s.root, &order)
	s.sortCommands()
	out := make([]float32, len(s.commands))
	for i, c := range s.commands {
		out[i] = c.Color.R
	}
	return out
}

func equalOrder(got []float32, want ...float32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestTraverseTreeOrder(t *testing.T) {
	s := NewScene()
	a := tagged("a", 0.1)
	b := tagged("b", 0.2)
	c := tagged("c", 0.3)
	s.Root().AddChild(a)
	a.AddChild(b)
	s.Root().AddChild(c)

	if got := collect(s); !equalOrder(got, 0.1, 0.2, 0.3) {
		t.Errorf("order = %v, want [0.1 0.2 0.3]", got)
	}
}

func TestRenderLayerBeforeTreeOrder(t *testing.T) {
	s := NewScene()
	top := tagged("top", 0.1)
	top.RenderLayer = 2
	mid := tagged("mid", 0.2)
	mid.RenderLayer = 1
	bottom := tagged("bottom", 0.3)
	s.Root().AddChild(top)
	s.Root().AddChild(mid)
	s.Root().AddChild(bottom)

	if got := collect(s); !equalOrder(got, 0.3, 0.2, 0.1) {
		t.Errorf("order = %v, want [0.3 0.2 0.1]", got)
	}
}

func TestZIndexReordersSiblings(t *testing.T) {
	s := NewScene()
	a := tagged("a", 0.1)
	b := tagged("b", 0.2)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	a.SetZIndex(5)

	if got := collect(s); !equalOrder(got, 0.2, 0.1) {
		t.Errorf("order = %v, want [0.2 0.1]", got)
	}
}

func TestTraverseSkipsHiddenAndTransparent(t *testing.T) {
	s := NewScene()
	hidden := tagged("hidden", 0.1)
	hidden.Visible = false
	hidden.AddChild(tagged("under-hidden", 0.2))
	clear := tagged("clear", 0.3)
	clear.SetAlpha(0)
	shown := tagged("shown", 0.4)
	s.Root().AddChild(hidden)
	s.Root().AddChild(clear)
	s.Root().AddChild(shown)

	if got := collect(s); !equalOrder(got, 0.4) {
		t.Errorf("order = %v, want [0.4]", got)
	}
}

func TestTraverseEmitsCrossfade(t *testing.T) {
	s := NewScene()
	bg := NewCrossfade("bg", nil)
	bg.SetAlpha(0.5)
	s.Root().AddChild(bg)
	collect(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if cmd.Type != CommandCrossfade || cmd.crossfade != bg.Crossfade {
		t.Error("expected a crossfade command for the plane")
	}
	if cmd.Color.A != 0.5 {
		t.Errorf("alpha = %v, want 0.5", cmd.Color.A)
	}
}

func TestNilSpriteUsesWhitePixel(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewSprite("box", nil))
	collect(s)
	if len(s.commands) != 1 || s.commands[0].image != WhitePixel {
		t.Error("nil sprite image should draw WhitePixel")
	}
}

func TestCommandGeoM(t *testing.T) {
	cmd := RenderCommand{Transform: [6]float32{2, 0, 0, 3, 10, 20}}
	m := commandGeoM(&cmd)
	x, y := m.Apply(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("Apply(1,1) = (%v, %v), want (12, 23)", x, y)
	}
}
