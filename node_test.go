package skyscroll

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewSpriteDefaults(t *testing.T) {
	n := NewSprite("spr", nil)
	assertNodeDefaults(t, n, "spr", NodeTypeSprite)
	if w, h := n.Size(); w != 1 || h != 1 {
		t.Errorf("Size = (%v, %v), want (1, 1) for a nil image", w, h)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hello", nil)
	assertNodeDefaults(t, n, "text", NodeTypeText)
	if n.TextBlock == nil || n.TextBlock.Content != "hello" {
		t.Fatal("TextBlock not initialised")
	}
}

func TestNewCrossfadeDefaults(t *testing.T) {
	n := NewCrossfade("bg", nil)
	assertNodeDefaults(t, n, "bg", NodeTypeCrossfade)
	if n.Crossfade == nil {
		t.Fatal("Crossfade should be set")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if n.Color != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both = %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildReparents(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	c := NewContainer("c")

	p1.AddChild(c)
	p2.AddChild(c)

	if c.Parent != p2 {
		t.Error("child should belong to p2")
	}
	if p1.NumChildren() != 0 {
		t.Errorf("p1 children = %d, want 0", p1.NumChildren())
	}
	if p2.NumChildren() != 1 {
		t.Errorf("p2 children = %d, want 1", p2.NumChildren())
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b.AddChild(a)
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.RemoveChild(b)
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	c1, c2 := NewContainer("c1"), NewContainer("c2")
	p.AddChild(c1)
	p.AddChild(c2)
	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Errorf("children = %d, want 0", p.NumChildren())
	}
	if c1.Parent != nil || c2.Parent != nil {
		t.Error("children should be orphaned")
	}
	if c1.IsDisposed() {
		t.Error("RemoveChildren must not dispose")
	}
}

func TestFindChildDepthFirst(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	mount := NewContainer("landing")
	b := NewContainer("landing")
	root.AddChild(a)
	a.AddChild(mount)
	root.AddChild(b)

	if got := root.FindChild("landing"); got != mount {
		t.Error("FindChild should return the first match depth-first")
	}
	if got := root.FindChild("missing"); got != nil {
		t.Error("FindChild should return nil when absent")
	}
}

func TestDisposeSubtree(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	g := NewCrossfade("g", nil)
	p.AddChild(c)
	c.AddChild(g)

	c.Dispose()
	c.Dispose()

	if p.NumChildren() != 0 {
		t.Error("disposed node should leave its parent")
	}
	if !c.IsDisposed() || !g.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if g.Crossfade != nil {
		t.Error("crossfade should be released")
	}
	if c.ID != 0 {
		t.Errorf("ID = %d, want 0 after dispose", c.ID)
	}
}

func TestDebugDisposedPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := NewContainer("n")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic on disposed node in debug mode")
		}
	}()
	s.Root().AddChild(n)
}

func TestUpdateNodesCallsOnUpdate(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	root.AddChild(child)

	var order []string
	root.OnUpdate = func(float64) { order = append(order, "root") }
	child.OnUpdate = func(dt float64) {
		if dt != 0.5 {
			t.Errorf("dt = %v, want 0.5", dt)
		}
		order = append(order, "child")
	}
	updateNodes(root, 0.5)
	if len(order) != 2 || order[0] != "root" || order[1] != "child" {
		t.Errorf("order = %v, want [root child]", order)
	}
}
