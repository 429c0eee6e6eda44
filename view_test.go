package scrolltween

import "testing"

func TestNewViewDefaults(t *testing.T) {
	v := NewView("box", Rect{X: 1, Y: 2, Width: 3, Height: 4})
	if v.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if v.Alpha() != 1 || !v.Visible || v.Fill != ColorWhite {
		t.Errorf("defaults: alpha %v visible %v fill %+v", v.Alpha(), v.Visible, v.Fill)
	}
	if v.Bounds() != (Rect{Width: 3, Height: 4}) {
		t.Errorf("Bounds = %+v", v.Bounds())
	}
}

func TestViewAddChildReparents(t *testing.T) {
	a := NewView("a", Rect{})
	b := NewView("b", Rect{})
	child := NewView("child", Rect{})

	a.AddChild(child)
	b.AddChild(child)

	if child.Parent != b {
		t.Error("child should be reparented to b")
	}
	if a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Errorf("a has %d children, b has %d", a.NumChildren(), b.NumChildren())
	}
}

func TestViewAddChildPanics(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic adding nil child")
			}
		}()
		NewView("p", Rect{}).AddChild(nil)
	})
	t.Run("cycle", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for cycle")
			}
		}()
		parent := NewView("p", Rect{})
		child := NewView("c", Rect{})
		parent.AddChild(child)
		child.AddChild(parent)
	})
}

func TestViewInsertChildBelow(t *testing.T) {
	root := NewView("root", Rect{})
	a := NewView("a", Rect{})
	top := NewView("top", Rect{})
	root.AddChild(a)
	root.AddChild(top)

	mid := NewView("mid", Rect{})
	root.InsertChildBelow(mid, top)

	got := root.Children()
	if len(got) != 3 || got[0] != a || got[1] != mid || got[2] != top {
		t.Errorf("order = %v %v %v", got[0].Name, got[1].Name, got[2].Name)
	}

	// Unknown sibling appends on top.
	extra := NewView("extra", Rect{})
	root.InsertChildBelow(extra, NewView("stranger", Rect{}))
	if root.Children()[3] != extra {
		t.Error("extra should be appended on top")
	}
}

func TestViewRemoveChildWrongParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewView("a", Rect{}).RemoveChild(NewView("b", Rect{}))
}

func TestViewConvertRect(t *testing.T) {
	root := NewView("root", Rect{Width: 400, Height: 800})
	scroll := NewView("scroll", Rect{X: 0, Y: 20, Width: 400, Height: 780})
	container := NewView("container", Rect{X: 10, Y: 30, Width: 380, Height: 700})
	buttons := NewView("buttons", Rect{X: 5, Y: 600, Width: 370, Height: 60})
	root.AddChild(scroll)
	root.AddChild(container)
	container.AddChild(buttons)

	got := buttons.ConvertRect(buttons.Bounds(), scroll)
	want := Rect{X: 15, Y: 610, Width: 370, Height: 60}
	if got != want {
		t.Errorf("ConvertRect = %+v, want %+v", got, want)
	}

	world := buttons.ConvertRect(buttons.Bounds(), nil)
	if world.X != 15 || world.Y != 630 {
		t.Errorf("ConvertRect to root space = %+v", world)
	}
}

func TestViewWorldAlpha(t *testing.T) {
	parent := NewView("p", Rect{})
	child := NewView("c", Rect{})
	parent.AddChild(child)
	parent.SetAlpha(0.5)
	child.SetAlpha(0.5)

	if got := child.WorldAlpha(); got != 0.25 {
		t.Errorf("WorldAlpha = %v, want 0.25", got)
	}
}

func TestViewCloneIsDeepAndDetached(t *testing.T) {
	root := NewView("root", Rect{})
	orig := NewView("page", Rect{Width: 100, Height: 100})
	orig.AddChild(NewView("label", Rect{X: 5, Width: 10, Height: 10}))
	root.AddChild(orig)

	c := orig.Clone()
	if c.Parent != nil {
		t.Error("clone should be detached")
	}
	if c.ID == orig.ID {
		t.Error("clone should get a fresh ID")
	}
	if c.NumChildren() != 1 || c.Children()[0].Parent != c {
		t.Fatal("clone children not copied")
	}
	c.Children()[0].SetFrame(Rect{X: 99})
	if orig.Children()[0].Frame().X != 5 {
		t.Error("mutating clone child changed original")
	}
}

func TestViewFindByNameAndWalk(t *testing.T) {
	root := NewView("root", Rect{})
	a := NewView("a", Rect{})
	b := NewView("b", Rect{})
	root.AddChild(a)
	a.AddChild(b)

	if root.FindByName("b") != b {
		t.Error("FindByName(b) failed")
	}
	if root.FindByName("missing") != nil {
		t.Error("FindByName(missing) should be nil")
	}

	var names []string
	root.Walk(func(v *View) bool {
		names = append(names, v.Name)
		return v != a
	})
	if len(names) != 2 || names[0] != "root" || names[1] != "a" {
		t.Errorf("Walk visited %v, want [root a]", names)
	}
}

func TestViewDispose(t *testing.T) {
	root := NewView("root", Rect{})
	v := NewView("v", Rect{})
	child := NewView("child", Rect{})
	root.AddChild(v)
	v.AddChild(child)

	v.Dispose()
	if !v.IsDisposed() || !child.IsDisposed() {
		t.Error("view and descendants should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed view should be removed from parent")
	}
	v.Dispose() // no-op
}
