package scrolltween

// FrameHost is anything with a settable frame rectangle.
type FrameHost interface {
	Frame() Rect
	SetFrame(Rect)
}

// AlphaHost is anything with a settable opacity.
type AlphaHost interface {
	Alpha() float64
	SetAlpha(float64)
}

// PropertyHost is the host surface actions write to.
type PropertyHost interface {
	FrameHost
	AlphaHost
}

// Gradient is a vertical two-stop gradient, Top at the view's top edge.
type Gradient struct {
	Top, Bottom Color
}

// viewIDCounter is a plain counter; views are single-threaded.
var viewIDCounter uint32

func nextViewID() uint32 {
	viewIDCounter++
	return viewIDCounter
}

// View is a rectangle in a parent/child tree. Its frame is expressed in the
// parent's coordinate space. View holds no rendering state of its own; a
// renderer reads Frame, Alpha, Visible, Fill and UserData.
type View struct {
	ID   uint32
	Name string

	Parent   *View
	children []*View

	frame Rect
	alpha float64

	Visible bool
	// Fill is the solid color a renderer uses when nothing else is attached.
	Fill Color
	// Gradient, when set, replaces Fill with a vertical gradient.
	Gradient *Gradient
	// Image names an image asset for renderers that resolve them.
	Image string
	// UserData is free for renderers and applications.
	UserData any

	disposed bool
}

// NewView creates a visible, opaque view with the given frame.
func NewView(name string, frame Rect) *View {
	return &View{
		ID:      nextViewID(),
		Name:    name,
		frame:   frame,
		alpha:   1,
		Visible: true,
		Fill:    ColorWhite,
	}
}

// Frame returns the view's rectangle in its parent's space.
func (v *View) Frame() Rect {
	return v.frame
}

// SetFrame sets the view's rectangle in its parent's space.
func (v *View) SetFrame(r Rect) {
	v.frame = r
}

// Alpha returns the view's own opacity.
func (v *View) Alpha() float64 {
	return v.alpha
}

// SetAlpha sets the view's own opacity.
func (v *View) SetAlpha(a float64) {
	v.alpha = a
}

// Bounds returns the view's rectangle in its own space: origin zero, frame size.
func (v *View) Bounds() Rect {
	return Rect{Width: v.frame.Width, Height: v.frame.Height}
}

// WorldAlpha returns the product of this view's alpha and all ancestors'.
func (v *View) WorldAlpha() float64 {
	a := 1.0
	for p := v; p != nil; p = p.Parent {
		a *= p.alpha
	}
	return a
}

// worldOrigin returns the view's top-left corner in root space.
func (v *View) worldOrigin() Vec2 {
	var o Vec2
	for p := v; p != nil; p = p.Parent {
		o.X += p.frame.X
		o.Y += p.frame.Y
	}
	return o
}

// ConvertRect converts r from this view's coordinate space into to's. A nil
// to means the root space of this view's tree.
func (v *View) ConvertRect(r Rect, to *View) Rect {
	src := v.worldOrigin()
	var dst Vec2
	if to != nil {
		dst = to.worldOrigin()
	}
	return r.Offset(src.X-dst.X, src.Y-dst.Y)
}

// --- Tree manipulation ---

// AddChild appends child to this view's children, on top of its siblings.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this view (cycle).
func (v *View) AddChild(child *View) {
	v.checkChild(child)
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = v
	v.children = append(v.children, child)
}

// InsertChildBelow inserts child directly below sibling. If sibling is not a
// child of v, child is appended on top.
func (v *View) InsertChildBelow(child, sibling *View) {
	v.checkChild(child)
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	index := v.indexOf(sibling)
	if index < 0 {
		child.Parent = v
		v.children = append(v.children, child)
		return
	}
	child.Parent = v
	v.children = append(v.children, nil)
	copy(v.children[index+1:], v.children[index:])
	v.children[index] = child
}

// RemoveChild detaches child from this view.
// Panics if child.Parent != v.
func (v *View) RemoveChild(child *View) {
	if child.Parent != v {
		panic("scrolltween: child's parent is not this view")
	}
	v.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this view from its parent.
// No-op if this view has no parent.
func (v *View) RemoveFromParent() {
	if v.Parent == nil {
		return
	}
	v.Parent.RemoveChild(v)
}

// Children returns the child list, bottom to top. The returned slice MUST NOT
// be mutated by the caller.
func (v *View) Children() []*View {
	return v.children
}

// NumChildren returns the number of children.
func (v *View) NumChildren() int {
	return len(v.children)
}

// FindByName returns the first view named name in this subtree, depth first,
// including v itself.
func (v *View) FindByName(name string) *View {
	if v.Name == name {
		return v
	}
	for _, c := range v.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for v and every descendant, parents before children, bottom
// to top. Returning false from fn skips that view's subtree.
func (v *View) Walk(fn func(*View) bool) {
	if !fn(v) {
		return
	}
	for _, c := range v.children {
		c.Walk(fn)
	}
}

// Clone returns a detached deep copy of this view and its subtree. Clones get
// fresh IDs; UserData is shared.
func (v *View) Clone() *View {
	c := &View{
		ID:       nextViewID(),
		Name:     v.Name,
		frame:    v.frame,
		alpha:    v.alpha,
		Visible:  v.Visible,
		Fill:     v.Fill,
		Gradient: v.Gradient,
		Image:    v.Image,
		UserData: v.UserData,
	}
	for _, child := range v.children {
		cc := child.Clone()
		cc.Parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// --- Disposal ---

// Dispose removes this view from its parent, marks it as disposed, and
// recursively disposes all descendants. Actions skip disposed views.
func (v *View) Dispose() {
	if v.disposed {
		return
	}
	v.RemoveFromParent()
	v.dispose()
}

func (v *View) dispose() {
	v.disposed = true
	v.ID = 0
	for _, child := range v.children {
		child.Parent = nil
		child.dispose()
	}
	v.children = nil
	v.Parent = nil
	v.UserData = nil
}

// IsDisposed returns true if this view has been disposed.
func (v *View) IsDisposed() bool {
	return v.disposed
}

// --- Helpers ---

func (v *View) checkChild(child *View) {
	if child == nil {
		panic("scrolltween: cannot add nil child")
	}
	if isAncestor(child, v) {
		panic("scrolltween: adding child would create a cycle")
	}
}

func (v *View) indexOf(child *View) int {
	for i, c := range v.children {
		if c == child {
			return i
		}
	}
	return -1
}

// isAncestor reports whether candidate is an ancestor of view (or view itself).
func isAncestor(candidate, view *View) bool {
	for p := view; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from v.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (v *View) removeChildByPtr(child *View) {
	if i := v.indexOf(child); i >= 0 {
		copy(v.children[i:], v.children[i+1:])
		v.children[len(v.children)-1] = nil
		v.children = v.children[:len(v.children)-1]
	}
}
