package scrolltween

// Lerper is implemented by values a track can interpolate. Lerp returns the
// value at fraction t of the way from the receiver to to. Eased segments may
// pass t slightly outside [0, 1] and expect the result to extrapolate.
type Lerper[T any] interface {
	Lerp(to T, t float64) T
}

// Scalar is a single interpolable number, typically an opacity.
type Scalar float64

// Lerp interpolates linearly between s and to.
func (s Scalar) Lerp(to Scalar, t float64) Scalar {
	return s + (to-s)*Scalar(t)
}

// Vec2 is a 2D vector used for offsets, sizes and positions.
type Vec2 struct {
	X, Y float64
}

// Lerp interpolates both components independently.
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{
		X: lerp(v.X, to.X, t),
		Y: lerp(v.Y, to.Y, t),
	}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Lerp interpolates position and size independently.
func (r Rect) Lerp(to Rect, t float64) Rect {
	return Rect{
		X:      lerp(r.X, to.X, t),
		Y:      lerp(r.Y, to.Y, t),
		Width:  lerp(r.Width, to.Width, t),
		Height: lerp(r.Height, to.Height, t),
	}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec2 {
	return Vec2{r.X, r.Y}
}

// Size returns the width and height as a Vec2.
func (r Rect) Size() Vec2 {
	return Vec2{r.Width, r.Height}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Lerp interpolates each channel independently.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: lerp(c.R, to.R, t),
		G: lerp(c.G, to.G, t),
		B: lerp(c.B, to.B, t),
		A: lerp(c.A, to.A, t),
	}
}

// RGB8 builds an opaque color from 0-255 channel values.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
