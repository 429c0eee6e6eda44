package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scrolltween"
)

// commandKind selects how a drawCommand is submitted.
type commandKind uint8

const (
	commandFill  commandKind = iota // solid color or gradient quad
	commandImage                    // named image scaled to the rect
)

// drawCommand is one view resolved to screen space.
type drawCommand struct {
	kind   commandKind
	view   *scrolltween.View
	rect   scrolltween.Rect
	top    scrolltween.Color // premultiplied by alpha
	bottom scrolltween.Color // premultiplied by alpha
	alpha  float64
	image  *ebiten.Image
}

// collect walks the tree and fills s.commands in paint order. Views outside
// the screen are counted and skipped; their children are still visited.
func (s *Stage) collect() (culled int) {
	s.commands = s.commands[:0]
	screen := scrolltween.Rect{Width: float64(s.width), Height: float64(s.height)}
	s.traverse(s.root, 0, 0, 1, screen, &culled)
	return culled
}

func (s *Stage) traverse(v *scrolltween.View, ox, oy, alpha float64, screen scrolltween.Rect, culled *int) {
	if v == nil || !v.Visible {
		return
	}
	alpha *= v.Alpha()
	if alpha <= 0 {
		return
	}
	f := v.Frame()
	rect := scrolltween.Rect{X: ox + f.X, Y: oy + f.Y, Width: f.Width, Height: f.Height}

	if cmd, ok := s.command(v, rect, alpha); ok {
		if rect.Intersects(screen) {
			s.commands = append(s.commands, cmd)
		} else {
			*culled++
		}
	}
	for _, c := range v.Children() {
		s.traverse(c, rect.X, rect.Y, alpha, screen, culled)
	}
}

// command resolves a view's appearance. ok is false for views that draw
// nothing.
func (s *Stage) command(v *scrolltween.View, rect scrolltween.Rect, alpha float64) (drawCommand, bool) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return drawCommand{}, false
	}
	if v.Image != "" {
		if img := s.Images[v.Image]; img != nil {
			return drawCommand{kind: commandImage, view: v, rect: rect, alpha: alpha, image: img}, true
		}
	}
	top, bottom := v.Fill, v.Fill
	if v.Gradient != nil {
		top, bottom = v.Gradient.Top, v.Gradient.Bottom
	}
	if top.A <= 0 && bottom.A <= 0 {
		return drawCommand{}, false
	}
	return drawCommand{
		kind:   commandFill,
		view:   v,
		rect:   rect,
		top:    premultiply(top, alpha),
		bottom: premultiply(bottom, alpha),
		alpha:  alpha,
	}, true
}

// submit draws s.commands to target.
func (s *Stage) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.kind {
		case commandFill:
			s.submitFill(target, cmd)
		case commandImage:
			b := cmd.image.Bounds()
			op.GeoM.Reset()
			op.GeoM.Scale(cmd.rect.Width/float64(b.Dx()), cmd.rect.Height/float64(b.Dy()))
			op.GeoM.Translate(cmd.rect.X, cmd.rect.Y)
			op.ColorScale.Reset()
			op.ColorScale.ScaleAlpha(float32(cmd.alpha))
			op.Filter = ebiten.FilterLinear
			target.DrawImage(cmd.image, &op)
		}
	}
}

// submitFill draws a quad from the white pixel with per-vertex colors, so
// solid fills and gradients share one path.
func (s *Stage) submitFill(target *ebiten.Image, cmd *drawCommand) {
	r := cmd.rect
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.MaxX()), float32(r.MaxY())

	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	s.verts = append(s.verts,
		vertex(x0, y0, 0, 0, cmd.top),
		vertex(x1, y0, 1, 0, cmd.top),
		vertex(x0, y1, 0, 1, cmd.bottom),
		vertex(x1, y1, 1, 1, cmd.bottom),
	)
	// Two triangles: TL-TR-BL, TR-BR-BL
	s.inds = append(s.inds, 0, 1, 2, 1, 3, 2)

	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(s.verts, s.inds, whitePixel(), &triOp)
}

func vertex(x, y, sx, sy float32, c scrolltween.Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   sx,
		SrcY:   sy,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: float32(c.A),
	}
}

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily created 1x1 white source image.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(toRGBA(scrolltween.ColorWhite))
	}
	return whitePixelImage
}

// premultiply scales c's color channels by its own alpha times alpha.
func premultiply(c scrolltween.Color, alpha float64) scrolltween.Color {
	a := clamp01(c.A * alpha)
	return scrolltween.Color{R: clamp01(c.R) * a, G: clamp01(c.G) * a, B: clamp01(c.B) * a, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// colorRGBA implements color.Color for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// toRGBA converts a straight-alpha Color to premultiplied 8-bit RGBA.
func toRGBA(c scrolltween.Color) colorRGBA {
	p := premultiply(c, 1)
	return colorRGBA{
		R: uint8(p.R * 255),
		G: uint8(p.G * 255),
		B: uint8(p.B * 255),
		A: uint8(p.A * 255),
	}
}
