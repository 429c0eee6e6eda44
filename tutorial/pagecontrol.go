package tutorial

import "github.com/phanxgames/scrolltween"

const (
	dotSize  = 7.0
	dotPitch = 16.0
)

// PageControl is a row of dots marking the current page. It embeds its
// container view, so it can be placed and animated like any other view.
type PageControl struct {
	*scrolltween.View

	// DotColor and CurrentDotColor are applied by SetCurrentPage.
	DotColor        scrolltween.Color
	CurrentDotColor scrolltween.Color

	dots    []*scrolltween.View
	current int
}

// NewPageControl creates a page control with pages dots centered in frame.
// The first page is current.
func NewPageControl(frame scrolltween.Rect, pages int) *PageControl {
	if pages < 0 {
		pages = 0
	}
	pc := &PageControl{
		View:            scrolltween.NewView("page-control", frame),
		DotColor:        scrolltween.Color{R: 1, G: 1, B: 1, A: 0.35},
		CurrentDotColor: scrolltween.ColorWhite,
	}
	pc.Fill = scrolltween.Color{}

	rowWidth := float64(pages-1)*dotPitch + dotSize
	x := (frame.Width - rowWidth) / 2
	y := (frame.Height - dotSize) / 2
	for i := 0; i < pages; i++ {
		dot := scrolltween.NewView("dot", scrolltween.Rect{
			X: x + float64(i)*dotPitch, Y: y, Width: dotSize, Height: dotSize,
		})
		pc.dots = append(pc.dots, dot)
		pc.AddChild(dot)
	}
	pc.recolor()
	return pc
}

// NumberOfPages returns the number of dots.
func (pc *PageControl) NumberOfPages() int {
	return len(pc.dots)
}

// CurrentPage returns the highlighted page.
func (pc *PageControl) CurrentPage() int {
	return pc.current
}

// SetCurrentPage highlights page i, clamped to the valid range.
func (pc *PageControl) SetCurrentPage(i int) {
	if i >= len(pc.dots) {
		i = len(pc.dots) - 1
	}
	if i < 0 {
		i = 0
	}
	pc.current = i
	pc.recolor()
}

// Dots returns the dot views, left to right.
func (pc *PageControl) Dots() []*scrolltween.View {
	return pc.dots
}

func (pc *PageControl) recolor() {
	for i, d := range pc.dots {
		if i == pc.current {
			d.Fill = pc.CurrentDotColor
		} else {
			d.Fill = pc.DotColor
		}
	}
}
