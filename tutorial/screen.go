package tutorial

import "github.com/phanxgames/scrolltween"

// Screen is the set of views a tutorial is built around: a full-size
// container holding the first page, with the buttons and the page control
// inside it. Container must already be attached to a parent view.
type Screen struct {
	Root        *scrolltween.View
	Container   *scrolltween.View
	Buttons     *scrolltween.View
	PageControl *PageControl
}

// Colors used by NewScreen.
var (
	backgroundColor = scrolltween.RGB8(18, 22, 48)
	buttonColor     = scrolltween.RGB8(38, 198, 218)
	secondaryColor  = scrolltween.RGB8(60, 66, 102)
	logoColor       = scrolltween.RGB8(155, 39, 153)
)

// NewScreen lays out a default first page for a viewport of the given size:
// a logo block, a two-button row along the bottom edge and a page control
// just above it.
func NewScreen(size scrolltween.Vec2) Screen {
	w, h := size.X, size.Y
	root := scrolltween.NewView("root", scrolltween.Rect{Width: w, Height: h})
	root.Fill = scrolltween.Color{}

	container := scrolltween.NewView("container", scrolltween.Rect{Width: w, Height: h})
	container.Fill = backgroundColor
	root.AddChild(container)

	logoSize := w * 0.4
	logo := scrolltween.NewView("logo", scrolltween.Rect{
		X: (w - logoSize) / 2, Y: h * 0.25, Width: logoSize, Height: logoSize,
	})
	logo.Fill = logoColor
	container.AddChild(logo)

	const margin = 16.0
	buttonHeight := 48.0
	buttons := scrolltween.NewView("buttons", scrolltween.Rect{
		X: margin, Y: h - buttonHeight - margin, Width: w - 2*margin, Height: buttonHeight,
	})
	buttons.Fill = scrolltween.Color{}
	half := (buttons.Frame().Width - margin) / 2
	signUp := scrolltween.NewView("sign-up", scrolltween.Rect{Width: half, Height: buttonHeight})
	signUp.Fill = buttonColor
	logIn := scrolltween.NewView("log-in", scrolltween.Rect{X: half + margin, Width: half, Height: buttonHeight})
	logIn.Fill = secondaryColor
	buttons.AddChild(signUp)
	buttons.AddChild(logIn)
	container.AddChild(buttons)

	pc := NewPageControl(scrolltween.Rect{
		X: 0, Y: buttons.Frame().Y - 37, Width: w, Height: 37,
	}, dotPages)
	container.AddChild(pc.View)

	return Screen{Root: root, Container: container, Buttons: buttons, PageControl: pc}
}
