// Package stage hosts a scrolltween view tree in an ebiten game loop. It turns
// mouse, touch and wheel input into ScrollView drags and page flips, advances
// page snapping every tick, and draws each view as a filled rectangle, a
// vertical gradient or a named image.
package stage

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scrolltween"
)

const defaultDragDeadZone = 4.0 // pixels

// Stage implements ebiten.Game for a view tree rooted at Root.
type Stage struct {
	root   *scrolltween.View
	scroll *scrolltween.ScrollView
	width  int
	height int

	// ClearColor fills the screen before the tree is drawn. The zero value
	// leaves the screen as ebiten cleared it.
	ClearColor scrolltween.Color
	// Images resolves View.Image names. Views whose image is missing fall
	// back to their fill.
	Images map[string]*ebiten.Image
	// OnTap runs when the pointer is pressed and released without dragging.
	// hit is the topmost visible view under the pointer, or nil.
	OnTap func(hit *scrolltween.View, x, y float64)
	// ScreenshotDir receives Screenshot PNGs. Defaults to "screenshots".
	ScreenshotDir string

	updateFunc func() error

	pointer      pointerState
	touchID      ebiten.TouchID
	touchActive  bool
	touchIDs     []ebiten.TouchID
	dragDeadZone float64
	injectQueue  []syntheticEvent

	runner          *ScriptRunner
	exitAfterScript bool
	screenshotQueue []shot
	shotSeq         int

	commands []drawCommand
	verts    []ebiten.Vertex
	inds     []uint32

	fps   fpsOverlay
	debug bool
}

// New creates a stage drawing root into a width x height logical screen.
func New(root *scrolltween.View, width, height int) *Stage {
	return &Stage{
		root:         root,
		width:        width,
		height:       height,
		Images:       map[string]*ebiten.Image{},
		dragDeadZone: defaultDragDeadZone,
		commands:     make([]drawCommand, 0, 64),
	}
}

// Root returns the view tree the stage draws.
func (s *Stage) Root() *scrolltween.View {
	return s.root
}

// SetScroll routes pointer and wheel input to sv and advances its snapping
// every tick. A nil sv disables scrolling input.
func (s *Stage) SetScroll(sv *scrolltween.ScrollView) {
	s.scroll = sv
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDragDeadZone sets how far, in pixels, the pointer must move while held
// before the press becomes a drag.
func (s *Stage) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// SetDebugMode enables per-frame draw statistics on stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetShowFPS toggles the FPS/TPS overlay.
func (s *Stage) SetShowFPS(show bool) {
	s.fps.enabled = show
}

// Update processes input, advances page snapping and runs the update func.
func (s *Stage) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if s.runner != nil {
		s.runner.step(s)
		if s.exitAfterScript && s.runner.Done() {
			return ebiten.Termination
		}
	}
	if !s.processInjectedInput() {
		s.processInput()
	}
	return s.advance(dt)
}

// advance runs the time-based part of Update.
func (s *Stage) advance(dt float32) error {
	if s.scroll != nil {
		s.scroll.Update(dt)
	}
	s.fps.update(float64(dt))
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw renders the view tree.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(toRGBA(s.ClearColor))
	}
	culled := s.collect()
	s.submit(screen)
	if s.debug {
		_, _ = fmt.Fprintf(os.Stderr, "[stage] draw: %d commands, %d culled\n", len(s.commands), culled)
	}
	s.fps.draw(screen)
	s.flushScreenshots(screen)
}

// Layout reports the fixed logical screen size.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.width, s.height
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	Debug   bool

	// Script, if set, is a gesture script file played on start. Run exits
	// once it finishes and reports failed expectations as an error.
	Script        string
	ScreenshotDir string
}

// Run opens a window and runs the stage until the window closes or Update
// returns an error.
func Run(s *Stage, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = s.width, s.height
	}
	ebiten.SetWindowSize(w, h)
	s.SetShowFPS(cfg.ShowFPS)
	s.SetDebugMode(cfg.Debug)
	if cfg.ScreenshotDir != "" {
		s.ScreenshotDir = cfg.ScreenshotDir
	}
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read gesture script: %w", err)
		}
		r, err := LoadScript(data)
		if err != nil {
			return err
		}
		s.SetScript(r)
		s.exitAfterScript = true
	}
	if err := ebiten.RunGame(s); err != nil {
		return err
	}
	if s.runner != nil {
		return s.runner.Err()
	}
	return nil
}
