package stage

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay prints FPS and TPS in the top-left corner, refreshed about twice
// a second.
type fpsOverlay struct {
	enabled bool
	elapsed float64
	label   string
}

func (f *fpsOverlay) update(dt float64) {
	if !f.enabled {
		return
	}
	f.elapsed += dt
	if f.elapsed < 0.5 && f.label != "" {
		return
	}
	f.elapsed = 0
	f.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if !f.enabled || f.label == "" {
		return
	}
	ebitenutil.DebugPrint(screen, f.label)
}
