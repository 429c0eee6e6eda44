package stage

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultScreenshotDir = "screenshots"

// shot is a queued capture. Scroll state is recorded when the shot is
// requested so the file name describes what the script asked to see.
type shot struct {
	seq    int
	label  string
	page   int // -1 without a scroll view
	offset float64
}

// fileName returns "003_page-2_p1_x414.png", or "003_page-2.png" when the
// stage has no scroll view.
func (sh shot) fileName() string {
	name := fmt.Sprintf("%03d_%s", sh.seq, slug(sh.label))
	if sh.page >= 0 {
		name += fmt.Sprintf("_p%d_x%.0f", sh.page, sh.offset)
	}
	return name + ".png"
}

// Screenshot queues a labeled capture of the next drawn frame. Files go to
// ScreenshotDir, numbered in request order and tagged with the scroll page
// and offset at the time of the request.
func (s *Stage) Screenshot(label string) {
	s.shotSeq++
	sh := shot{seq: s.shotSeq, label: label, page: -1}
	if s.scroll != nil {
		sh.page = s.scroll.Page()
		sh.offset = s.scroll.Offset().X
	}
	s.screenshotQueue = append(s.screenshotQueue, sh)
}

// flushScreenshots reads the frame once and writes every queued shot.
func (s *Stage) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	queue := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	dir := s.ScreenshotDir
	if dir == "" {
		dir = defaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[stage] screenshot: %v\n", err)
		return
	}

	b := screen.Bounds()
	img := frameImage(b.Dx(), b.Dy())
	screen.ReadPixels(img.Pix)
	for _, sh := range queue {
		path := filepath.Join(dir, sh.fileName())
		if err := savePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[stage] screenshot: %v\n", err)
			continue
		}
		if s.debug {
			_, _ = fmt.Fprintf(os.Stderr, "[stage] screenshot: wrote %s\n", path)
		}
	}
}

// frameImage allocates an RGBA image sized for ReadPixels. ebiten pixels are
// premultiplied like image.RGBA, so the PNG encoder converts them to straight
// alpha itself.
func frameImage(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// slug joins the label's letters, digits and dots with '-'. Empty labels
// become "shot".
func slug(label string) string {
	parts := strings.FieldsFunc(label, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.')
	})
	if len(parts) == 0 {
		return "shot"
	}
	return strings.Join(parts, "-")
}
