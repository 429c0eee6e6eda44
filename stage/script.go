package stage

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	DX     float64 `yaml:"dx,omitempty"`
	DY     float64 `yaml:"dy,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Page   int     `yaml:"page,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"tap": true, "drag": true, "wheel": true, "wait": true,
	"screenshot": true, "expect-page": true,
}

// ScriptRunner plays a gesture script against a stage, one step per frame
// once earlier injected input has drained. Attach with SetScript.
//
// Actions: tap (x, y), drag (fromX, fromY, toX, toY, frames), wheel (dx, dy),
// wait (frames), screenshot (label) and expect-page (page), which waits for
// the scroll view to settle and records a failure on mismatch.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadScript parses a YAML gesture script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i+1, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a runner. Its steps are played from Update before input
// is read.
func (s *Stage) SetScript(r *ScriptRunner) {
	s.runner = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Failures returns the expect-page mismatches recorded so far.
func (r *ScriptRunner) Failures() []string {
	return r.failures
}

// Err returns an error summarizing the failures, or nil.
func (r *ScriptRunner) Err() error {
	if len(r.failures) == 0 {
		return nil
	}
	return fmt.Errorf("gesture script: %d failed expectation(s): %v", len(r.failures), r.failures)
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(s *Stage) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	switch st.Action {
	case "expect-page":
		if s.scroll == nil {
			r.failures = append(r.failures, fmt.Sprintf("step %d: no scroll view", r.cursor+1))
			break
		}
		if s.scroll.Dragging() || s.scroll.Snapping() {
			return // retry once settled
		}
		if got := s.scroll.Page(); got != st.Page {
			r.failures = append(r.failures, fmt.Sprintf("step %d: page = %d, want %d", r.cursor+1, got, st.Page))
		}
	case "screenshot":
		s.Screenshot(st.Label)
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wheel":
		s.InjectWheel(st.DX, st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	r.cursor++

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
