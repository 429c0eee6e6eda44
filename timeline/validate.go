package timeline

import (
	"fmt"
	"strings"
)

// Issue is a single validation problem. Field is a path like
// "tracks[2].steps[0].at".
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// ValidationError collects every issue found in a document.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid timeline: " + e.Issues[0].String()
	}
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.String()
	}
	return fmt.Sprintf("invalid timeline: %d issues: %s", len(e.Issues), strings.Join(parts, "; "))
}

// Validate checks required fields, property and value kinds, ease names and
// keyframe ordering. It returns a *ValidationError or nil.
func (d *Document) Validate() error {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if d.Name == "" {
		add("name", "is required")
	}
	if d.Viewport.Width <= 0 || d.Viewport.Height <= 0 {
		add("viewport", "width and height must be positive")
	}
	if len(d.Tracks) == 0 && len(d.Boundaries) == 0 {
		add("tracks", "timeline has no tracks or boundaries")
	}

	names := make(map[string]int, len(d.Tracks))
	for i, tr := range d.Tracks {
		path := fmt.Sprintf("tracks[%d]", i)
		if tr.Name == "" {
			add(path+".name", "is required")
		} else if prev, dup := names[tr.Name]; dup {
			add(path+".name", "duplicate track name %q (also tracks[%d])", tr.Name, prev)
		} else {
			names[tr.Name] = i
		}
		if tr.Target == "" {
			add(path+".target", "is required")
		}
		kind, ok := tr.Property.valueKind()
		if !ok {
			add(path+".property", "unknown property %q (want alpha, frame or sliding-frame)", tr.Property)
			continue
		}
		if tr.From.Value.Kind != kind {
			add(path+".from.value", "%s property needs a %s value", tr.Property, kind)
		}

		prev := tr.From.At.Resolve(d.Viewport)
		for j, st := range tr.Steps {
			sp := fmt.Sprintf("%s.steps[%d]", path, j)
			var at float64
			switch {
			case st.To != nil && st.Hold != nil:
				add(sp, "set either to or hold, not both")
				continue
			case st.Hold != nil:
				if st.At != nil || st.Ease != "" {
					add(sp, "hold takes no at or ease")
				}
				at = st.Hold.Resolve(d.Viewport)
			case st.To != nil:
				if st.At == nil {
					add(sp+".at", "is required with to")
					continue
				}
				if st.To.Kind != kind {
					add(sp+".to", "%s property needs a %s value", tr.Property, kind)
				}
				if _, ok := lookupEase(st.Ease); !ok {
					add(sp+".ease", "unknown ease %q", st.Ease)
				}
				at = st.At.Resolve(d.Viewport)
			default:
				add(sp, "needs to or hold")
				continue
			}
			if !(at > prev) {
				add(sp, "keyframe at %g must come after previous keyframe at %g", at, prev)
			}
			prev = at
		}
	}

	for i, b := range d.Boundaries {
		path := fmt.Sprintf("boundaries[%d]", i)
		if b.Name == "" {
			add(path+".name", "is required")
		}
		if dir := b.direction(); dir != DirectionForward && dir != DirectionBackward {
			add(path+".direction", "unknown direction %q (want forward or backward)", b.Direction)
		}
		if b.Action == "" {
			add(path+".action", "is required")
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
