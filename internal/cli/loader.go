package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/phanxgames/scrolltween"
	"github.com/phanxgames/scrolltween/internal/log"
	"github.com/phanxgames/scrolltween/timeline"
)

// ValidationResult is the validate payload.
type ValidationResult struct {
	Valid      bool             `json:"valid"`
	Name       string           `json:"name,omitempty"`
	Tracks     int              `json:"tracks"`
	Boundaries int              `json:"boundaries"`
	Span       []float64        `json:"span,omitempty"`
	Issues     []timeline.Issue `json:"issues,omitempty"`
}

// loadTimeline reads path, reporting load and validation failures through f.
func loadTimeline(f *OutputFormatter, path string) (*timeline.Document, error) {
	doc, err := timeline.Load(path)
	if err == nil {
		f.VerboseLog("Loaded %s: %d track(s), %d boundary(ies)", path, len(doc.Tracks), len(doc.Boundaries))
		return doc, nil
	}

	var verr *timeline.ValidationError
	switch {
	case errors.As(err, &verr):
		return nil, outputIssues(f, verr.Issues)
	case errors.Is(err, fs.ErrNotExist):
		return nil, f.fail(ErrCodeNotFound, fmt.Sprintf("timeline %s not found", path))
	default:
		return nil, f.fail(ErrCodeParse, err.Error())
	}
}

// compileInert compiles doc onto a fresh controller with no hosts bound.
func compileInert(opts *RootOptions, f *OutputFormatter, doc *timeline.Document, b timeline.Bindings) (*timeline.Compiled, error) {
	if b.Logf == nil {
		b.Logf = log.Printf(opts.log())
	}
	cp, err := timeline.Compile(scrolltween.NewController(), doc, b)
	if err != nil {
		return nil, f.fail(ErrCodeCompile, err.Error())
	}
	opts.log().Debug("compiled timeline", "name", doc.Name, "tracks", len(doc.Tracks))
	return cp, nil
}

// outputIssues reports validation issues. They are failures (exit 1), not
// command errors.
func outputIssues(f *OutputFormatter, issues []timeline.Issue) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))

	if f.JSON() {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Issues: issues},
			Error: &CLIError{
				Code:    ErrCodeInvalid,
				Message: issues[0].String(),
			},
		}
		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(f.Writer, "✗ Validation failed")
	fmt.Fprintln(f.Writer)
	for _, is := range issues {
		fmt.Fprintf(f.Writer, "  %s\n", is)
	}
	return exitErr
}
