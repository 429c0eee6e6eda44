package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var carouselPath = filepath.Join("..", "..", "timeline", "testdata", "carousel.yaml")

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decode(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

// --- validate ---

func TestValidateValidTimeline(t *testing.T) {
	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), carouselPath)
	require.NoError(t, err)
	assert.Equal(t, "✓ carousel: 3 track(s), 2 boundary(ies), span 0 to 1600\n", out)
}

func TestValidateValidTimelineJSON(t *testing.T) {
	out, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), carouselPath)
	require.NoError(t, err)

	resp := decode(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, "carousel", data["name"])
	assert.Equal(t, []any{0.0, 1600.0}, data["span"])
}

func TestValidateInvalidTimeline(t *testing.T) {
	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "testdata/invalid.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed with 4 issue(s)")

	newGoldie(t).Assert(t, "validate_invalid", []byte(out))
}

func TestValidateInvalidTimelineJSON(t *testing.T) {
	out, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), "testdata/invalid.yaml")
	require.Error(t, err)

	resp := decode(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalid, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "keyframe at 160")

	issues := resp.Data.(map[string]any)["issues"].([]any)
	require.Len(t, issues, 4)
	assert.Equal(t, "tracks[1].from.value", issues[2].(map[string]any)["field"])
}

func TestValidateMissingFile(t *testing.T) {
	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, out, "not found")
}

func TestValidateUnknownField(t *testing.T) {
	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "testdata/unknown_field.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeParse+"]")
	assert.Contains(t, out, "trakcs")
}

// --- sample ---

func TestSampleText(t *testing.T) {
	out, err := execute(NewSampleCommand(&RootOptions{Format: "text"}), carouselPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "sample_carousel", []byte(out))
}

func TestSampleJSON(t *testing.T) {
	out, err := execute(NewSampleCommand(&RootOptions{Format: "json"}), carouselPath,
		"--from", "200", "--to", "600", "--step", "200")
	require.NoError(t, err)

	resp := decode(t, out)
	data := resp.Data.(map[string]any)
	assert.Equal(t, []any{"caption-alpha", "buttons", "tower-frame"}, data["tracks"])

	rows := data["rows"].([]any)
	require.Len(t, rows, 3)
	last := rows[2].(map[string]any)
	assert.Equal(t, 600.0, last["progress"])
	values := last["values"].([]any)
	assert.Equal(t, 0.5, values[0])
	assert.Equal(t, map[string]any{"x": 16.0, "y": 800.0, "width": 368.0, "height": 48.0}, values[1])
}

func TestSampleBadRange(t *testing.T) {
	cases := map[string][]string{
		"negative step": {"--step", "-5"},
		"reversed":      {"--from", "800", "--to", "100"},
		"too many":      {"--step", "0.01"},
	}
	for name, flags := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := execute(NewSampleCommand(&RootOptions{Format: "text"}), append([]string{carouselPath}, flags...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, ErrCodeInvalidFlags)
		})
	}
}

func TestSamplePoints(t *testing.T) {
	points, err := samplePoints(0, 1000, 400, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 400, 800, 1000}, points)

	points, err = samplePoints(5, 5, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, points)
}

func TestSamplePointsRejectsNonFinite(t *testing.T) {
	cases := []struct{ from, to, step float64 }{
		{math.NaN(), 100, 10},
		{0, math.NaN(), 10},
		{0, math.Inf(1), 10},
		{math.Inf(-1), 0, 10},
		{0, 100, math.NaN()},
		{0, 100, math.Inf(1)},
	}
	for _, tc := range cases {
		_, err := samplePoints(tc.from, tc.to, tc.step, 0)
		assert.Error(t, err, "%g %g %g", tc.from, tc.to, tc.step)
	}
}

func TestSampleRejectsNaNFrom(t *testing.T) {
	_, err := execute(NewSampleCommand(&RootOptions{Format: "text"}), carouselPath, "--from", "NaN")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "finite")
}

// --- simulate ---

func TestSimulateText(t *testing.T) {
	out, err := execute(NewSimulateCommand(&RootOptions{Format: "text"}), carouselPath,
		"--progress", "500,100,1700,400")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "simulate_carousel", []byte(out))
}

func TestSimulateJSON(t *testing.T) {
	out, err := execute(NewSimulateCommand(&RootOptions{Format: "json"}), carouselPath,
		"--progress", "1700", "--progress", "1000")
	require.NoError(t, err)

	resp := decode(t, out)
	data := resp.Data.(map[string]any)
	assert.Equal(t, 1000.0, data["final"])
	assert.Equal(t, 1.0, data["fired"])

	steps := data["steps"].([]any)
	require.Len(t, steps, 2)
	fired := steps[0].(map[string]any)["fired"].([]any)
	assert.Equal(t, map[string]any{"boundary": "loop", "direction": "forward", "action": "reset"}, fired[0])
	assert.Equal(t, 0.0, steps[1].(map[string]any)["from"])
}

func TestSimulateRequiresProgress(t *testing.T) {
	_, err := execute(NewSimulateCommand(&RootOptions{Format: "text"}), carouselPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress")
}

// --- preview ---

func TestPreviewMissingFile(t *testing.T) {
	_, err := execute(NewPreviewCommand(&RootOptions{Format: "text"}), "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPreviewNeedsTerminal(t *testing.T) {
	out, err := execute(NewPreviewCommand(&RootOptions{Format: "text"}), carouselPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeInvalidFlags)
	assert.Contains(t, out, "needs a terminal")
}

func TestPreviewRejectsJSON(t *testing.T) {
	out, err := execute(NewPreviewCommand(&RootOptions{Format: "json"}), carouselPath)
	require.Error(t, err)
	resp := decode(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidFlags, resp.Error.Code)
}

// --- root ---

func TestRootRejectsUnknownFormat(t *testing.T) {
	_, err := execute(NewRootCommand(), "--format", "xml", "validate", carouselPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweenctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sample:\n  step: 800\n"), 0o644))

	out, err := execute(NewRootCommand(), "--config", path, "sample", carouselPath)
	require.NoError(t, err)
	assert.Contains(t, out, "carousel: 3 sample(s) from 0 to 1600 step 800")
}

func TestRootMissingConfig(t *testing.T) {
	_, err := execute(NewRootCommand(), "--config", "testdata/nope.yaml", "validate", carouselPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	cmd := NewRootCommand()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"--verbose", "--format", "json", "validate", carouselPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "ok", decode(t, stdout.String()).Status)
	assert.Contains(t, stderr.String(), "Loaded")
	assert.Contains(t, stderr.String(), "compiled timeline")
}

// --- output ---

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := WrapExitError(ExitFailure, "outer", os.ErrNotExist)
	assert.ErrorIs(t, wrapped, os.ErrNotExist)
	assert.Equal(t, "outer: file does not exist", wrapped.Error())
}

func TestOutputFormatterError(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}
	require.NoError(t, f.Error("E001", "boom", "context"))
	assert.Equal(t, "Error [E001]: boom\nDetails: context\n", buf.String())

	buf.Reset()
	f.Format = "json"
	require.NoError(t, f.Error("E001", "boom", nil))
	assert.JSONEq(t, `{"status":"error","error":{"code":"E001","message":"boom"}}`, buf.String())
}

func TestVerboseLogUsesErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	f := &OutputFormatter{Writer: out, ErrWriter: errOut}
	f.VerboseLog("hidden")
	f.Verbose = true
	f.VerboseLog("shown %d", 1)
	assert.Empty(t, out.String())
	assert.Equal(t, "shown 1\n", errOut.String())
}
