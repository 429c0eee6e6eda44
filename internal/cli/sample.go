package cli

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrolltween/timeline"
)

// SampleResult is the sample payload.
type SampleResult struct {
	Timeline string      `json:"timeline"`
	From     float64     `json:"from"`
	To       float64     `json:"to"`
	Step     float64     `json:"step"`
	Tracks   []string    `json:"tracks"`
	Rows     []SampleRow `json:"rows"`
}

// SampleRow holds every track's value at one progress, in track order.
// Scalars encode as numbers, rects as RectJSON.
type SampleRow struct {
	Progress float64 `json:"progress"`
	Values   []any   `json:"values"`
}

// RectJSON is the JSON form of a rect value.
type RectJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type sampleOptions struct {
	from, to, step float64
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	so := &sampleOptions{}

	cmd := &cobra.Command{
		Use:   "sample <timeline.yaml>",
		Short: "Evaluate every track over a progress range",
		Long: `Evaluate every track of a timeline from --from to --to in --step
increments. The range defaults to the span of all keyframes and the step to
one viewport width. Boundaries are not run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(rootOpts, so, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&so.from, "from", 0, "first progress (default span start)")
	cmd.Flags().Float64Var(&so.to, "to", 0, "last progress (default span end)")
	cmd.Flags().Float64Var(&so.step, "step", 0, "progress increment (default sample.step or viewport width)")

	return cmd
}

func runSample(opts *RootOptions, so *sampleOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	doc, err := loadTimeline(formatter, path)
	if err != nil {
		return err
	}
	cp, err := compileInert(opts, formatter, doc, timeline.Bindings{})
	if err != nil {
		return err
	}

	from, to := cp.Span()
	if cmd.Flags().Changed("from") {
		from = so.from
	}
	if cmd.Flags().Changed("to") {
		to = so.to
	}
	step := so.step
	if step == 0 {
		step = cfg.Sample.Step
	}
	if step == 0 {
		step = doc.Viewport.Width
	}

	points, err := samplePoints(from, to, step, cfg.Sample.MaxSamples)
	if err != nil {
		return formatter.fail(ErrCodeInvalidFlags, err.Error())
	}
	formatter.VerboseLog("Sampling %d point(s) from %g to %g", len(points), from, to)

	result := SampleResult{Timeline: doc.Name, From: from, To: to, Step: step}
	for _, tr := range doc.Tracks {
		result.Tracks = append(result.Tracks, tr.Name)
	}

	if formatter.JSON() {
		for _, p := range points {
			row := SampleRow{Progress: p}
			for _, s := range cp.Sample(p) {
				if s.Kind == timeline.ValueScalar {
					row.Values = append(row.Values, s.Scalar)
				} else {
					row.Values = append(row.Values, RectJSON{s.Rect.X, s.Rect.Y, s.Rect.Width, s.Rect.Height})
				}
			}
			result.Rows = append(result.Rows, row)
		}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s: %d sample(s) from %g to %g step %g\n",
		doc.Name, len(points), from, to, step)
	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "progress")
	for _, name := range result.Tracks {
		fmt.Fprint(tw, "\t"+name)
	}
	fmt.Fprintln(tw)
	for _, p := range points {
		fmt.Fprintf(tw, "%g", p)
		for _, s := range cp.Sample(p) {
			fmt.Fprint(tw, "\t"+s.String())
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// samplePoints returns from, from+step, ... up to to, ending exactly on to.
func samplePoints(from, to, step float64, max int) ([]float64, error) {
	switch {
	case !isFinite(from) || !isFinite(to):
		return nil, fmt.Errorf("--from and --to must be finite, got %g and %g", from, to)
	case !(step > 0) || math.IsInf(step, 1):
		return nil, fmt.Errorf("step must be positive and finite, got %g", step)
	case to < from:
		return nil, fmt.Errorf("--to %g is before --from %g", to, from)
	}

	span := (to - from) / step
	if max > 0 && span >= float64(max) {
		return nil, fmt.Errorf("more than %d samples; raise --step", max)
	}
	n := int(math.Floor(span+1e-9)) + 1
	if to-(from+float64(n-1)*step) > 1e-9 {
		n++
	}

	points := make([]float64, n)
	for i := range points {
		points[i] = from + float64(i)*step
	}
	points[n-1] = math.Min(points[n-1], to)
	return points, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
