package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrolltween"
	"github.com/phanxgames/scrolltween/timeline"
)

// SimulateResult is the simulate payload.
type SimulateResult struct {
	Timeline string         `json:"timeline"`
	Steps    []SimulateStep `json:"steps"`
	Final    float64        `json:"final"`
	Fired    int            `json:"fired"`
}

// SimulateStep is one progress update and the boundaries it fired.
type SimulateStep struct {
	From  float64  `json:"from"`
	To    float64  `json:"to"`
	Fired []Firing `json:"fired,omitempty"`
}

// Firing is a boundary that fired.
type Firing struct {
	Boundary  string `json:"boundary"`
	Direction string `json:"direction"`
	Action    string `json:"action"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	var progress []float64

	cmd := &cobra.Command{
		Use:   "simulate <timeline.yaml> --progress 0,400,...",
		Short: "Feed a progress sequence and report boundary firings",
		Long: `Compile a timeline onto a fresh controller, feed it each --progress value
in order and report which boundaries fire. The built-in "reset" action resets
progress to 0; other actions are reported but not run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(rootOpts, progress, args[0], cmd)
		},
	}

	cmd.Flags().Float64SliceVar(&progress, "progress", nil, "progress values to feed, in order")
	_ = cmd.MarkFlagRequired("progress")

	return cmd
}

func runSimulate(opts *RootOptions, progress []float64, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	doc, err := loadTimeline(formatter, path)
	if err != nil {
		return err
	}

	var fired []Firing
	cp, err := compileInert(opts, formatter, doc, timeline.Bindings{
		OnBoundary: func(b timeline.BoundarySpec, dir scrolltween.Direction) {
			fired = append(fired, Firing{Boundary: b.Name, Direction: dir.String(), Action: b.Action})
		},
	})
	if err != nil {
		return err
	}
	c := cp.Controller

	result := SimulateResult{Timeline: doc.Name}
	for _, p := range progress {
		step := SimulateStep{From: c.Progress(), To: p}
		fired = nil
		c.UpdateProgress(p)
		step.Fired = fired
		result.Fired += len(fired)
		result.Steps = append(result.Steps, step)
		formatter.VerboseLog("%g -> %g: progress now %g", step.From, p, c.Progress())
	}
	result.Final = c.Progress()

	if formatter.JSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s: %d step(s)\n", doc.Name, len(result.Steps))
	for _, st := range result.Steps {
		fmt.Fprintf(formatter.Writer, "%g -> %g\n", st.From, st.To)
		for _, f := range st.Fired {
			fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", f.Boundary, f.Direction, f.Action)
		}
	}
	fmt.Fprintf(formatter.Writer, "final progress %g, %d boundary firing(s)\n", result.Final, result.Fired)
	return nil
}
