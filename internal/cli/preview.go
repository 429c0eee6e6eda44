package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phanxgames/scrolltween/internal/log"
	"github.com/phanxgames/scrolltween/internal/preview"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   "preview <timeline.yaml>",
		Short: "Scrub through a timeline in the terminal",
		Long: `Open an interactive scrubber. Arrow keys step progress, shift+arrows
move a viewport width, g/G jump to the ends. Scalar tracks are drawn as bars
and boundary firings are listed as they happen.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(rootOpts, step, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&step, "step", 0, "progress per key press (default preview.step or a tenth of the viewport)")

	return cmd
}

func runPreview(opts *RootOptions, step float64, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	doc, err := loadTimeline(formatter, path)
	if err != nil {
		return err
	}
	if opts.Format == "json" {
		return formatter.fail(ErrCodeInvalidFlags, "preview is interactive and has no json output")
	}
	if !isTerminal(cmd.OutOrStdout()) {
		return formatter.fail(ErrCodeInvalidFlags, "preview needs a terminal; use sample or simulate instead")
	}
	if step == 0 {
		step = cfg.Preview.Step
	}

	model, err := preview.New(doc, preview.Options{
		Step:     step,
		BarWidth: cfg.Preview.BarWidth,
		Logf:     log.Printf(opts.log()),
	})
	if err != nil {
		return formatter.fail(ErrCodeCompile, err.Error())
	}

	opts.log().Info("starting preview", "timeline", doc.Name)
	err = preview.Run(model,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if err != nil {
		return WrapExitError(ExitFailure, "preview failed", err)
	}
	return nil
}

// isTerminal reports whether w is a terminal. Writers that are not files,
// such as test buffers, never are.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
