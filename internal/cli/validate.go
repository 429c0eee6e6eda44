package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrolltween/timeline"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <timeline.yaml>",
		Short: "Check a timeline document",
		Long: `Parse a timeline document and check it: required fields, property and
value kinds, ease names and strictly increasing keyframe positions.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	doc, err := loadTimeline(formatter, path)
	if err != nil {
		return err
	}
	cp, err := compileInert(opts, formatter, doc, timeline.Bindings{})
	if err != nil {
		return err
	}
	start, end := cp.Span()

	if formatter.JSON() {
		return formatter.Success(ValidationResult{
			Valid:      true,
			Name:       doc.Name,
			Tracks:     len(doc.Tracks),
			Boundaries: len(doc.Boundaries),
			Span:       []float64{start, end},
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s: %d track(s), %d boundary(ies), span %g to %g\n",
		doc.Name, len(doc.Tracks), len(doc.Boundaries), start, end)
	return nil
}
