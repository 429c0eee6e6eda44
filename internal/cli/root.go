// Package cli implements the tweenctl commands.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrolltween/internal/config"
	"github.com/phanxgames/scrolltween/internal/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // config file; empty searches the default locations

	cfg    *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// settings returns the loaded config, or defaults when commands run without
// the root's pre-run.
func (o *RootOptions) settings() *config.Config {
	if o.cfg == nil {
		return config.DefaultConfig()
	}
	return o.cfg
}

func (o *RootOptions) log() *slog.Logger {
	if o.logger == nil {
		return log.NullLogger()
	}
	return o.logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// NewRootCommand creates the root command for tweenctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tweenctl",
		Short: "Inspect and preview scroll-driven keyframe timelines",
		Long: `tweenctl loads YAML timeline documents, validates their keyframe
ordering and evaluates their tracks and boundaries at any progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg, err := config.LoadConfig(opts.Config)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			opts.cfg = cfg

			logger, err := log.SetupLogger(&cfg.Logging, cmd.ErrOrStderr(), opts.Verbose)
			if err != nil {
				// Fall back to null logger if file logging fails
				logger = log.NullLogger()
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default ./tweenctl.yaml)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSampleCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewPreviewCommand(opts))

	return cmd
}
