package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose bool
	noColor bool
	logger  *zap.Logger
}

// NewRootCmd builds the surge command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:     "surge",
		Short:   "Compile traffic-shape profiles for load tests",
		Version: version,
		Long: `Surge compiles declarative traffic-shape profiles into per-second load
timelines. A profile is an ordered list of QPS ramps or staggered thread
groups; surge validates it, prints the resulting shape and renders the
schedule properties a load generator needs to replay it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print help
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newCompileCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newScheduleCmd(opts))

	return cmd
}

// Execute runs the root command and reports any error on stderr.
// This is called by main.main().
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// newLogger returns a development logger on stderr when verbose is set and a
// no-op logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
