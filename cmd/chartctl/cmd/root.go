// Package cmd implements the chartctl commands.
//
// The root command dispatches to replay and diff. Errors are reported
// through the chart error handler, which the root wires to the command's
// logger before any subcommand runs.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-drift/chart/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// NewRootCommand builds the chartctl command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "chartctl",
		Short: "Replay chart scenes and compare chart configurations",
		Long: `chartctl drives the chart lifecycle adapter from files.

"replay" mounts a scene against a tracing engine and prints every engine
command. "diff" tells whether moving between two configurations would
reconfigure the chart or only refresh its data.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("chartctl %s (built %s)\n", Version, BuildTime))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newReplayCmd())
	root.AddCommand(newDiffCmd())
	return root
}

// Execute runs chartctl with the process arguments.
func Execute(ctx context.Context) error {
	return execute(ctx, NewRootCommand())
}

func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		report(err)
	}
	return err
}

// report hands err to the error handler, keeping chart errors intact.
func report(err error) {
	var ce *errors.ChartError
	if stderrors.As(err, &ce) {
		errors.Report(ce)
		return
	}
	errors.Report(errors.New("chartctl", errors.KindUnknown, err))
}
