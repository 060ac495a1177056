package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/chart/pkg/chart"
	"github.com/go-drift/chart/pkg/scene"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Classify the change between two chart configurations",
		Long: `Classify the change between two chart configurations.

Prints "changed" when moving from <a> to <b> would reconfigure and redraw
the chart, or "unchanged" when only a data refresh is needed. The data key
and callback paths never count as changes; the ignored callback paths are
listed below the verdict.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

// nonConfigKeys are stripped before classification, as the adapter does.
var nonConfigKeys = []string{
	chart.KeyChart, chart.KeyOnMount, chart.KeyClassName, chart.KeyStyle, chart.KeyData,
}

func runDiff(ctx context.Context, w io.Writer, pathA, pathB string) error {
	logger := loggerFromContext(ctx)

	a, err := scene.LoadConfig(pathA)
	if err != nil {
		return err
	}
	b, err := scene.LoadConfig(pathB)
	if err != nil {
		return err
	}

	d := chart.Classify(a.Without(nonConfigKeys...), b.Without(nonConfigKeys...))
	dataChanged := !a[chart.KeyData].Equal(b[chart.KeyData])
	logger.Debug("classified", "a", pathA, "b", pathB, "changed", d.Changed, "data", dataChanged, "ignored", len(d.FuncPaths))

	if d.Changed {
		printWarning(w, "changed")
		printDetail(w, "updateConfig + render")
	} else {
		printSuccess(w, "unchanged")
		if dataChanged {
			printDetail(w, "changeData")
		} else {
			printDetail(w, "changeData (same data)")
		}
	}
	for _, p := range d.FuncPaths {
		printInfo(w, "ignored %s", p)
	}
	return nil
}
