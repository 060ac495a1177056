package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/go-drift/chart/pkg/chart"
	"github.com/go-drift/chart/pkg/charttest"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/scene"
)

func newReplayCmd() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "replay <scene>",
		Short: "Replay a scene against a tracing chart engine",
		Long: `Replay a scene against a tracing chart engine.

The first pass mounts the chart and every later pass updates it. Each
engine command is printed as it happens. Callbacks named in the scene
(!fn name) are bound to stubs that print when the adapter invokes them.

Scenes are YAML (.yaml, .yml) or TOML (.toml).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), cmd.OutOrStdout(), args[0], keep)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "leave the chart mounted after the last pass")
	return cmd
}

func runReplay(ctx context.Context, w io.Writer, path string, keep bool) error {
	const op = "chartctl.replay"
	logger := loggerFromContext(ctx)

	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("scene loaded", "path", path, "passes", len(s.Passes))

	rec := charttest.NewRecorder()
	rec.OnCall = func(c charttest.Call) { printCall(w, c) }

	types := chart.NewRegistry()
	for _, name := range chartNames(s) {
		types.Register(name, rec.Constructor())
	}

	a := chart.New(chart.WithLogger(logger))
	funcs := stubFuncs{w: w}

	printTitle(w, "%s", path)
	for i := range s.Passes {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := s.Props(i, types, funcs)
		if err != nil {
			return err
		}
		printInfo(w, "pass %d", i)
		if i == 0 {
			err = a.Mount(p)
		} else {
			err = a.Update(p)
		}
		if err != nil {
			return wrapEngine(op, fmt.Sprintf("passes[%d]", i), err)
		}
	}

	if s.Unmount && !keep {
		printInfo(w, "unmount")
		if err := a.Unmount(); err != nil {
			return wrapEngine(op, "unmount", err)
		}
	}

	printSuccess(w, "%s passes: %s constructed, %s reconfigured, %s data refreshes, %s destroyed",
		number(len(s.Passes)),
		number(rec.Count(charttest.MethodConstruct)),
		number(rec.Count(charttest.MethodUpdateConfig)),
		number(rec.Count(charttest.MethodChangeData)),
		number(rec.Count(charttest.MethodDestroy)))
	return nil
}

// wrapEngine tags a failed adapter call with where in the scene it happened.
// Chart errors already carry their own kind and pass through.
func wrapEngine(op, path string, err error) error {
	var ce *errors.ChartError
	if stderrors.As(err, &ce) {
		return err
	}
	return &errors.ChartError{Op: op, Kind: errors.KindEngine, Path: path, Err: err}
}

// chartNames lists every chart type a scene refers to.
func chartNames(s *scene.Scene) []string {
	seen := map[string]bool{}
	if s.Chart != "" {
		seen[s.Chart] = true
	}
	for _, pass := range s.Passes {
		if name, ok := pass[chart.KeyChart].AsString(); ok && name != "" {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stubFuncs binds every callback name to a func(chart.Engine) that prints
// its name, which satisfies onMount as well as opaque config callbacks.
type stubFuncs struct {
	w io.Writer
}

func (f stubFuncs) LookupFunc(name string) (any, bool) {
	return func(e chart.Engine) {
		if re, ok := e.(*charttest.Engine); ok {
			printDetail(f.w, "callback %s(#%d)", name, re.ID())
			return
		}
		printDetail(f.w, "callback %s", name)
	}, true
}
