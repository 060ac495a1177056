// Command chartctl replays chart scenes and compares chart configurations.
package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/chart/cmd/chartctl/cmd"
	"github.com/go-drift/chart/pkg/errors"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer errors.RecoverWithCallback("chartctl", func(any) { code = 2 })

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			return 130
		}
		return 1
	}
	return 0
}
