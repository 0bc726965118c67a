// Command phasetool folds variable star light curves on their fitted periods without a GUI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/bob-anderson-ok/PhasePlot/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
