package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skyreserve/skyreserve/internal/cmd"
	"github.com/skyreserve/skyreserve/internal/exitcode"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nCancelled.")
		return exitcode.Interrupted
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitcode.DetermineExitCode(err)
}
