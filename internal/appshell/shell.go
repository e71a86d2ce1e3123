// Package appshell turns a RunContext entry point into a process: it wires
// SIGINT/SIGTERM to context cancellation and exits with the returned code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ExitCanceled is reported when a signal cancelled a run that would
// otherwise have exited cleanly.
const ExitCanceled = 130

// Main runs run with the process arguments and streams, then exits.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(ctx, run(ctx, os.Args[1:], os.Stdout, os.Stderr))
	stop()
	os.Exit(code)
}

func exitCode(ctx context.Context, code int) int {
	if code == 0 && ctx.Err() != nil {
		return ExitCanceled
	}
	return code
}
