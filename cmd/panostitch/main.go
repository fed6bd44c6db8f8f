package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"panostitch/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(services.ExitCode(err))
	}
}
