package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"streambot/cmd"
)

func main() {
	// Cancelling ctx is what starts the graceful shutdown in cmd.Run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
