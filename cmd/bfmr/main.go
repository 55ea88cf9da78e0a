package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bfmr_bot/cmd/bfmr/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1) //nolint:gocritic
	}
}
