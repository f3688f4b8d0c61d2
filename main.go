package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fixmerge/cli"
	"fixmerge/internal/logging"
)

func main() {
	// Cancel on Ctrl+C or SIGTERM; the running ffmpeg is killed with the context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand(nil).ExecuteContext(ctx)
	if err == nil {
		return
	}

	log := logging.New(os.Stderr, "info")
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		log.Warn().Msg("interrupted")
		stop()
		os.Exit(130) // Standard exit code for SIGINT
	}
	log.Error().Err(err).Msg("fixmerge failed")
	stop()
	os.Exit(1)
}
