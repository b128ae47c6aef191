// Package main serves the stepwise replay controller over HTTP.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/stepwise/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stderr); err != nil {
		log.Fatalf("stepwise: %v", err)
	}
}
