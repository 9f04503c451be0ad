package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/you/librarysvc/internal/app"
	"github.com/you/librarysvc/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
