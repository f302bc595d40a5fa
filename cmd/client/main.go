package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/givehub/givehub/internal/client/cli"
	"github.com/givehub/givehub/internal/client/config"
	"github.com/givehub/givehub/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewConsoleLogger()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}
