package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ecopoints/ecopoints/internal/buildinfo"
	"github.com/ecopoints/ecopoints/internal/client/cli"
	"github.com/ecopoints/ecopoints/internal/client/config"
	"github.com/ecopoints/ecopoints/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error(ctx, "error loading config", "err", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "error initializing application", "err", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
