package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/miltrack/miltrack/internal/cli"
	"github.com/miltrack/miltrack/internal/config"
	"github.com/miltrack/miltrack/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
