package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/veloterm/internal/config"
	"github.com/Versifine/veloterm/internal/devserver"
	"github.com/Versifine/veloterm/internal/logger"
)

func main() {
	configPath := flag.String("config", "configs/devserver.yaml", "dev server YAML configuration")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = config.DefaultDevServer(), nil
	}
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	out, err := logger.OpenOutput(cfg.Logging.File)
	if err != nil {
		slog.Error("Failed to open log output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: out,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := devserver.NewServer(cfg).Start(ctx); err != nil {
		slog.Error("Dev server failed", "error", err)
		os.Exit(1)
	}
}
