package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pribylovaa/go-zen-koans/internal/bootstrap"
	"github.com/pribylovaa/go-zen-koans/internal/config"
	"github.com/pribylovaa/go-zen-koans/internal/seed"
	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := bootstrap.Logger(cfg.Env, os.Stdout)
	slog.SetDefault(lg)
	lg.Info("starting koans-seed", slog.String("db_driver", cfg.DB.Driver))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	store, err := bootstrap.OpenStorage(ctx, cfg, true, lg)
	if err != nil {
		lg.Error("storage_open_failed", slog.String("err", err.Error()))
		cancel()
		os.Exit(1)
	}

	res, err := seed.Run(log.Into(ctx, lg), store, time.Now())
	store.Close()
	cancel()

	if err != nil {
		lg.Error("seed_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	lg.Info("seed_done",
		slog.Int("koans", res.Koans),
		slog.Int("comments", res.Comments),
		slog.Bool("skipped", res.Skipped),
	)
}
