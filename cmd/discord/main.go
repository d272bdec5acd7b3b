// cmd/discord/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/internal/discord"
	"github.com/keshon/suggestions/internal/logging"
	v "github.com/keshon/suggestions/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting bot", zap.String("app", v.AppName), zap.String("version", v.Version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot, err := discord.New(cfg, log)
	if err != nil {
		log.Fatal("failed to build bot", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info("received signal, shutting down", zap.String("signal", s.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error("discord bot error", zap.Error(err))
			cancel()
			os.Exit(1)
		}
	}

	log.Info("discord bot exited cleanly")
}
