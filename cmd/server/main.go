package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockbook/internal/config"
	"stockbook/internal/router"
	"stockbook/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	gw, err := storage.Open(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataPath).Msg("failed to open local store")
	}
	defer gw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, err := router.New(ctx, cfg, gw)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire application")
	}

	// Bind to loopback only: this is a device-local app, never exposed.
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("data", cfg.DataPath).Msg("stockbook listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	cancel() // stop the worker pool

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
