package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"

	"supermarket-checkout/pkg/config"
	"supermarket-checkout/pkg/model"
	"supermarket-checkout/pkg/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := cfg.NewLogger().With().Str("env", cfg.AppEnv).Logger()

	temporalClient, err := client.Dial(client.Options{HostPort: cfg.TemporalHostPort})
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to create Temporal client")
	}

	tokenDb, err := rest.TokenDbFactory(cfg.AppEnv + "-token-db")
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to create token db")
	}

	server := rest.NewServer(temporalClient, tokenDb, &model.UuidBasketIdGenerator{}, cfg.TaskQueue, logger)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: server.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("server shutting down")

	force, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(force); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	server.Shutdown(force)
}
