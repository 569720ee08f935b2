package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pingdeck/config"
	"pingdeck/internals/app"
	"pingdeck/internals/server"
	"pingdeck/pkg/db"
	"pingdeck/pkg/logger"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig("env.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg)

	pool, err := db.ConnectToDB(rootCtx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	container, err := app.NewContainer(rootCtx, cfg, log, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application container")
	}

	container.Start(rootCtx)

	router := app.RegisterRoutes(container)
	srv := server.New(fmt.Sprintf(":%d", cfg.Port), router, log)
	srv.Start()

	log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("pingdeck api started")

	<-rootCtx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	container.Shutdown(shutdownCtx)

	log.Info().Msg("shutdown complete")
}
