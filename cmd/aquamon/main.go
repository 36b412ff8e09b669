package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/akvaristik/aquamon/db"
	"github.com/akvaristik/aquamon/internal/api"
	"github.com/akvaristik/aquamon/internal/config"
	"github.com/akvaristik/aquamon/internal/datadog"
	"github.com/akvaristik/aquamon/internal/logging"
	"github.com/akvaristik/aquamon/internal/tank"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	log.Info().
		Int("port", cfg.Port).
		Str("db_path", cfg.DBPath).
		Msg("Starting aquarium monitor")

	datadog.InitMetrics(cfg)

	var store tank.SettingsStore
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Msg("Settings database unavailable, continuing with defaults")
	} else {
		defer conn.Close()
		store = db.NewStore(conn)
	}

	tankService := tank.New(cfg, store)
	server := api.NewServer(tankService, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}

	log.Info().Msg("Shutdown complete")
}
