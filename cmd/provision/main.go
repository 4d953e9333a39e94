package main

import (
	"context"
	"os"
	"taskorganizer/config"
	"taskorganizer/infras/postgres"
	"taskorganizer/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	provisionTimeout = 30 * time.Second
)

// Creates the tasks table and its index when they are missing. Safe to rerun.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	conn := postgres.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), provisionTimeout)
	err := conn.Provision(ctx)

	cancel()

	if closeErr := conn.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("Failed to close database connection")
	}

	if err != nil {
		log.Error().Err(err).Msg("Failed to provision database schema")
		os.Exit(1)
	}

	log.Info().Msg("Database schema is ready")
}
