package main

import (
	"taskorganizer/config"
	"taskorganizer/di"
	"taskorganizer/shared/logger"
	"taskorganizer/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Task Organizer API
// @version 1.0.0
// @description CRUD service for to-do tasks.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	http := di.InitializeService()
	if err := http.Serve(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server stopped")
	}
}
