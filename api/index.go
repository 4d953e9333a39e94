package handler

import (
	"net/http"
	"sync"
	"taskorganizer/config"
	"taskorganizer/di"
	"taskorganizer/shared/logger"
	"taskorganizer/shared/timezone"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler is the serverless entry point. The service graph is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		timezone.Init(cfg.App.Timezone)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
