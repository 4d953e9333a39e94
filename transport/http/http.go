package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"taskorganizer/config"
	_ "taskorganizer/docs" // registers the OpenAPI document
	"taskorganizer/infras/otel"
	"taskorganizer/infras/postgres"
	"taskorganizer/shared/constant"
	"taskorganizer/transport/http/middleware"
	"taskorganizer/transport/http/response"
	"taskorganizer/transport/http/router"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	provisionTimeout  = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	DB         *postgres.Connection
	Otel       otel.Otel

	state atomic.Int32
	once  sync.Once
	mux   *chi.Mux
}

func New(cfg *config.Config, r router.Router, m middleware.AppMiddleware, db *postgres.Connection, otel otel.Otel) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: m,
		DB:         db,
		Otel:       otel,
	}
}

// Serve listens until SIGINT or SIGTERM and then drains in-flight requests.
func (h *HTTP) Serve() error {
	h.setup()

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting up HTTP server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		h.cleanup()

		if err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	h.shutdown(server)

	return nil
}

// ServeHTTP lets the service run behind a plain net/http entry point.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	h.mux.ServeHTTP(w, r)
}

// State reports the lifecycle phase of the server.
func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.provisionSchema()
		h.setupRoutes()
		h.setState(ServerStateReady)
	})
}

// provisionSchema creates missing tables. Failure is logged and startup continues.
func (h *HTTP) provisionSchema() {
	if h.DB == nil || !h.Config.DB.Postgres.AutoProvision {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), provisionTimeout)
	defer cancel()

	if err := h.DB.Provision(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to provision database schema, continuing without it")

		return
	}

	log.Info().Msg("Database schema is ready")
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(h.Middleware.RequestID)
	mux.Use(h.Middleware.RequestLogger)
	mux.Use(h.Middleware.Recoverer)
	mux.Use(h.Middleware.CORS())
	mux.Use(h.Middleware.Tracing)
	mux.Use(chiMiddleware.StripSlashes)
	mux.Use(h.Middleware.RateLimit())

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithErrorMessage(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithErrorMessage(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	mux.Get("/", h.healthCheck)
	mux.Get("/docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently).ServeHTTP)
	mux.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	h.Router.SetupRoutes(mux)

	h.mux = mux
}

// healthCheck reports liveness.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Error
// @Router / [get]
func (h *HTTP) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithMessage(w, http.StatusOK, constant.ResponseMessageHealthy)
}

func (h *HTTP) shutdown(server *http.Server) {
	defer h.cleanup()

	if h.Config.IsDevelopment() {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		if err := server.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close HTTP server")
		}

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server did not drain in time")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) cleanup() {
	if err := h.DB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database connection")
	}

	if h.Otel == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := h.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}
}
