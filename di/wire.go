//go:build wireinject
// +build wireinject

package di

import (
	"taskorganizer/config"
	"taskorganizer/infras/otel"
	"taskorganizer/infras/postgres"
	"taskorganizer/infras/redis"
	taskHandler "taskorganizer/internal/handlers/task"
	"taskorganizer/shared/cache"
	"taskorganizer/transport/http"
	"taskorganizer/transport/http/middleware"
	"taskorganizer/transport/http/router"

	taskRepository "taskorganizer/internal/domains/task/repository"
	taskService "taskorganizer/internal/domains/task/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var taskDomain = wire.NewSet(
	taskRepository.New,
	taskService.New,
)

var domains = wire.NewSet(
	taskDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	taskHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
