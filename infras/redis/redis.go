package redis

import (
	"context"
	"net"
	"taskorganizer/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// New builds the client backing the rate limiter. The connection is only
// checked when the limiter is enabled, and a failed check is not fatal:
// the limiter lets requests through while Redis is down.
func New(config *config.Config) *goRedis.Client {
	redisConfig := config.Cache.Redis

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(redisConfig.Host, redisConfig.Port),
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	if !config.App.RateLimiter.Enable {
		return client
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warn().Err(err).Str("host", redisConfig.Host).Str("port", redisConfig.Port).Msg("Failed to connect to Redis, rate limiting will fail open")

		return client
	}

	log.Info().
		Int("db", redisConfig.DB).
		Str("host", redisConfig.Host).
		Str("port", redisConfig.Port).
		Msg("Connected to Redis")

	return client
}
