package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Nested keys fall back to their unprefixed tag, so SERVER_PORT and PORT both work.
type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8000"`
		Host     string `envconfig:"HOST"      default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"SHUTDOWN_CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"SHUTDOWN_GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"task-organizer"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowedOrigins []string `envconfig:"CORS_ALLOW_ORIGINS"`
			MaxAgeSeconds  int      `envconfig:"CORS_MAX_AGE_SECONDS" default:"600"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"RATE_LIMITER_ENABLE"`
			MaxRequests   int  `envconfig:"RATE_LIMITER_MAX_REQUESTS"   default:"100"`
			WindowSeconds int  `envconfig:"RATE_LIMITER_WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Host     string `envconfig:"REDIS_HOST" default:"localhost"`
			Port     string `envconfig:"REDIS_PORT" default:"6379"`
			Password string `envconfig:"REDIS_PASSWORD"`
			DB       int    `envconfig:"REDIS_DB"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			URL           string `envconfig:"DATABASE_URL"`
			FallbackURL   string `envconfig:"POSTGRES_URL"`
			MaxRetry      int    `envconfig:"MAX_RETRY"       default:"1"`
			RetryWaitTime int    `envconfig:"RETRY_WAIT_TIME" default:"1"`
			MaxOpenConns  int    `envconfig:"MAX_OPEN_CONNS"  default:"10"`
			MaxIdleConns  int    `envconfig:"MAX_IDLE_CONNS"  default:"10"`
			AutoProvision bool   `envconfig:"AUTO_PROVISION"  default:"true"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"OTEL_ENDPOINT"`
		} `envconfig:"OTEL"`
	} `envconfig:"EXTERNAL"`
}

// DefaultAllowedOrigins is used when CORS_ALLOW_ORIGINS is unset or blank.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = Load(&conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

// Load fills cfg from the process environment.
func Load(cfg *Config) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Debug().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}

// DatabaseURL returns the first configured connection string.
func (c *Config) DatabaseURL() string {
	if url := strings.TrimSpace(c.DB.Postgres.URL); url != "" {
		return url
	}

	return strings.TrimSpace(c.DB.Postgres.FallbackURL)
}

// AllowedOrigins returns the trimmed CORS allowlist, falling back to DefaultAllowedOrigins.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.App.CORS.AllowedOrigins))

	for _, origin := range c.App.CORS.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	if len(origins) == 0 {
		return append([]string(nil), DefaultAllowedOrigins...)
	}

	return origins
}

// AllowCredentials reports whether credentialed cross-origin requests may be allowed.
// Browsers reject credentials combined with a wildcard origin.
func (c *Config) AllowCredentials() bool {
	origins := c.AllowedOrigins()

	return !(len(origins) == 1 && origins[0] == "*")
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
