package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskorganizer/config"
	"taskorganizer/infras/otel/mocks"
	cacheMocks "taskorganizer/shared/cache/mocks"
	"taskorganizer/shared/constant"
	"taskorganizer/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newMiddleware(t *testing.T, cfg *config.Config) (middleware.AppMiddleware, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	return middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache), cache
}

func TestRequestID(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	var seen string

	handler := mw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constant.ContextKeyRequestID).(string)
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(constant.RequestHeaderRequestID))
	})

	t.Run("keeps the caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constant.RequestHeaderRequestID, "abc-123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(constant.RequestHeaderRequestID))
	})
}

func TestRecoverer(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	handler := mw.RequestLogger(mw.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestTracing(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	rec := httptest.NewRecorder()
	mw.Tracing(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	preflight := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		return req
	}

	t.Run("default allowlist", func(t *testing.T) {
		mw, _ := newMiddleware(t, &config.Config{})
		handler := mw.CORS()(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, preflight("http://localhost:3000"))

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, preflight("https://evil.example"))

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("configured origins", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.CORS.AllowedOrigins = []string{" https://app.example ", "https://admin.example"}

		mw, _ := newMiddleware(t, cfg)
		handler := mw.CORS()(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, preflight("https://admin.example"))

		assert.Equal(t, "https://admin.example", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, preflight("http://localhost:3000"))

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never allows credentials", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.CORS.AllowedOrigins = []string{"*"}

		mw, _ := newMiddleware(t, cfg)
		handler := mw.CORS()(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, preflight("https://anything.example"))

		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRateLimit(t *testing.T) {
	limitedConfig := func() *config.Config {
		cfg := &config.Config{}
		cfg.App.RateLimiter.Enable = true
		cfg.App.RateLimiter.MaxRequests = 2
		cfg.App.RateLimiter.WindowSeconds = 60

		return cfg
	}

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.RemoteAddr = "10.0.0.1:51234"
		req.Header.Set(constant.RequestHeaderUserAgent, "curl")

		return req
	}

	t.Run("disabled skips the counter", func(t *testing.T) {
		mw, _ := newMiddleware(t, &config.Config{})

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
	})

	t.Run("within the window", func(t *testing.T) {
		mw, cache := newMiddleware(t, limitedConfig())
		cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.1:curl", 60).Return(int64(1), nil)

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("over the limit", func(t *testing.T) {
		mw, cache := newMiddleware(t, limitedConfig())
		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.JSONEq(t, `{"error":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
	})

	t.Run("counter failure lets the request through", func(t *testing.T) {
		mw, cache := newMiddleware(t, limitedConfig())
		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forwarded address wins", func(t *testing.T) {
		mw, cache := newMiddleware(t, limitedConfig())
		cache.EXPECT().Increment(gomock.Any(), "limiter:203.0.113.9:curl", 60).Return(int64(1), nil)

		req := newRequest()
		req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.9, 10.0.0.1")

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
