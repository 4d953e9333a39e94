package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskorganizer/config"
	"taskorganizer/infras/otel/mocks"
	"taskorganizer/infras/postgres"
	taskMocks "taskorganizer/internal/domains/task/mocks"
	"taskorganizer/internal/domains/task/model/dto"
	"taskorganizer/internal/handlers/task"
	"taskorganizer/transport/http/middleware"
	"taskorganizer/transport/http/router"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T) (*HTTP, *taskMocks.MockTaskService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := taskMocks.NewMockTaskService(ctrl)
	otel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Server.Env = "test"

	r := router.New(router.DomainHandlers{Task: task.New(svc, otel)})

	return New(cfg, r, middleware.NewAppMiddleware(otel, cfg, nil), &postgres.Connection{}, otel), svc
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func TestHealthCheck(t *testing.T) {
	server, _ := newServer(t)

	rec := serve(server, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	server.setState(ServerStateInGracePeriod)

	rec = serve(server, http.MethodGet, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"SERVER PREPARING TO SHUT DOWN"}`, rec.Body.String())
}

func TestRouting(t *testing.T) {
	server, svc := newServer(t)

	svc.EXPECT().List(gomock.Any()).Return([]dto.TaskResponse{}, nil).Times(2)

	assert.Equal(t, http.StatusOK, serve(server, http.MethodGet, "/tasks").Code)
	assert.Equal(t, http.StatusOK, serve(server, http.MethodGet, "/tasks/").Code)

	rec := serve(server, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())

	rec = serve(server, http.MethodPatch, "/tasks")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDocs(t *testing.T) {
	server, _ := newServer(t)

	rec := serve(server, http.MethodGet, "/docs/doc.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/tasks/{id}/toggle")
}

func TestServeHTTP_SetsUpOnce(t *testing.T) {
	server, _ := newServer(t)

	serve(server, http.MethodGet, "/")
	mux := server.mux

	serve(server, http.MethodGet, "/")
	assert.Same(t, mux, server.mux)
	assert.Equal(t, ServerStateReady, server.State())
}
