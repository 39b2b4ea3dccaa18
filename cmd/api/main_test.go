package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pantryfy/internal/api"
	"pantryfy/internal/config"
	"pantryfy/internal/extract"
	"pantryfy/internal/grocery"
	"pantryfy/internal/logging"
	"pantryfy/internal/planner"
	"pantryfy/internal/platform/web"
	"pantryfy/internal/recipe"
	"pantryfy/internal/search"
	"pantryfy/internal/suggest"
)

// newTestRouter wires the real services with no API keys configured.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	cfg := &config.Config{AllowedOrigins: []string{"http://localhost:8081"}}
	handler := api.NewHandler(
		extract.New(web.NewClient(), nil, nil, logger),
		recipe.NewMemoryStore(),
		planner.NewMemoryStore(),
		grocery.NewListStore(),
		search.NewService(nil, logger),
		suggest.NewService(nil, logger),
		logger,
	)
	return newRouter(cfg, handler, logger)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(logging.RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	// One request first so the HTTP collectors have a sample.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pantryfy_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/recipes", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", api.OwnerHeader)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:8081", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(rr.Header().Get("Access-Control-Allow-Headers")), strings.ToLower(api.OwnerHeader))
}

func TestExtractWithoutKeys(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(`{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Add GEMINI_API_KEY or OPENAI_API_KEY to enable video extraction."}`, rr.Body.String())
}

func TestSearchWithoutKey(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?ingredients=eggs", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestNewStoresInMemory(t *testing.T) {
	recipes, plans, closeDB, err := newStores(context.Background(), &config.Config{})
	require.NoError(t, err)
	defer closeDB()
	assert.IsType(t, &recipe.MemoryStore{}, recipes)
	assert.IsType(t, &planner.MemoryStore{}, plans)
}
