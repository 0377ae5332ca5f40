package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/busboarding/config"
	"github.com/Domenick1991/busboarding/internal/metrics"
	"github.com/Domenick1991/busboarding/internal/service/boarding"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, swagger bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := boarding.NewBoardingService(nil, nil, nil, "", 0,
		boarding.WithMetrics(metrics.NewBoarding(reg)),
		boarding.WithLogger(logger),
	)
	cfg := config.Default().HTTP
	cfg.SwaggerEnabled = swagger
	return NewRouter(cfg, svc, reg, logger)
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_GenerateThenMetrics(t *testing.T) {
	router := newTestRouter(t, false)

	body := `{"manual_data":[{"booking_id":101,"seats":"A1,B1"},{"booking_id":120,"seats":"A20,C2"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sequence":[[1,120],[2,101]]`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "boarding_runs_generated_total 1")
}

func TestRouter_GetWithoutStorage(t *testing.T) {
	router := newTestRouter(t, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sequences/7d0b6c1e-9b7a-4f4e-8a43-3c8d1b1f0a11", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Swagger(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/sequences/{id}")

	w = httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.HTTP.Address = "127.0.0.1:0"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := boarding.NewBoardingService(nil, nil, nil, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, cfg, svc, nil, logger)
	assert.NoError(t, err)
}
