package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thothexport/internal/metadata"
	"thothexport/internal/testutil"
)

type readyFunc func(ctx context.Context) error

func (f readyFunc) Ready(ctx context.Context) error { return f(ctx) }

func testConfig() config {
	return config{
		Addr:           ":0",
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func TestHandler_ExportRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	works := metadata.NewMockWorkSource(ctrl)
	works.EXPECT().GetWork(gomock.Any(), uuid.MustParse(testutil.TestWorkID)).Return(testutil.TestWork(), nil)

	handler := newHandler(testConfig(), works, readyFunc(func(context.Context) error { return nil }))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/specifications/csv::thoth/work/"+testutil.TestWorkID, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	works := metadata.NewMockWorkSource(ctrl)

	errNotReady := errors.New("pool closed")
	handler := newHandler(testConfig(), works, readyFunc(func(context.Context) error { return errNotReady }))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "thothexport_http_requests_total")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := newHandler(testConfig(), metadata.NewMockWorkSource(ctrl), readyFunc(func(context.Context) error { return nil }))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/specifications", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("WORK_SOURCE", "graphql")
	t.Setenv("APP_ADDR", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("ENABLE_HSTS", "true")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.True(t, cfg.EnableHSTS)

	t.Setenv("RATE_LIMIT_BURST", "lots")
	_, err = loadConfig()
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("APP_ADDR=:9999\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("APP_ADDR", ":7000")

	cwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	loadEnvFiles()

	if got := os.Getenv("APP_ADDR"); got != ":7000" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}
