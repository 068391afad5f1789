package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/madhava-poojari/mentorship-api/internal/api/v1"
	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T, logOut io.Writer) *Server {
	t.Helper()
	cfg := &config.Config{JWTSecret: "s", WebURL: "https://app.example.com, https://staging.example.com/"}
	log := slog.New(slog.NewJSONHandler(logOut, nil))
	api := v1.NewAPI(v1.Deps{Config: cfg, Log: log, DB: okPinger{}})
	files := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("file:" + r.URL.Path))
	})
	return NewServer(cfg, log, api, files)
}

func TestHandlerMountsAPIAndLogsRequests(t *testing.T) {
	var logs bytes.Buffer
	h := newTestServer(t, &logs).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
	assert.Contains(t, logs.String(), `"path":"/api/v1/health"`)
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestHandlerServesUploads(t *testing.T) {
	h := newTestServer(t, io.Discard).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/abc.pdf", nil))
	assert.Equal(t, "file:/abc.pdf", rec.Body.String())
}

func TestHandlerExposesMetrics(t *testing.T) {
	h := newTestServer(t, io.Discard).Handler()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "mentorship_http_requests_total"))
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	h := newTestServer(t, io.Discard).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/programs", nil)
	req.Header.Set("Origin", "https://staging.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://staging.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, allowedOrigins(" https://a.example/ ,https://b.example"))
	assert.Equal(t, []string{"http://localhost:3000"}, allowedOrigins(""))
}
