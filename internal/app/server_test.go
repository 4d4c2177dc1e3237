package app

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/backoffice/internal/config"
	"github.com/fastygo/backoffice/internal/middleware"
)

type envelope struct {
	Status    string          `json:"status"`
	Code      string          `json:"code"`
	Reply     string          `json:"reply"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Error     *struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		AppName:  "backoffice-test",
		HTTP:     config.HTTPConfig{Host: "127.0.0.1", Port: "0"},
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "live.sqlite")},
		Backup: config.BackupConfig{
			CatalogPath: filepath.Join(dir, "catalog.db"),
			Dir:         filepath.Join(dir, "backups"),
			Keep:        2,
		},
		Auth:    config.AuthConfig{Issuer: "backoffice"},
		Context: config.ContextConfig{RequestTimeout: 5 * time.Second, ShutdownTimeout: 5 * time.Second},
		Health:  config.HealthConfig{Interval: time.Minute},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func do(t *testing.T, h fasthttp.RequestHandler, method, uri, body, token string) (int, envelope) {
	t.Helper()
	var rc fasthttp.RequestCtx
	rc.Request.Header.SetMethod(method)
	rc.Request.SetRequestURI(uri)
	rc.Request.Header.Set("X-Request-ID", "req-42")
	if token != "" {
		rc.Request.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		rc.Request.SetBodyString(body)
	}
	h(&rc)

	var env envelope
	require.NoError(t, json.Unmarshal(rc.Response.Body(), &env), string(rc.Response.Body()))
	return rc.Response.StatusCode(), env
}

func TestHTTPOperations(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	h := a.HTTPHandler(a.NewMonitor())

	status, env := do(t, h, http.MethodGet, "/api/v1/business", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "business-data", env.Reply)
	assert.Equal(t, "req-42", env.RequestID)
	assert.Contains(t, string(env.Data), `"currency":"USD"`)

	status, env = do(t, h, http.MethodPost, "/api/v1/ops/save-client", `{"business_id":1,"name":"Acme"}`, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "client-saved", env.Reply)

	status, env = do(t, h, http.MethodPost, "/api/v1/ops/get-clients", `1`, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"name":"Acme"`)

	status, env = do(t, h, http.MethodPost, "/api/v1/ops/save-lead", `{"business_id":1,"probability":140}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID", env.Code)
	assert.Equal(t, "lead-saved-error", env.Reply)
	require.NotNil(t, env.Error)
	assert.Equal(t, "required", env.Error.Fields["name"])
	assert.Equal(t, "lte", env.Error.Fields["probability"])

	status, env = do(t, h, http.MethodPost, "/api/v1/ops/get-lead-by-id", `999`, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)

	status, env = do(t, h, http.MethodPost, "/api/v1/ops/mark-invoice-paid", `{oops`, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, h, http.MethodPost, "/api/v1/ops/no-such-op", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "no-such-op-error", env.Reply)

	status, env = do(t, h, http.MethodGet, "/api/v1/ops", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"name":"save-invoice"`)
	assert.Contains(t, string(env.Data), `"error_reply":"invoice-save-error"`)

	status, env = do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"database":true`)
}

func TestHTTPAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Secret = "s3cret"
	a := newTestApp(t, cfg)
	h := a.HTTPHandler(a.NewMonitor())

	status, env := do(t, h, http.MethodGet, "/api/v1/business", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
	assert.Equal(t, "req-42", env.RequestID)

	token, err := middleware.IssueToken("s3cret", "backoffice", "desktop", time.Minute)
	require.NoError(t, err)
	status, _ = do(t, h, http.MethodGet, "/api/v1/business", "", token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status, "health stays public")
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup.Interval = time.Hour
	a := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	assert.NoError(t, a.Close(context.Background()))
}
