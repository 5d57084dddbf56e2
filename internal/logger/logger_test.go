package logger

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("shown", "k", 1)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":1`)
}

func TestAccessMiddleware(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "text")
	h := AccessMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("abc"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/all", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "http_access")
	assert.Contains(t, out, "route=unmatched")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "bytes=3")
	assert.Contains(t, out, "path=/api/countries/all")
}

func TestAccessMiddlewareRouteAndTrigger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "text")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /countries/search", func(w http.ResponseWriter, r *http.Request) {
		Annotate(r.Context(), "trigger", "search", "outcome", "ok", "records", 2)
		_, _ = w.Write([]byte("{}"))
	})
	rec := httptest.NewRecorder()
	AccessMiddleware(l)(mux).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/countries/search?q=secret", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `route="GET /countries/search"`)
	assert.Contains(t, out, "trigger=search")
	assert.Contains(t, out, "outcome=ok")
	assert.Contains(t, out, "records=2")
	assert.NotContains(t, out, "secret")
}

func TestAccessMiddlewareSetRouteWins(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "json")
	h := AccessMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetRoute(r.Context(), "GET /usage")
		w.WriteHeader(http.StatusBadGateway)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/usage", nil))
	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"route":"GET /usage"`)
	assert.Contains(t, out, `"status":502`)
}

func TestAnnotateWithoutMiddleware(t *testing.T) {
	assert.NotPanics(t, func() {
		Annotate(context.Background(), "trigger", "all")
		SetRoute(context.Background(), "GET /")
	})
}
