package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/metrics"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/middleware"
)

func teapot(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func TestStackAppliesInRegistrationOrder(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	var stack middleware.Stack
	stack.Use(tag("first"))
	stack.Use(tag("second"), tag("third"))
	assert.Equal(t, 3, stack.Len())

	stack.Apply(http.HandlerFunc(teapot)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second", "third"}, order)

	order = nil
	middleware.Chain(http.HandlerFunc(teapot), tag("outer"), tag("inner")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name   string
		cfg    middleware.CORSConfig
		origin string
		want   string
	}{
		{"disabled", middleware.CORSConfig{Enabled: false, Origins: []string{"*"}}, "http://a", ""},
		{"wildcard", middleware.CORSConfig{Enabled: true, Origins: []string{"*"}}, "http://a", "*"},
		{"wildcard with credentials", middleware.CORSConfig{Enabled: true, Origins: []string{"*"}, AllowCredentials: true}, "http://a", "http://a"},
		{"listed", middleware.CORSConfig{Enabled: true, Origins: []string{"http://a"}}, "http://a", "http://a"},
		{"unlisted", middleware.CORSConfig{Enabled: true, Origins: []string{"http://a"}}, "http://b", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.cfg.Finalize(nil))
			h := middleware.CORS(&tt.cfg)(http.HandlerFunc(teapot))

			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, http.StatusTeapot, rec.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := middleware.CORSConfig{Enabled: true, Origins: []string{"*"}}
	require.NoError(t, cfg.Finalize(nil))

	req := httptest.NewRequest(http.MethodOptions, "/products/G100/tracking", nil)
	req.Header.Set("Origin", "http://ui")
	rec := httptest.NewRecorder()
	middleware.CORS(&cfg)(http.HandlerFunc(teapot)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.Logger(logger)(http.HandlerFunc(teapot))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products?page=2", nil))

	line := buf.String()
	assert.True(t, strings.Contains(line, "status=418"), line)
	assert.Contains(t, line, "uri=\"/products?page=2\"")
}

func TestMetricsLabelsByPattern(t *testing.T) {
	reg := metrics.NewRegistry()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", teapot)

	h := middleware.Metrics(reg)(mux)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/G100", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `scm_http_requests_total{method="GET",route="GET /products/{id}",status="418"} 1`)
	assert.Contains(t, body, `scm_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Setenv("TEST_CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TEST_CORS_METHODS", "get,put")

	cfg := &middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Origins:        "TEST_CORS_ORIGINS",
		AllowedMethods: "TEST_CORS_METHODS",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	assert.Equal(t, []string{"GET", "PUT"}, cfg.AllowedMethods)
	assert.Equal(t, []string{"Content-Type"}, cfg.AllowedHeaders)
	assert.Equal(t, 3600, cfg.MaxAge)
}

func TestCORSConfigRejectsInvalid(t *testing.T) {
	negative := &middleware.CORSConfig{MaxAge: -1}
	assert.Error(t, negative.Finalize(nil))

	t.Setenv("TEST_CORS_METHODS", " , ")
	blank := &middleware.CORSConfig{}
	assert.Error(t, blank.Finalize(&middleware.CORSEnv{AllowedMethods: "TEST_CORS_METHODS"}))
}
