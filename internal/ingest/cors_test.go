package ingest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dbug/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func preflight(origin, method string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, "/hook", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if method != "" {
		req.Header.Set("Access-Control-Request-Method", method)
	}
	return req
}

func TestCORS_DefaultPreflight(t *testing.T) {
	h := corsMiddleware(config.DefaultCORS())(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("http://localhost:3000", http.MethodPost))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, Accept, Origin, X-Requested-With",
		rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_SimpleRequestGetsOriginHeader(t *testing.T) {
	h := corsMiddleware(config.DefaultCORS())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader("{}"))
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_NoOriginNoHeaders(t *testing.T) {
	h := corsMiddleware(config.DefaultCORS())(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com/"},
		AllowedMethods: []string{"delete", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}
	h := corsMiddleware(cfg)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("https://app.example.com", http.MethodDelete))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	assert.Equal(t, "POST, OPTIONS, DELETE", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Header().Get("Access-Control-Max-Age"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("https://evil.example.com", http.MethodPost))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedMethod(t *testing.T) {
	h := corsMiddleware(config.DefaultCORS())(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("http://localhost", http.MethodPut))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORS_RoutesAnswerPreflight(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("http://localhost:5173", http.MethodPost))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
