package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
)

func TestArchiveTypeMiddleware(t *testing.T) {
	testCases := []struct {
		query    string
		expected string
	}{
		{query: "", expected: ArchiveZip},
		{query: "?archiveType=zip", expected: ArchiveZip},
		{query: "?archiveType=tar", expected: ArchiveTar},
		{query: "?archiveType=rar", expected: ArchiveZip},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			var got string
			h := ArchiveTypeMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ArchiveType(r.Context())
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/export"+tc.query, nil))
			assert.Equal(t, tc.expected, got)
		})
	}

	assert.Equal(t, ArchiveZip, ArchiveType(context.Background()))
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v0/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, called)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	called = false
	req = httptest.NewRequest(http.MethodGet, "/api/v0/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	called = false
	req = httptest.NewRequest(http.MethodOptions, "/api/v0/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.False(t, called, "preflight is answered by the middleware")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	r := chi.NewRouter()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.Get("/api/v0/products", func(w http.ResponseWriter, r *http.Request) {})

	for _, method := range []string{http.MethodGet, http.MethodOptions} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/v0/products", nil)
			req.Header.Set("Origin", "https://evil.example")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			for _, h := range []string{
				"Access-Control-Allow-Origin",
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Max-Age",
			} {
				assert.Empty(t, rec.Header().Get(h), h)
			}
			if method == http.MethodOptions {
				assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			} else {
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		})
	}
}
