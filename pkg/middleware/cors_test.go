package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frenchcert/frenchcert/pkg/middleware"
)

func corsConfig() *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000", "https://frenchcert.fr"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           7200,
	}
}

func TestCORS_NoHeaders(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *middleware.CORSConfig
		origin string
	}{
		{"disabled", &middleware.CORSConfig{Origins: []string{"http://localhost:3000"}}, "http://localhost:3000"},
		{"no origins", &middleware.CORSConfig{Enabled: true}, "http://localhost:3000"},
		{"disallowed origin", corsConfig(), "http://evil.com"},
		{"no origin header", corsConfig(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/certifications", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			middleware.CORS(tt.cfg)(ok()).ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
				t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
			}
		})
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/certifications", nil)
	req.Header.Set("Origin", "https://frenchcert.fr")
	w := httptest.NewRecorder()

	middleware.CORS(corsConfig())(ok()).ServeHTTP(w, req)

	want := map[string]string{
		"Access-Control-Allow-Origin":      "https://frenchcert.fr",
		"Access-Control-Allow-Methods":     "GET, POST",
		"Access-Control-Allow-Headers":     "Content-Type",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Max-Age":           "7200",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/certifications", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	middleware.CORS(corsConfig())(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if called {
		t.Error("preflight should not reach the handler")
	}
}

func TestCORSConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://localhost:3000, http://localhost:8080")
	t.Setenv("TEST_CORS_MAX_AGE", "600")

	cfg := &middleware.CORSConfig{}
	env := &middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
		MaxAge:  "TEST_CORS_MAX_AGE",
	}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled should be true from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://localhost:8080" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if len(cfg.AllowedMethods) == 0 || len(cfg.AllowedHeaders) == 0 {
		t.Error("methods and headers should have defaults")
	}
	if cfg.MaxAge != 600 {
		t.Errorf("MaxAge = %d, want 600", cfg.MaxAge)
	}
}
