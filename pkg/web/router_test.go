package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frenchcert/frenchcert/pkg/routes"
	"github.com/frenchcert/frenchcert/pkg/web"
)

func TestRouterWithoutFallback(t *testing.T) {
	r := web.NewRouter()
	r.HandleFunc("GET /exists", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("exists"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRouterSetFallback(t *testing.T) {
	r := web.NewRouter()
	r.HandleFunc("GET /exists", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("exists"))
	})
	r.SetFallback(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("custom 404"))
	})

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/exists", http.StatusOK, "exists"},
		{"/nonexistent", http.StatusNotFound, "custom 404"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestRouterRegisterGroups(t *testing.T) {
	r := web.NewRouter()
	r.Register("", routes.Group{
		Prefix: "/items",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, req *http.Request) {
				io.WriteString(w, "item "+req.PathValue("id"))
			}},
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	if body := w.Body.String(); body != "item 42" {
		t.Errorf("body = %q, want %q", body, "item 42")
	}
}
