package web

import (
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/routes"
)

// Router wraps a ServeMux and routes unmatched requests to a fallback handler.
type Router struct {
	mux      *http.ServeMux
	fallback http.HandlerFunc
}

// NewRouter creates a Router without a fallback; unmatched requests get the
// ServeMux's default 404.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Handle registers handler for pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers handler for pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Register adds every route of groups under prefix.
func (r *Router) Register(prefix string, groups ...routes.Group) {
	routes.Register(r.mux, prefix, groups...)
}

// SetFallback sets the handler for requests no pattern matches.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.fallback = handler
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.fallback(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
