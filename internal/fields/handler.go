package fields

import (
	"log/slog"
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/handlers"
	"github.com/frenchcert/frenchcert/pkg/routes"
)

// Handler exposes field options to browser scripts.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a handler serving the system's read operations.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{sys: sys, logger: logger}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/fields",
		Description: "Field options",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/options", Handler: h.Options},
		},
	}
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.sys.Options(r.Context())
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, options)
}
