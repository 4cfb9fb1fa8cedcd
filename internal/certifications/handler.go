package certifications

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/handlers"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/routes"
)

// Handler exposes the read side of the catalog as JSON.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a handler serving the system's read operations.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/certifications",
		Description: "Certification catalog",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/types", Handler: h.options(h.sys.Types)},
			{Method: "GET", Pattern: "/methods", Handler: h.options(h.sys.Methods)},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) options(load func(context.Context) ([]lookup.Option, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := load(r.Context())
		if err != nil {
			handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, options)
	}
}
