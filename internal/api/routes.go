package api

import (
	"net/http"

	"github.com/frenchcert/frenchcert/internal/certifications"
	"github.com/frenchcert/frenchcert/internal/fields"
	"github.com/frenchcert/frenchcert/pkg/routes"
)

// registerRoutes mounts the read-only catalog endpoints used by the site scripts.
func registerRoutes(mux *http.ServeMux, runtime *Runtime) {
	certificationsHandler := certifications.NewHandler(runtime.Domain.Certifications, runtime.Logger, runtime.Pagination)
	fieldsHandler := fields.NewHandler(runtime.Domain.Fields, runtime.Logger)

	routes.Register(
		mux,
		"",
		certificationsHandler.Routes(),
		fieldsHandler.Routes(),
	)
}
