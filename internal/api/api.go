// Package api serves the read side of the catalog as JSON to browser
// scripts on the public site.
package api

import (
	"net/http"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/infrastructure"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/middleware"
	"github.com/frenchcert/frenchcert/pkg/module"
)

// BasePath is the mount prefix of the API module.
const BasePath = "/api"

func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure, domain *resources.Domain) *module.Module {
	runtime := NewRuntime(cfg, infra, domain)

	mux := http.NewServeMux()
	registerRoutes(mux, runtime)

	m := module.New(BasePath, mux)
	m.Use(middleware.CORS(&cfg.CORS))
	m.Use(runtime.Metrics.Middleware("api"))
	m.Use(middleware.Logger(runtime.Logger))

	return m
}
