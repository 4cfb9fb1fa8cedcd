package main

import (
	"net/http"

	"github.com/frenchcert/frenchcert/internal/api"
	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/infrastructure"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/middleware"
	"github.com/frenchcert/frenchcert/pkg/module"
	"github.com/frenchcert/frenchcert/web/admin"
	"github.com/frenchcert/frenchcert/web/site"
)

type Modules struct {
	API   *module.Module
	Site  *module.Module
	Admin *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	domain := resources.NewDomain(infra.Client, infra.Logger, cfg.Pagination)
	settings := resources.Settings{
		PageSize: cfg.Pagination.DefaultPageSize,
		Debounce: cfg.List.DebounceDuration(),
	}
	catalog := resources.NewCatalog(domain, cfg.Pagination, settings)

	apiModule := api.NewModule(cfg, infra, domain)

	siteModule, err := site.NewModule(domain, site.Options{
		Site:       cfg.Site,
		Pagination: cfg.Pagination,
		Settings:   settings,
		Logger:     infra.Logger.With("module", "site"),
	})
	if err != nil {
		return nil, err
	}
	siteModule.Use(infra.Metrics.Middleware("site"))
	siteModule.Use(middleware.Logger(infra.Logger))

	adminModule, err := admin.NewModule(domain, catalog, admin.Options{
		Pagination:  cfg.Pagination,
		Settings:    settings,
		MaxFormSize: cfg.Server.MaxFormSizeBytes(),
		Logger:      infra.Logger.With("module", "admin"),
	})
	if err != nil {
		return nil, err
	}
	adminModule.Use(infra.Metrics.Middleware("admin"))
	adminModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:   apiModule,
		Site:  siteModule,
		Admin: adminModule,
	}, nil
}

// Prefixes lists the mount prefixes in mount order.
func (m *Modules) Prefixes() []string {
	return []string{m.API.Prefix(), m.Site.Prefix(), m.Admin.Prefix()}
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Site)
	router.Mount(m.Admin)
}

// buildMiddleware wraps the whole router; module middleware runs inside it.
func buildMiddleware() middleware.System {
	mw := middleware.New()
	mw.Use(middleware.RequestID())
	return mw
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, site.BasePath, http.StatusFound)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	if infra.Metrics.Enabled() {
		h := infra.Metrics.Handler()
		router.HandleNative("GET "+cfg.Metrics.Path, h.ServeHTTP)
	}

	return router
}
