// Package admin provides the back-office module: list, create, edit and
// delete pages for every resource of the catalog, including the records
// kept under each company.
package admin

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/module"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/routes"
	"github.com/frenchcert/frenchcert/pkg/web"
)

// BasePath is the mount prefix of the admin module.
const BasePath = "/admin"

const layout = "admin.html"

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

//go:embed static/*
var staticFS embed.FS

var (
	dashboardView = web.ViewDef{Route: "/{$}", Template: "dashboard.html", Title: "Dashboard"}
	listView      = web.ViewDef{Template: "list.html"}
	formView      = web.ViewDef{Template: "form.html"}
	deleteView    = web.ViewDef{Template: "delete.html"}
	notFoundView  = web.ViewDef{Template: "404.html", Title: "Not Found"}
	badGateway    = web.ViewDef{Template: "502.html", Title: "Unavailable"}
)

var views = []web.ViewDef{
	dashboardView,
	listView,
	formView,
	deleteView,
	notFoundView,
	badGateway,
}

// Options carries what the admin needs beyond the domain.
type Options struct {
	Pagination pagination.Config
	Settings   resources.Settings
	// MaxFormSize bounds the body of a form post in bytes.
	MaxFormSize int64
	Logger      *slog.Logger
}

// NewModule creates the admin module over the resources of catalog.
func NewModule(domain *resources.Domain, catalog *resources.Catalog, opts Options) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		BasePath,
		views,
	)
	if err != nil {
		return nil, err
	}

	h := newHandler(ts, domain, catalog, opts)
	return module.New(BasePath, h.router()), nil
}

func (h *handler) router() http.Handler {
	r := web.NewRouter()
	r.SetFallback(h.templates.ErrorHandler(layout, notFoundView, http.StatusNotFound))

	r.HandleFunc("GET "+dashboardView.Route, h.dashboard)
	r.Register("", h.groups()...)
	r.HandleFunc("GET /static/", web.DistServer(staticFS, "static", "/static/"))

	return r
}

// groups registers one route group per resource. Company certifications
// and trainings nest below their company.
func (h *handler) groups() []routes.Group {
	var groups []routes.Group
	for _, res := range h.catalog.All() {
		info := res.Info()
		if info.Name != "companies" {
			groups = append(groups, h.group("/"+info.Name, h.topLevel(res)))
			continue
		}

		g := h.group("/"+info.Name, h.topLevel(res), nested...)
		for _, name := range nested {
			g.Children = append(g.Children, h.group("/{company}/"+name, h.nested(name)))
		}
		groups = append(groups, g)
	}
	return groups
}

var nested = []string{"certifications", "trainings"}

func (h *handler) group(prefix string, resolve resolver, children ...string) routes.Group {
	return routes.Group{
		Prefix: prefix,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list(resolve, children)},
			{Method: "POST", Pattern: "", Handler: h.save(resolve)},
			{Method: "GET", Pattern: "/new", Handler: h.edit(resolve)},
			{Method: "GET", Pattern: "/{id}", Handler: h.edit(resolve)},
			{Method: "POST", Pattern: "/{id}", Handler: h.save(resolve)},
			{Method: "GET", Pattern: "/{id}/delete", Handler: h.confirm(resolve)},
			{Method: "POST", Pattern: "/{id}/delete", Handler: h.remove(resolve)},
		},
	}
}
