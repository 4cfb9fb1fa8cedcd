// Package site provides the public website module: marketing pages, the
// certification catalog and CMS pages.
package site

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/module"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/web"
)

// BasePath is the mount prefix of the site module.
const BasePath = "/site"

const layout = "site.html"

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

//go:embed static/*
var staticFS embed.FS

//go:embed public/*
var publicFS embed.FS

var publicFiles = []string{"favicon.svg"}

var (
	homeView          = web.ViewDef{Route: "/{$}", Template: "home.html", Title: "Home"}
	servicesView      = web.ViewDef{Route: "/services", Template: "services.html", Title: "Services"}
	aboutView         = web.ViewDef{Route: "/about", Template: "about.html", Title: "About"}
	contactView       = web.ViewDef{Route: "/contact", Template: "contact.html", Title: "Contact"}
	catalogView       = web.ViewDef{Route: "/certifications", Template: "catalog.html", Title: "Certifications"}
	certificationView = web.ViewDef{Route: "/certifications/{id}", Template: "certification.html", Title: "Certification"}
	pageView          = web.ViewDef{Route: "/pages/{slug}", Template: "page.html", Title: "Page"}
)

var errorViews = []web.ViewDef{
	{Template: "404.html", Title: "Not Found"},
	{Template: "502.html", Title: "Unavailable"},
}

var views = []web.ViewDef{
	homeView,
	servicesView,
	aboutView,
	contactView,
	catalogView,
	certificationView,
	pageView,
}

// Options carries what the site needs beyond the domain.
type Options struct {
	Site       config.SiteConfig
	Pagination pagination.Config
	Settings   resources.Settings
	Logger     *slog.Logger
}

// NewModule creates the site module.
func NewModule(domain *resources.Domain, opts Options) (*module.Module, error) {
	all := append(append([]web.ViewDef{}, views...), errorViews...)
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		BasePath,
		all,
	)
	if err != nil {
		return nil, err
	}

	h := newHandler(ts, domain, opts)
	return module.New(BasePath, h.router()), nil
}

func (h *handler) router() http.Handler {
	r := web.NewRouter()
	r.SetFallback(h.templates.ErrorHandler(layout, errorViews[0], http.StatusNotFound))

	r.HandleFunc("GET "+homeView.Route, h.home)
	r.HandleFunc("GET "+servicesView.Route, h.templates.PageHandler(layout, servicesView))
	r.HandleFunc("GET "+aboutView.Route, h.about)
	r.HandleFunc("GET "+contactView.Route, h.contact)
	r.HandleFunc("GET "+catalogView.Route, h.catalog)
	r.HandleFunc("GET "+certificationView.Route, h.certification)
	r.HandleFunc("GET "+pageView.Route, h.page)

	r.HandleFunc("GET /static/", web.DistServer(staticFS, "static", "/static/"))
	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r
}
