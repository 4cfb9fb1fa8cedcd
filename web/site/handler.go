package site

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/frenchcert/frenchcert/internal/certifications"
	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/pages"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/internal/trainings"
	"github.com/frenchcert/frenchcert/pkg/listview"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/notify"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/web"
)

type handler struct {
	templates *web.TemplateSet
	domain    *resources.Domain
	opts      Options
	logger    *slog.Logger
}

func newHandler(ts *web.TemplateSet, domain *resources.Domain, opts Options) *handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &handler{
		templates: ts,
		domain:    domain,
		opts:      opts,
		logger:    logger.With("module", "site"),
	}
}

type homeData struct {
	Site     config.SiteConfig
	Featured []certifications.Certification
}

type filterView struct {
	Name     string
	Label    string
	Selected string
	Options  []lookup.Option
}

type catalogData struct {
	State   listview.State[certifications.Certification]
	Filters []filterView
	Query   url.Values
}

type certificationData struct {
	Certification *certifications.Certification
	Fields        []string
	Trainings     []trainings.Training
}

var catalogFilters = []struct {
	name  string
	label string
}{
	{certifications.FilterType, "Type"},
	{certifications.FilterField, "Field"},
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	data := homeData{Site: h.opts.Site}

	res, err := h.domain.Certifications.List(r.Context(),
		pagination.PageRequest{Page: 1, Limit: h.opts.Site.Featured},
		certifications.Filters{},
	)
	if err != nil {
		h.logger.Warn("featured certifications unavailable", "error", err)
	} else {
		data.Featured = res.Data
	}

	h.render(w, r, http.StatusOK, homeView, data)
}

func (h *handler) about(w http.ResponseWriter, r *http.Request) {
	published := true
	res, err := h.domain.Pages.List(r.Context(), pagination.PageRequest{Page: 1}, pages.Filters{Published: &published})

	var data []pages.Page
	if err != nil {
		h.logger.Warn("pages unavailable", "error", err)
	} else {
		data = res.Data
	}
	h.render(w, r, http.StatusOK, aboutView, data)
}

func (h *handler) contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, contactView, h.opts.Site)
}

func (h *handler) catalog(w http.ResponseWriter, r *http.Request) {
	notes := &notify.Recorder{}
	notifier := notify.Logged(notes, h.logger)

	sys := h.domain.Certifications
	list := listview.New(listview.Options[certifications.Certification]{
		Noun:     "certifications",
		Fetch:    resources.FetchWith(h.opts.Pagination, certifications.FiltersFromQuery, sys.List),
		PageSize: h.opts.Settings.PageSize,
		Sort:     "name",
		Notifier: notifier,
		Logger:   h.logger,
	})
	defer list.Close()

	q := r.URL.Query()
	filters := make(map[string]string, len(catalogFilters))
	for _, f := range catalogFilters {
		filters[f.name] = q.Get(f.name)
	}
	list.Restore(q.Get("search"), filters, pagination.PageRequestFromQuery(q, h.opts.Pagination).Page)

	var wg sync.WaitGroup
	wg.Go(func() {
		list.LoadOptions(r.Context(),
			sys.TypeSource(certifications.FilterType),
			h.domain.Fields.Source(certifications.FilterField),
		)
	})
	// Failures are reported through the notifier and the state's error.
	_ = list.Load(r.Context())
	wg.Wait()

	state := list.State()
	data := catalogData{State: state, Query: list.Values()}
	for _, f := range catalogFilters {
		data.Filters = append(data.Filters, filterView{
			Name:     f.name,
			Label:    f.label,
			Selected: state.Filters[f.name],
			Options:  state.Options[f.name],
		})
	}

	h.renderWith(w, r, http.StatusOK, catalogView, catalogView.Title, data, notes.All())
}

func (h *handler) certification(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	cert, err := h.domain.Certifications.Find(r.Context(), id)
	if errors.Is(err, certifications.ErrNotFound) {
		notify.NewFlash(w, BasePath).Enqueue(notify.Error, "Certification not found")
		http.Redirect(w, r, BasePath+"/certifications", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.logger.Error("certification unavailable", "id", id, "error", err)
		h.render(w, r, http.StatusBadGateway, errorViews[1], nil)
		return
	}

	data := certificationData{Certification: cert}

	options, err := h.domain.Fields.Options(r.Context())
	if err != nil {
		h.logger.Warn("field options unavailable", "error", err)
	}
	data.Fields = cert.Fields.Labels(options)

	related, err := h.domain.Trainings.List(r.Context(),
		pagination.PageRequest{Page: 1},
		trainings.Filters{Certification: &cert.ID},
	)
	if err != nil {
		h.logger.Warn("related trainings unavailable", "id", id, "error", err)
	} else {
		data.Trainings = related.Data
	}

	h.renderWith(w, r, http.StatusOK, certificationView, cert.Name, data, nil)
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	p, err := h.domain.Pages.FindBySlug(r.Context(), r.PathValue("slug"))
	switch {
	case errors.Is(err, pages.ErrNotFound), err == nil && !p.Published:
		h.render(w, r, http.StatusNotFound, errorViews[0], nil)
		return
	case err != nil:
		h.logger.Error("page unavailable", "slug", r.PathValue("slug"), "error", err)
		h.render(w, r, http.StatusBadGateway, errorViews[1], nil)
		return
	}
	h.renderWith(w, r, http.StatusOK, pageView, p.Title, p, nil)
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, view web.ViewDef, data any) {
	h.renderWith(w, r, status, view, view.Title, data, nil)
}

func (h *handler) renderWith(w http.ResponseWriter, r *http.Request, status int, view web.ViewDef, title string, data any, notes []notify.Notification) {
	flash := append(notify.ReadFlash(w, r, BasePath), notes...)

	err := h.templates.RenderStatus(w, status, layout, view.Template, web.ViewData{
		Title: title,
		Flash: flash,
		Data:  data,
	})
	if err != nil {
		h.logger.Error("render failed", "template", view.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
