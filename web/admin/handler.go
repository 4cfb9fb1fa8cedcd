package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/frenchcert/frenchcert/internal/companies"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/form"
	"github.com/frenchcert/frenchcert/pkg/listview"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/notify"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/web"
)

type handler struct {
	templates *web.TemplateSet
	domain    *resources.Domain
	catalog   *resources.Catalog
	opts      Options
	logger    *slog.Logger
}

func newHandler(ts *web.TemplateSet, domain *resources.Domain, catalog *resources.Catalog, opts Options) *handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxFormSize <= 0 {
		opts.MaxFormSize = 1 << 20
	}
	return &handler{
		templates: ts,
		domain:    domain,
		catalog:   catalog,
		opts:      opts,
		logger:    logger.With("module", "admin"),
	}
}

// parent links a nested resource back to its owner.
type parent struct {
	Name string
	Path string
}

type target struct {
	res    resources.Resource
	parent *parent
}

func (t target) path() string {
	return BasePath + "/" + t.res.Info().Path
}

// resolver finds the resource a request addresses. It writes the response
// itself and reports false when the resource cannot be served.
type resolver func(w http.ResponseWriter, r *http.Request) (target, bool)

func (h *handler) topLevel(res resources.Resource) resolver {
	return func(http.ResponseWriter, *http.Request) (target, bool) {
		return target{res: res}, true
	}
}

func (h *handler) nested(name string) resolver {
	return func(w http.ResponseWriter, r *http.Request) (target, bool) {
		id := r.PathValue("company")
		company, err := h.domain.Companies.Find(r.Context(), id)
		if errors.Is(err, companies.ErrNotFound) {
			h.redirect(w, r, BasePath+"/companies", notify.New(notify.Error, "Company not found"))
			return target{}, false
		}
		if err != nil {
			h.unavailable(w, r, "company unavailable", err)
			return target{}, false
		}

		res, _ := h.catalog.Nested(company.ID, name)
		return target{
			res:    res,
			parent: &parent{Name: company.Name, Path: BasePath + "/companies"},
		}, true
	}
}

type filterView struct {
	Name     string
	Label    string
	Selected string
	Options  []lookup.Option
}

type rowView struct {
	resources.Row
	Href       string
	DeleteHref string
}

type listPage struct {
	Info     resources.Info
	Parent   *parent
	Path     string
	View     resources.ListView
	Rows     []rowView
	Filters  []filterView
	Query    url.Values
	Nested   []string
	Debounce int64
}

type fieldView struct {
	resources.Field
	Value    string
	Selected []string
	Checked  bool
	Options  []lookup.Option
	Error    string
}

type formPage struct {
	Info    resources.Info
	Parent  *parent
	Editing bool
	Action  string
	Cancel  string
	Fields  []fieldView
}

type deletePage struct {
	Info   resources.Info
	Parent *parent
	Label  string
	Action string
	Cancel string
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	infos := make([]resources.Info, 0, len(h.catalog.All()))
	for _, res := range h.catalog.All() {
		infos = append(infos, res.Info())
	}
	h.render(w, r, http.StatusOK, dashboardView, dashboardView.Title, infos, nil)
}

func (h *handler) list(resolve resolver, children []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := resolve(w, r)
		if !ok {
			return
		}
		info := t.res.Info()

		notes := &notify.Recorder{}
		l := t.res.NewList(resources.ListOptions{
			Notifier: notify.Logged(notes, h.logger),
			Logger:   h.logger,
		})
		defer l.Close()

		h.restore(l, info, r.URL.Query())
		// Failures are reported through the notifier and the view's error.
		_ = l.Mount(r.Context())

		view := l.View()
		data := listPage{
			Info:     info,
			Parent:   t.parent,
			Path:     t.path(),
			View:     view,
			Query:    l.Values(),
			Nested:   children,
			Debounce: h.opts.Settings.Debounce.Milliseconds(),
		}
		for _, row := range view.Rows {
			href := data.Path + "/" + url.PathEscape(row.ID)
			q := cloneQuery(data.Query)
			q.Set("label", row.Label)
			data.Rows = append(data.Rows, rowView{
				Row:        row,
				Href:       href,
				DeleteHref: withQuery(href+"/delete", q),
			})
		}
		for _, f := range info.Filters {
			data.Filters = append(data.Filters, filterView{
				Name:     f.Name,
				Label:    f.Label,
				Selected: view.Filters[f.Name],
				Options:  view.Options[f.Name],
			})
		}

		h.render(w, r, http.StatusOK, listView, title(t), data, notes.All())
	}
}

func (h *handler) edit(resolve resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := resolve(w, r)
		if !ok {
			return
		}

		notes := &notify.Recorder{}
		f := h.open(w, r, t, notes)
		if f == nil {
			return
		}
		h.renderForm(w, r, http.StatusOK, t, f, nil, notes)
	}
}

func (h *handler) save(resolve resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := resolve(w, r)
		if !ok {
			return
		}
		if !h.parseForm(w, r) {
			return
		}

		notes := &notify.Recorder{}
		f := h.open(w, r, t, notes)
		if f == nil {
			return
		}

		invalid := make(map[string]string)
		for _, field := range t.res.Info().Fields {
			v, err := field.Parse(r.PostForm[field.Name])
			if err != nil {
				invalid[field.Name] = err.Error()
				continue
			}
			f.Set(field.Name, v)
		}
		if len(invalid) > 0 {
			notes.Enqueue(notify.Error, (&form.ValidationError{Fields: invalid}).First())
			h.renderForm(w, r, http.StatusUnprocessableEntity, t, f, invalid, notes)
			return
		}

		err := f.Submit(r.Context())
		snap := f.Snapshot()
		if snap.State == form.StateNavigating {
			h.redirect(w, r, snap.Target, notes.All()...)
			return
		}

		status := http.StatusUnprocessableEntity
		if !errors.Is(err, form.ErrInvalid) && !errors.Is(err, client.ErrValidation) {
			status = http.StatusBadGateway
		}
		h.renderForm(w, r, status, t, f, nil, notes)
	}
}

func (h *handler) confirm(resolve resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := resolve(w, r)
		if !ok {
			return
		}
		id := r.PathValue("id")
		q := r.URL.Query()

		label := q.Get("label")
		if label == "" {
			label = id
		}
		back := cloneQuery(q)
		back.Del("label")

		data := deletePage{
			Info:   t.res.Info(),
			Parent: t.parent,
			Label:  label,
			Action: withQuery(t.path()+"/"+url.PathEscape(id)+"/delete", q),
			Cancel: withQuery(t.path(), back),
		}
		h.render(w, r, http.StatusOK, deleteView, "Delete "+label, data, nil)
	}
}

func (h *handler) remove(resolve resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := resolve(w, r)
		if !ok {
			return
		}
		if !h.parseForm(w, r) {
			return
		}
		q := r.URL.Query()

		notes := &notify.Recorder{}
		l := t.res.NewList(resources.ListOptions{
			Notifier: notify.Logged(notes, h.logger),
			Logger:   h.logger,
		})
		defer l.Close()
		h.restore(l, t.res.Info(), q)

		err := l.Delete(r.Context(), listview.DeleteRequest{
			ID:        r.PathValue("id"),
			Label:     q.Get("label"),
			Confirmed: r.PostForm.Get("confirm") == "yes",
		})
		if errors.Is(err, listview.ErrNotConfirmed) {
			notes.Enqueue(notify.Info, "Nothing was deleted")
		}

		h.redirect(w, r, withQuery(t.path(), l.Values()), notes.All()...)
	}
}

// open builds the form for the request and opens it. It writes the
// response and returns nil when the form cannot be shown.
func (h *handler) open(w http.ResponseWriter, r *http.Request, t target, notes *notify.Recorder) resources.Form {
	f := t.res.NewForm(r.PathValue("id"), resources.FormOptions{
		Notifier: notify.Logged(notes, h.logger),
		Logger:   h.logger,
		ReturnTo: t.path(),
	})

	err := f.Open(r.Context())
	snap := f.Snapshot()
	switch snap.State {
	case form.StateNavigating:
		h.redirect(w, r, snap.Target, notes.All()...)
		return nil
	case form.StateUnavailable:
		h.logger.Error("form unavailable", "resource", t.res.Info().Path, "error", err)
		h.render(w, r, http.StatusBadGateway, badGateway, badGateway.Title, snap.Error, nil)
		return nil
	}
	return f
}

func (h *handler) renderForm(w http.ResponseWriter, r *http.Request, status int, t target, f resources.Form, invalid map[string]string, notes *notify.Recorder) {
	info := t.res.Info()
	snap := f.Snapshot()

	data := formPage{
		Info:    info,
		Parent:  t.parent,
		Editing: f.Editing(),
		Action:  t.path(),
		Cancel:  t.path(),
	}
	if f.Editing() {
		data.Action += "/" + url.PathEscape(r.PathValue("id"))
	}

	for _, field := range info.Fields {
		v := snap.Values[field.Name]
		fv := fieldView{
			Field:    field,
			Value:    field.Format(v),
			Selected: field.Selected(v),
			Options:  field.Options(snap.Options),
			Error:    snap.Errors[field.Name],
		}
		if b, ok := v.(bool); ok {
			fv.Checked = b
		}
		if field.Multiple() {
			fv.Value = ""
		}
		if msg, ok := invalid[field.Name]; ok {
			fv.Error = msg
			fv.Value = strings.Join(r.PostForm[field.Name], ",")
		}
		data.Fields = append(data.Fields, fv)
	}

	verb := "New "
	if f.Editing() {
		verb = "Edit "
	}
	h.render(w, r, status, formView, verb+info.Singular, data, notes.All())
}

func (h *handler) restore(l resources.List, info resources.Info, q url.Values) {
	filters := make(map[string]string, len(info.Filters))
	for _, name := range info.FilterNames() {
		filters[name] = q.Get(name)
	}
	l.Restore(q.Get("search"), filters, pagination.PageRequestFromQuery(q, h.opts.Pagination).Page)
}

// parseForm bounds and parses the request body. It answers 413 when the
// body exceeds the configured limit.
func (h *handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxFormSize)
	err := r.ParseForm()
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.logger.Warn("form too large", "path", r.URL.Path, "limit", tooLarge.Limit)
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return false
	}
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	return false
}

// redirect carries notes across a 303 in the flash cookie.
func (h *handler) redirect(w http.ResponseWriter, r *http.Request, to string, notes ...notify.Notification) {
	if len(notes) > 0 {
		flash := notify.NewFlash(w, BasePath)
		for _, n := range notes {
			flash.Enqueue(n.Kind, n.Message)
		}
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *handler) unavailable(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "path", r.URL.Path, "error", err)
	h.render(w, r, http.StatusBadGateway, badGateway, badGateway.Title, client.Message(err, ""), nil)
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, view web.ViewDef, title string, data any, notes []notify.Notification) {
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

func title(t target) string {
	if t.parent != nil {
		return t.parent.Name + " / " + t.res.Info().Title
	}
	return t.res.Info().Title
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
