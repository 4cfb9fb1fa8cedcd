package admin_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/module"
	"github.com/frenchcert/frenchcert/pkg/notify"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/web/admin"
)

type call struct {
	method string
	path   string
	query  string
	body   map[string]any
}

type backend struct {
	mu     sync.Mutex
	calls  []call
	routes map[string]string
}

// ServeHTTP answers from routes keyed by "METHOD /path", falling back to
// "/path" for reads.
func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&c.body)
	}
	b.mu.Lock()
	b.calls = append(b.calls, c)
	b.mu.Unlock()

	body, ok := b.routes[r.Method+" "+r.URL.Path]
	if !ok && r.Method == http.MethodGet {
		body, ok = b.routes[r.URL.Path]
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success":false,"message":"Not found"}`)
		return
	}
	io.WriteString(w, body)
}

func (b *backend) find(method, path string) (call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c.method == method && c.path == path {
			return c, true
		}
	}
	return call{}, false
}

func newAdmin(t *testing.T, routes map[string]string) (http.Handler, *backend) {
	t.Helper()
	b := &backend{routes: routes}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := &client.Config{BaseURL: srv.URL + "/api"}
	require.NoError(t, cfg.Finalize(nil))
	c, err := client.New(cfg, nil)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	pages := pagination.Config{DefaultPageSize: 10, MaxPageSize: 50}
	settings := resources.Settings{PageSize: 10, Debounce: 400 * time.Millisecond}
	domain := resources.NewDomain(c, logger, pages)

	m, err := admin.NewModule(domain, resources.NewCatalog(domain, pages, settings), admin.Options{
		Pagination:  pages,
		Settings:    settings,
		MaxFormSize: 4096,
		Logger:      logger,
	})
	require.NoError(t, err)

	router := module.NewRouter()
	router.Mount(m)
	return router, b
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func flash(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == notify.FlashCookie {
			return c
		}
	}
	t.Fatal("no flash cookie")
	return nil
}

var certificationLookups = map[string]string{
	"/api/certifications/types/list":   `{"success":true,"data":["Audit","Label"]}`,
	"/api/certifications/methods/list": `{"success":true,"data":["On-site","Remote"]}`,
	"/api/fields/list":                 `{"success":true,"data":[{"_id":"f1","name":"Quality"}]}`,
}

func with(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

const certificationsPage = `{"success":true,"data":{"certifications":[
	{"_id":"c1","name":"ISO 9001","type":"Audit","method":"On-site","validity_months":36,"description":"<p>Quality</p>","fields":["f1"]}
],"page":2,"pages":3}}`

func TestDashboard(t *testing.T) {
	h, _ := newAdmin(t, nil)

	rec := do(t, h, http.MethodGet, "/admin/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, name := range []string{"certifications", "companies", "trainings", "fields", "pages"} {
		assert.Contains(t, body, `href="/admin/`+name+`/new"`)
	}
}

func TestList_RestoresQueryAndRendersRows(t *testing.T) {
	h, b := newAdmin(t, with(certificationLookups, map[string]string{
		"/api/certifications": certificationsPage,
	}))

	rec := do(t, h, http.MethodGet, "/admin/certifications?type=Audit&method=&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	c, ok := b.find(http.MethodGet, "/api/certifications")
	require.True(t, ok)
	assert.Equal(t, "limit=10&page=2&sort=name&type=Audit", c.query)

	assert.Contains(t, body, "<td>ISO 9001</td>")
	assert.Contains(t, body, "<td>36 months</td>")
	assert.Contains(t, body, "<td>Quality</td>")
	assert.Contains(t, body, `<option value="Audit" selected>Audit</option>`)
	assert.Contains(t, body, `href="/admin/certifications/c1/delete?label=ISO&#43;9001&amp;page=2&amp;type=Audit"`)
	assert.Contains(t, body, `href="/admin/certifications?page=3&amp;type=Audit"`)
	assert.Contains(t, body, `data-debounce="400"`)
}

func TestList_BackendDownShowsError(t *testing.T) {
	h, _ := newAdmin(t, nil)

	rec := do(t, h, http.MethodGet, "/admin/fields", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No Fields found.")
	assert.Contains(t, rec.Body.String(), `role="alert"`)
}

func TestCreate_InvalidFormIssuesNoRequest(t *testing.T) {
	h, b := newAdmin(t, certificationLookups)

	rec := do(t, h, http.MethodPost, "/admin/certifications", url.Values{
		"name":            {"ISO 14001"},
		"validity_months": {"24"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Select at least one field")
	assert.Contains(t, body, `value="ISO 14001"`)

	_, posted := b.find(http.MethodPost, "/api/certifications")
	assert.False(t, posted)
}

func TestCreate_UnparsableNumber(t *testing.T) {
	h, b := newAdmin(t, certificationLookups)

	rec := do(t, h, http.MethodPost, "/admin/certifications", url.Values{
		"name":            {"ISO 14001"},
		"validity_months": {"three years"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validity (months) must be a whole number")

	_, posted := b.find(http.MethodPost, "/api/certifications")
	assert.False(t, posted)
}

func TestCreate_SuccessRedirectsWithFlash(t *testing.T) {
	h, b := newAdmin(t, with(certificationLookups, map[string]string{
		"POST /api/certifications": `{"success":true,"data":{"_id":"c2","name":"ISO 14001"}}`,
		"/api/certifications":      certificationsPage,
	}))

	rec := do(t, h, http.MethodPost, "/admin/certifications", url.Values{
		"name":            {"ISO 14001"},
		"type":            {"Audit"},
		"method":          {"Remote"},
		"validity_months": {"24"},
		"description":     {"<p>Environment</p>"},
		"fields":          {"f1", ""},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/certifications", rec.Header().Get("Location"))

	c, ok := b.find(http.MethodPost, "/api/certifications")
	require.True(t, ok)
	assert.Equal(t, float64(24), c.body["validity_months"])
	assert.Equal(t, []any{"f1"}, c.body["fields"])
	assert.Equal(t, "<p>Environment</p>", c.body["description"])

	rec = do(t, h, http.MethodGet, "/admin/certifications", nil, flash(t, rec))
	assert.Contains(t, rec.Body.String(), "Certification created")
}

func TestCreate_ServerValidationKeepsValues(t *testing.T) {
	h, _ := newAdmin(t, with(certificationLookups, map[string]string{
		"POST /api/certifications": `{"success":false,"message":"Name already exists","errors":{"name":"Name already exists"}}`,
	}))

	rec := do(t, h, http.MethodPost, "/admin/certifications", url.Values{
		"name":            {"ISO 9001"},
		"type":            {"Audit"},
		"method":          {"Remote"},
		"validity_months": {"36"},
		"description":     {"<p>x</p>"},
		"fields":          {"f1"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Name already exists")
	assert.Contains(t, body, `<option value="f1" selected>Quality</option>`)
}

func TestCreate_FormTooLarge(t *testing.T) {
	h, b := newAdmin(t, nil)

	rec := do(t, h, http.MethodPost, "/admin/fields", url.Values{
		"name":        {"Energy"},
		"description": {strings.Repeat("x", 8192)},
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	_, posted := b.find(http.MethodPost, "/api/fields")
	assert.False(t, posted)
}

func TestEdit_LoadsEntity(t *testing.T) {
	h, _ := newAdmin(t, map[string]string{
		"/api/pages/p1": `{"success":true,"data":{"_id":"p1","title":"About us","slug":"about-us","content":"<h2>Hi &amp; welcome</h2>","published":true}}`,
	})

	rec := do(t, h, http.MethodGet, "/admin/pages/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Edit Page")
	assert.Contains(t, body, `action="/admin/pages/p1"`)
	assert.Contains(t, body, `value="about-us"`)
	assert.Contains(t, body, `name="published" value="true" checked`)
	assert.Contains(t, body, "&lt;h2&gt;Hi &amp;amp; welcome&lt;/h2&gt;</textarea>")
}

func TestEdit_NotFoundRedirectsToList(t *testing.T) {
	h, _ := newAdmin(t, nil)

	rec := do(t, h, http.MethodGet, "/admin/trainings/missing", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/trainings", rec.Header().Get("Location"))
	assert.NotNil(t, flash(t, rec))
}

func TestDelete_ConfirmKeepsListState(t *testing.T) {
	h, _ := newAdmin(t, nil)

	rec := do(t, h, http.MethodGet, "/admin/certifications/c1/delete?label=ISO+9001&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>ISO 9001</strong>")
	assert.Contains(t, body, `action="/admin/certifications/c1/delete?label=ISO&#43;9001&amp;page=2"`)
	assert.Contains(t, body, `href="/admin/certifications?page=2"`)
}

func TestDelete_RedirectsToSamePage(t *testing.T) {
	h, b := newAdmin(t, map[string]string{
		"DELETE /api/certifications/c1": `{"success":true}`,
		"/api/certifications":           certificationsPage,
	})

	rec := do(t, h, http.MethodPost, "/admin/certifications/c1/delete?label=ISO+9001&page=2&type=Audit", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/certifications?page=2&type=Audit", rec.Header().Get("Location"))

	_, deleted := b.find(http.MethodDelete, "/api/certifications/c1")
	assert.True(t, deleted)

	rec = do(t, h, http.MethodGet, "/admin/certifications?page=2&type=Audit", nil, flash(t, rec))
	assert.Contains(t, rec.Body.String(), "Deleted ISO 9001")
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	h, b := newAdmin(t, nil)

	rec := do(t, h, http.MethodPost, "/admin/fields/f1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	_, deleted := b.find(http.MethodDelete, "/api/fields/f1")
	assert.False(t, deleted)
}

func TestDelete_FailureIsReported(t *testing.T) {
	h, _ := newAdmin(t, map[string]string{
		"/api/fields": `{"success":true,"data":{"fields":[],"page":1,"pages":1}}`,
	})

	rec := do(t, h, http.MethodPost, "/admin/fields/f1/delete?label=Quality", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(t, h, http.MethodGet, "/admin/fields", nil, flash(t, rec))
	assert.Contains(t, rec.Body.String(), "notice-error")
}

func TestNested_CompanyCertifications(t *testing.T) {
	h, b := newAdmin(t, map[string]string{
		"/api/companies/co1": `{"success":true,"data":{"_id":"co1","name":"Acme"}}`,
		"/api/companies/co1/certifications": `{"success":true,"data":[
			{"_id":"cc1","certification":{"_id":"c1","name":"ISO 9001"},"certificate_number":"FR-001",
			 "issued_at":"2023-02-01T00:00:00.000Z","status":"active"}
		]}`,
	})

	rec := do(t, h, http.MethodGet, "/admin/companies/co1/certifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Acme / Company certifications | French Cert admin</title>")
	assert.Contains(t, body, "<td>FR-001</td>")
	assert.Contains(t, body, "<td>2023-02-01</td>")
	assert.Contains(t, body, `href="/admin/companies/co1/certifications/cc1"`)

	_, ok := b.find(http.MethodGet, "/api/companies/co1/certifications")
	assert.True(t, ok)
}

func TestNested_UnknownCompany(t *testing.T) {
	h, _ := newAdmin(t, nil)

	rec := do(t, h, http.MethodGet, "/admin/companies/nope/trainings/new", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/companies", rec.Header().Get("Location"))
}

func TestStaticAndFallback(t *testing.T) {
	h, _ := newAdmin(t, nil)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/admin/static/admin.css", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/admin/static/admin.js", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/admin/unknown", nil).Code)
}
