package site_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/module"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/web/site"
)

type backend struct {
	mu      sync.Mutex
	queries map[string]string
	routes  map[string]string
	failing map[string]bool
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.queries[r.URL.Path] = r.URL.RawQuery
	failing := b.failing[r.URL.Path]
	b.mu.Unlock()

	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"success":false,"message":"Catalog database unavailable"}`)
		return
	}

	body, ok := b.routes[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success":false,"message":"Not found"}`)
		return
	}
	io.WriteString(w, body)
}

func (b *backend) fail(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing == nil {
		b.failing = make(map[string]bool)
	}
	b.failing[path] = true
}

func (b *backend) query(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[path]
}

func newSite(t *testing.T, routes map[string]string) (http.Handler, *backend) {
	t.Helper()
	b := &backend{queries: make(map[string]string), routes: routes}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := &client.Config{BaseURL: srv.URL + "/api"}
	require.NoError(t, cfg.Finalize(nil))
	c, err := client.New(cfg, nil)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	pages := pagination.Config{DefaultPageSize: 9, MaxPageSize: 50}

	m, err := site.NewModule(resources.NewDomain(c, logger, pages), site.Options{
		Site:       config.SiteConfig{Title: "French Cert", ContactEmail: "contact@frenchcert.fr", Featured: 3},
		Pagination: pages,
		Settings:   resources.Settings{PageSize: 9, Debounce: 400 * time.Millisecond},
		Logger:     logger,
	})
	require.NoError(t, err)

	router := module.NewRouter()
	router.Mount(m)
	return router, b
}

func get(t *testing.T, h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const certificationsPage = `{"success":true,"data":{"certifications":[
	{"_id":"c1","name":"ISO 9001","type":"Audit","method":"On-site","validity_months":36,"description":"<p>Quality <script>x()</script>management</p>","fields":["f1"]}
],"page":2,"pages":3}}`

func TestHome_FeaturedCertifications(t *testing.T) {
	h, b := newSite(t, map[string]string{"/api/certifications": certificationsPage})

	rec := get(t, h, "/site/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ISO 9001")
	assert.Contains(t, b.query("/api/certifications"), "limit=3")
}

func TestHome_BackendDown(t *testing.T) {
	h, _ := newSite(t, nil)

	rec := get(t, h, "/site")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "currently unavailable")
}

func TestCatalog_FiltersAndPagination(t *testing.T) {
	h, b := newSite(t, map[string]string{
		"/api/certifications":            certificationsPage,
		"/api/certifications/types/list": `{"success":true,"data":["Audit","Label"]}`,
		"/api/fields/list":               `{"success":true,"data":[{"_id":"f1","name":"Quality"}]}`,
	})

	rec := get(t, h, "/site/certifications?type=Audit&field=&search=iso&page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	q := b.query("/api/certifications")
	assert.Contains(t, q, "type=Audit")
	assert.Contains(t, q, "search=iso")
	assert.Contains(t, q, "page=2")
	assert.NotContains(t, q, "field=")

	assert.Contains(t, body, `<option value="Audit" selected>Audit</option>`)
	assert.Contains(t, body, `<option value="f1">Quality</option>`)
	assert.Contains(t, body, "Quality management")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, `href="/site/certifications?page=3&amp;search=iso&amp;type=Audit"`)
}

func TestCatalog_LookupFailureKeepsPage(t *testing.T) {
	h, _ := newSite(t, map[string]string{
		"/api/certifications":            certificationsPage,
		"/api/certifications/types/list": `{"success":true,"data":["Audit"]}`,
	})

	rec := get(t, h, "/site/certifications")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ISO 9001")
	assert.Contains(t, body, "Failed to load fields")
	assert.Contains(t, body, `<option value="Audit">Audit</option>`)
}

func TestCatalog_BackendDownShowsError(t *testing.T) {
	h, b := newSite(t, map[string]string{
		"/api/certifications/types/list": `{"success":true,"data":["Audit"]}`,
		"/api/fields/list":               `{"success":true,"data":[{"_id":"f1","name":"Quality"}]}`,
	})
	b.fail("/api/certifications")

	rec := get(t, h, "/site/certifications?type=Audit")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `<p class="error" role="alert">Catalog database unavailable</p>`)
	assert.Contains(t, body, `<p class="notice notice-error" role="status">Catalog database unavailable</p>`)
	assert.Equal(t, 1, strings.Count(body, "notice-error"))
	assert.Contains(t, body, `<option value="Audit" selected>Audit</option>`)
	assert.Contains(t, b.query("/api/certifications"), "type=Audit")
}

func TestCertification_NotFoundRedirectsToCatalog(t *testing.T) {
	h, _ := newSite(t, nil)

	rec := get(t, h, "/site/certifications/missing")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/site/certifications", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	h2, _ := newSite(t, map[string]string{"/api/certifications": certificationsPage})
	rec = get(t, h2, "/site/certifications", cookies...)
	assert.Contains(t, rec.Body.String(), "Certification not found")
}

func TestCertification_Detail(t *testing.T) {
	h, _ := newSite(t, map[string]string{
		"/api/certifications/c1": `{"success":true,"data":{"_id":"c1","name":"ISO 9001","type":"Audit","method":"Remote","validity_months":36,"description":"<p>Quality</p>","fields":["f1"]}}`,
		"/api/fields/list":       `{"success":true,"data":[{"_id":"f1","name":"Quality"}]}`,
		"/api/trainings":         `{"success":true,"data":[{"_id":"t1","title":"Lead Auditor","duration_days":5}]}`,
	})

	rec := get(t, h, "/site/certifications/c1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>ISO 9001 | French Cert</title>")
	assert.Contains(t, body, "<dd>Quality</dd>")
	assert.Contains(t, body, "Lead Auditor (5 days)")
}

func TestPage_UnpublishedIsNotFound(t *testing.T) {
	h, _ := newSite(t, map[string]string{
		"/api/pages/slug/draft":    `{"success":true,"data":{"_id":"p1","title":"Draft","slug":"draft","content":"x","published":false}}`,
		"/api/pages/slug/about-us": `{"success":true,"data":{"_id":"p2","title":"About us","slug":"about-us","content":"<h2>Hi</h2>","published":true}}`,
	})

	assert.Equal(t, http.StatusNotFound, get(t, h, "/site/pages/draft").Code)

	rec := get(t, h, "/site/pages/about-us")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>Hi</h2>")
}

func TestStaticAndFallback(t *testing.T) {
	h, _ := newSite(t, nil)

	rec := get(t, h, "/site/static/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "--accent"))

	assert.Equal(t, http.StatusOK, get(t, h, "/site/favicon.svg").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/site/nowhere").Code)
	assert.Contains(t, get(t, h, "/site/contact").Body.String(), "contact@frenchcert.fr")
}
