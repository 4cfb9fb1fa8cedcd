// Package resources describes each administrable entity once (columns,
// filters, form fields, defaults and lookups) and instantiates the generic
// list and form controllers for it. The web admin and the terminal console
// both render from these descriptors.
package resources

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/frenchcert/frenchcert/pkg/form"
	"github.com/frenchcert/frenchcert/pkg/listview"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/notify"
)

// Column is one list column.
type Column struct {
	Name  string
	Label string
}

// Filter is one list filter backed by a lookup source.
type Filter struct {
	Name   string
	Label  string
	Source lookup.Source
}

// Row is one rendered list item.
type Row struct {
	ID    string
	Label string
	Cells []string
}

// Info is the static description of a resource.
type Info struct {
	// Name is the URL segment and list noun, e.g. "certifications".
	Name string
	// Title is the plural display name, e.g. "Certifications".
	Title string
	// Singular names one item in messages, e.g. "Certification".
	Singular string
	// Path locates the resource below the admin root, e.g.
	// "companies/c1/certifications" for nested resources.
	Path    string
	Columns []Column
	Filters []Filter
	Fields  []Field
}

// Field returns the form field called name.
func (i Info) Field(name string) (Field, bool) {
	for _, f := range i.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FilterNames returns the filter names in display order.
func (i Info) FilterNames() []string {
	names := make([]string, 0, len(i.Filters))
	for _, f := range i.Filters {
		names = append(names, f.Name)
	}
	return names
}

// ListOptions carries the per-view collaborators of a list.
type ListOptions struct {
	Notifier notify.Notifier
	Logger   *slog.Logger
	OnChange func(ListView)
}

// FormOptions carries the per-view collaborators of a form.
type FormOptions struct {
	Notifier notify.Notifier
	Logger   *slog.Logger
	ReturnTo string
	OnChange func(form.Snapshot)
}

// Resource is a described entity able to build its own controllers.
type Resource interface {
	Info() Info
	NewList(opts ListOptions) List
	// NewForm builds a create form when id is empty and an edit form
	// otherwise.
	NewForm(id string, opts FormOptions) Form
}

// List is a list controller with its items rendered as rows.
type List interface {
	// Mount loads the filter options and the current page concurrently.
	Mount(ctx context.Context) error
	Load(ctx context.Context) error
	SetSearch(term string)
	SetFilter(name, value string)
	SetPage(n int)
	Refresh()
	Reset()
	Delete(ctx context.Context, req listview.DeleteRequest) error
	Restore(search string, filters map[string]string, page int)
	Values() url.Values
	View() ListView
	Close()
}

// ListView is a rendered snapshot of a list.
type ListView struct {
	Rows       []Row
	Loading    bool
	Search     string
	Page       int
	TotalPages int
	Filters    map[string]string
	Options    map[string][]lookup.Option
	Error      string
}

// Empty reports whether the current page has no rows.
func (v ListView) Empty() bool {
	return len(v.Rows) == 0
}

// Form is a form controller independent of its command type.
type Form interface {
	Open(ctx context.Context) error
	Set(name string, value any)
	Value(name string) any
	Bind(name string, e form.Editor)
	RichText(name string) *form.RichText
	Submit(ctx context.Context) error
	Snapshot() form.Snapshot
	Editing() bool
	State() string
}

// Settings are shared by every controller a catalog builds.
type Settings struct {
	PageSize int
	Debounce time.Duration
}
