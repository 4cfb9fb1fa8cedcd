package resources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/frenchcert/frenchcert/internal/certifications"
	"github.com/frenchcert/frenchcert/internal/companies"
	"github.com/frenchcert/frenchcert/internal/fields"
	"github.com/frenchcert/frenchcert/internal/pages"
	"github.com/frenchcert/frenchcert/internal/trainings"
	"github.com/frenchcert/frenchcert/pkg/form"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/web"
)

// Catalog holds the descriptors of every administrable resource.
type Catalog struct {
	domain     *Domain
	pagination pagination.Config
	settings   Settings
	resources  []Resource
}

// NewCatalog describes every top-level resource of domain.
func NewCatalog(domain *Domain, pagination pagination.Config, settings Settings) *Catalog {
	c := &Catalog{domain: domain, pagination: pagination, settings: settings}
	c.resources = []Resource{
		c.certifications(),
		c.companies(),
		c.trainings(),
		c.fields(),
		c.pages(),
	}
	return c
}

// All returns the top-level resources in menu order.
func (c *Catalog) All() []Resource {
	return c.resources
}

// Names returns the top-level resource names in menu order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.resources))
	for _, r := range c.resources {
		names = append(names, r.Info().Name)
	}
	return names
}

// Get returns the top-level resource called name.
func (c *Catalog) Get(name string) (Resource, bool) {
	for _, r := range c.resources {
		if r.Info().Name == name {
			return r, true
		}
	}
	return nil, false
}

// Nested returns a resource recorded under one company: "certifications"
// or "trainings".
func (c *Catalog) Nested(companyID, name string) (Resource, bool) {
	switch name {
	case "certifications":
		return c.companyCertifications(companyID), true
	case "trainings":
		return c.companyTrainings(companyID), true
	default:
		return nil, false
	}
}

func (c *Catalog) certifications() Resource {
	sys := c.domain.Certifications
	fieldSlot := c.domain.Fields.Source(certifications.FilterField)

	return Define(Definition[certifications.Certification, certifications.Command]{
		Info: Info{
			Name:     "certifications",
			Title:    "Certifications",
			Singular: "Certification",
			Path:     "certifications",
			Columns: []Column{
				{Name: "name", Label: "Name"},
				{Name: "type", Label: "Type"},
				{Name: "method", Label: "Method"},
				{Name: "validity_months", Label: "Validity"},
				{Name: "fields", Label: "Fields"},
			},
			Filters: []Filter{
				{Name: certifications.FilterType, Label: "Type", Source: sys.TypeSource(certifications.FilterType)},
				{Name: certifications.FilterMethod, Label: "Method", Source: sys.MethodSource(certifications.FilterMethod)},
				{Name: certifications.FilterField, Label: "Field", Source: fieldSlot},
			},
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: KindText, Required: true},
				{Name: "type", Label: "Type", Kind: KindSelect, Required: true, Source: "types"},
				{Name: "method", Label: "Method", Kind: KindSelect, Required: true, Source: "methods"},
				{Name: "validity_months", Label: "Validity (months)", Kind: KindNumber, Required: true},
				{Name: "fields", Label: "Fields", Kind: KindMulti, Required: true, Source: "fields"},
				{Name: "description", Label: "Description", Kind: KindRichText, Required: true},
			},
		},
		Sort: "name",
		Defaults: form.Values{
			"validity_months": certifications.DefaultValidityMonths,
			"fields":          []string{},
		},
		Labels: map[string]string{"fields": "field", "validity_months": "Validity"},
		Lookups: []lookup.Source{
			sys.TypeSource("types"),
			sys.MethodSource("methods"),
			c.domain.Fields.Source("fields"),
		},
		Row: func(item certifications.Certification, options map[string][]lookup.Option) Row {
			return Row{
				ID:    item.ID,
				Label: item.Name,
				Cells: []string{
					item.Name,
					item.Type,
					item.Method,
					months(item.ValidityMonths),
					strings.Join(item.Fields.Labels(options[certifications.FilterField]), ", "),
				},
			}
		},
		Fetch:  FetchWith(c.pagination, certifications.FiltersFromQuery, sys.List),
		Remove: sys.Delete,
		Load:   loadWith(sys.Find, certifications.CommandOf),
		Save:   saveWith(sys.Create, sys.Update),
	}, c.settings)
}

func (c *Catalog) companies() Resource {
	sys := c.domain.Companies

	return Define(Definition[companies.Company, companies.Command]{
		Info: Info{
			Name:     "companies",
			Title:    "Companies",
			Singular: "Company",
			Path:     "companies",
			Columns: []Column{
				{Name: "name", Label: "Name"},
				{Name: "category", Label: "Category"},
				{Name: "country", Label: "Country"},
				{Name: "city", Label: "City"},
				{Name: "fields", Label: "Fields"},
			},
			Filters: []Filter{
				{Name: companies.FilterCategory, Label: "Category", Source: sys.CategorySource(companies.FilterCategory)},
				{Name: companies.FilterCountry, Label: "Country", Source: sys.CountrySource(companies.FilterCountry)},
				{Name: companies.FilterField, Label: "Field", Source: c.domain.Fields.Source(companies.FilterField)},
			},
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: KindText, Required: true},
				{Name: "category", Label: "Category", Kind: KindSelect, Required: true, Source: "categories"},
				{Name: "country", Label: "Country", Kind: KindSelect, Required: true, Source: "countries"},
				{Name: "city", Label: "City", Kind: KindText},
				{Name: "website", Label: "Website", Kind: KindText, Help: "https://..."},
				{Name: "fields", Label: "Fields", Kind: KindMulti, Required: true, Source: "fields"},
				{Name: "description", Label: "Description", Kind: KindRichText, Required: true},
			},
		},
		Sort:     "name",
		Defaults: form.Values{"fields": []string{}},
		Labels:   map[string]string{"fields": "field"},
		Lookups: []lookup.Source{
			sys.CategorySource("categories"),
			sys.CountrySource("countries"),
			c.domain.Fields.Source("fields"),
		},
		Row: func(item companies.Company, options map[string][]lookup.Option) Row {
			return Row{
				ID:    item.ID,
				Label: item.Name,
				Cells: []string{
					item.Name,
					item.Category,
					item.Country,
					item.City,
					strings.Join(item.Fields.Labels(options[companies.FilterField]), ", "),
				},
			}
		},
		Fetch:  FetchWith(c.pagination, companies.FiltersFromQuery, sys.List),
		Remove: sys.Delete,
		Load:   loadWith(sys.Find, companies.CommandOf),
		Save:   saveWith(sys.Create, sys.Update),
	}, c.settings)
}

func (c *Catalog) trainings() Resource {
	sys := c.domain.Trainings

	return Define(Definition[trainings.Training, trainings.Command]{
		Info: Info{
			Name:     "trainings",
			Title:    "Trainings",
			Singular: "Training",
			Path:     "trainings",
			Columns: []Column{
				{Name: "title", Label: "Title"},
				{Name: "type", Label: "Type"},
				{Name: "duration_days", Label: "Duration"},
				{Name: "price", Label: "Price"},
				{Name: "certifications", Label: "Certifications"},
			},
			Filters: []Filter{
				{Name: trainings.FilterType, Label: "Type", Source: sys.TypeSource(trainings.FilterType)},
				{Name: trainings.FilterField, Label: "Field", Source: c.domain.Fields.Source(trainings.FilterField)},
				{Name: trainings.FilterCertification, Label: "Certification", Source: c.domain.Certifications.Source(trainings.FilterCertification)},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText, Required: true},
				{Name: "type", Label: "Type", Kind: KindSelect, Required: true, Source: "types"},
				{Name: "duration_days", Label: "Duration (days)", Kind: KindNumber, Required: true},
				{Name: "price", Label: "Price (EUR)", Kind: KindDecimal},
				{Name: "fields", Label: "Fields", Kind: KindMulti, Required: true, Source: "fields"},
				{Name: "certifications", Label: "Certifications", Kind: KindMulti, Source: "certifications"},
				{Name: "description", Label: "Description", Kind: KindRichText, Required: true},
			},
		},
		Sort: "title",
		Defaults: form.Values{
			"duration_days":  trainings.DefaultDurationDays,
			"fields":         []string{},
			"certifications": []string{},
		},
		Labels: map[string]string{"fields": "field", "duration_days": "Duration"},
		Lookups: []lookup.Source{
			sys.TypeSource("types"),
			c.domain.Fields.Source("fields"),
			c.domain.Certifications.Source("certifications"),
		},
		Row: func(item trainings.Training, options map[string][]lookup.Option) Row {
			return Row{
				ID:    item.ID,
				Label: item.Title,
				Cells: []string{
					item.Title,
					item.Type,
					days(item.DurationDays),
					price(item.Price),
					strings.Join(item.Certifications.Labels(options[trainings.FilterCertification]), ", "),
				},
			}
		},
		Fetch:  FetchWith(c.pagination, trainings.FiltersFromQuery, sys.List),
		Remove: sys.Delete,
		Load:   loadWith(sys.Find, trainings.CommandOf),
		Save:   saveWith(sys.Create, sys.Update),
	}, c.settings)
}

func (c *Catalog) fields() Resource {
	sys := c.domain.Fields

	return Define(Definition[fields.Field, fields.Command]{
		Info: Info{
			Name:     "fields",
			Title:    "Fields",
			Singular: "Field",
			Path:     "fields",
			Columns: []Column{
				{Name: "name", Label: "Name"},
				{Name: "description", Label: "Description"},
			},
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: KindText, Required: true},
				{Name: "description", Label: "Description", Kind: KindText},
			},
		},
		Sort: "name",
		Row: func(item fields.Field, _ map[string][]lookup.Option) Row {
			return Row{
				ID:    item.ID,
				Label: item.Name,
				Cells: []string{item.Name, web.Excerpt(item.Description, 80)},
			}
		},
		Fetch: FetchWith(c.pagination, func(url.Values) struct{} { return struct{}{} },
			func(ctx context.Context, page pagination.PageRequest, _ struct{}) (*pagination.PageResult[fields.Field], error) {
				return sys.List(ctx, page)
			}),
		Remove: sys.Delete,
		Load:   loadWith(sys.Find, fields.CommandOf),
		Save:   saveWith(sys.Create, sys.Update),
	}, c.settings)
}

func (c *Catalog) pages() Resource {
	sys := c.domain.Pages
	published := lookup.Source{
		Name:  pages.FilterPublished,
		Label: "publication states",
		Load: func(context.Context) ([]lookup.Option, error) {
			return []lookup.Option{{Value: "true", Label: "Published"}, {Value: "false", Label: "Draft"}}, nil
		},
	}

	return Define(Definition[pages.Page, pages.Command]{
		Info: Info{
			Name:     "pages",
			Title:    "Pages",
			Singular: "Page",
			Path:     "pages",
			Columns: []Column{
				{Name: "title", Label: "Title"},
				{Name: "slug", Label: "Slug"},
				{Name: "published", Label: "Status"},
			},
			Filters: []Filter{
				{Name: pages.FilterPublished, Label: "Status", Source: published},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText, Required: true},
				{Name: "slug", Label: "Slug", Kind: KindText, Help: "Derived from the title when left blank"},
				{Name: "published", Label: "Published", Kind: KindCheckbox},
				{Name: "content", Label: "Content", Kind: KindRichText, Required: true},
			},
		},
		Sort:     "title",
		Defaults: form.Values{"published": false},
		Row: func(item pages.Page, _ map[string][]lookup.Option) Row {
			status := "Draft"
			if item.Published {
				status = "Published"
			}
			return Row{ID: item.ID, Label: item.Title, Cells: []string{item.Title, item.Slug, status}}
		},
		Fetch:  FetchWith(c.pagination, pages.FiltersFromQuery, sys.List),
		Remove: sys.Delete,
		Load:   loadWith(sys.Find, pages.CommandOf),
		Save:   saveWith(sys.Create, sys.Update),
	}, c.settings)
}

func (c *Catalog) companyCertifications(companyID string) Resource {
	sys := c.domain.Companies

	return Define(Definition[companies.Certification, companies.CertificationCommand]{
		Info: Info{
			Name:     "certifications",
			Title:    "Company certifications",
			Singular: "Company certification",
			Path:     "companies/" + url.PathEscape(companyID) + "/certifications",
			Columns: []Column{
				{Name: "certification", Label: "Certification"},
				{Name: "certificate_number", Label: "Number"},
				{Name: "issued_at", Label: "Issued"},
				{Name: "expires_at", Label: "Expires"},
				{Name: "status", Label: "Status"},
			},
			Fields: []Field{
				{Name: "certification", Label: "Certification", Kind: KindSelect, Required: true, Source: "certifications"},
				{Name: "certificate_number", Label: "Certificate number", Kind: KindText, Required: true},
				{Name: "issued_at", Label: "Issued at", Kind: KindDate, Required: true},
				{Name: "expires_at", Label: "Expires at", Kind: KindDate},
				{Name: "status", Label: "Status", Kind: KindSelect, Required: true, Choices: choices(companies.Statuses...)},
			},
		},
		Defaults: form.Values{"status": companies.StatusActive},
		Lookups:  []lookup.Source{c.domain.Certifications.Source("certifications")},
		Row: func(item companies.Certification, _ map[string][]lookup.Option) Row {
			cmd := companies.CertificationCommandOf(&item)
			return Row{
				ID:    item.ID,
				Label: item.Certification.Label() + " " + item.CertificateNumber,
				Cells: []string{
					item.Certification.Label(),
					item.CertificateNumber,
					cmd.IssuedAt,
					cmd.ExpiresAt,
					item.Status,
				},
			}
		},
		Fetch: func(ctx context.Context, params url.Values) (pagination.PageResult[companies.Certification], error) {
			res, err := sys.Certifications(ctx, companyID, pagination.PageRequestFromQuery(params, c.pagination))
			if err != nil {
				return pagination.PageResult[companies.Certification]{}, err
			}
			return *res, nil
		},
		Remove: func(ctx context.Context, id string) error {
			return sys.RemoveCertification(ctx, companyID, id)
		},
		Load: loadWith(func(ctx context.Context, id string) (*companies.Certification, error) {
			return sys.FindCertification(ctx, companyID, id)
		}, companies.CertificationCommandOf),
		Save: func(ctx context.Context, id string, cmd companies.CertificationCommand) error {
			var err error
			if id == "" {
				_, err = sys.AddCertification(ctx, companyID, cmd)
			} else {
				_, err = sys.UpdateCertification(ctx, companyID, id, cmd)
			}
			return err
		},
	}, c.settings)
}

func (c *Catalog) companyTrainings(companyID string) Resource {
	sys := c.domain.Companies

	return Define(Definition[companies.Training, companies.TrainingCommand]{
		Info: Info{
			Name:     "trainings",
			Title:    "Company trainings",
			Singular: "Company training",
			Path:     "companies/" + url.PathEscape(companyID) + "/trainings",
			Columns: []Column{
				{Name: "training", Label: "Training"},
				{Name: "completed_at", Label: "Completed"},
				{Name: "attendees", Label: "Attendees"},
			},
			Fields: []Field{
				{Name: "training", Label: "Training", Kind: KindSelect, Required: true, Source: "trainings"},
				{Name: "completed_at", Label: "Completed at", Kind: KindDate, Required: true},
				{Name: "attendees", Label: "Attendees", Kind: KindNumber, Required: true},
			},
		},
		Defaults: form.Values{"attendees": 1},
		Lookups:  []lookup.Source{c.domain.Trainings.Source("trainings")},
		Row: func(item companies.Training, _ map[string][]lookup.Option) Row {
			return Row{
				ID:    item.ID,
				Label: item.Training.Label(),
				Cells: []string{
					item.Training.Label(),
					companies.TrainingCommandOf(&item).CompletedAt,
					strconv.Itoa(item.Attendees),
				},
			}
		},
		Fetch: func(ctx context.Context, params url.Values) (pagination.PageResult[companies.Training], error) {
			res, err := sys.Trainings(ctx, companyID, pagination.PageRequestFromQuery(params, c.pagination))
			if err != nil {
				return pagination.PageResult[companies.Training]{}, err
			}
			return *res, nil
		},
		Remove: func(ctx context.Context, id string) error {
			return sys.RemoveTraining(ctx, companyID, id)
		},
		Load: loadWith(func(ctx context.Context, id string) (*companies.Training, error) {
			return sys.FindTraining(ctx, companyID, id)
		}, companies.TrainingCommandOf),
		Save: func(ctx context.Context, id string, cmd companies.TrainingCommand) error {
			var err error
			if id == "" {
				_, err = sys.AddTraining(ctx, companyID, cmd)
			} else {
				_, err = sys.UpdateTraining(ctx, companyID, id, cmd)
			}
			return err
		},
	}, c.settings)
}

func months(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func price(p float64) string {
	if p == 0 {
		return "-"
	}
	return strconv.FormatFloat(p, 'f', 2, 64) + " EUR"
}
