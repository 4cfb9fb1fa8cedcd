package trainings

import (
	"net/url"
	"strings"

	"github.com/frenchcert/frenchcert/pkg/query"
)

const (
	FilterType          = "type"
	FilterField         = "field"
	FilterCertification = "certification"
)

// Filters contains optional filtering criteria for training listings.
type Filters struct {
	Type          *string
	Field         *string
	Certification *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Blank values leave a filter unset.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := strings.TrimSpace(values.Get(FilterType)); v != "" {
		f.Type = &v
	}
	if v := strings.TrimSpace(values.Get(FilterField)); v != "" {
		f.Field = &v
	}
	if v := strings.TrimSpace(values.Get(FilterCertification)); v != "" {
		f.Certification = &v
	}
	return f
}

// Apply adds the set filters to a query builder as request parameters.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals(FilterType, f.Type).
		WhereEquals(FilterField, f.Field).
		WhereEquals(FilterCertification, f.Certification)
}
