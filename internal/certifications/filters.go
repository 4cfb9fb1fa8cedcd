package certifications

import (
	"net/url"
	"strings"

	"github.com/frenchcert/frenchcert/pkg/query"
)

// Filter parameter names.
const (
	FilterType   = "type"
	FilterMethod = "method"
	FilterField  = "field"
)

// Filters contains optional filtering criteria for certification listings.
type Filters struct {
	Type   *string
	Method *string
	Field  *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Blank values leave a filter unset.
func FiltersFromQuery(values url.Values) Filters {
	return Filters{
		Type:   optional(values, FilterType),
		Method: optional(values, FilterMethod),
		Field:  optional(values, FilterField),
	}
}

// Apply adds the set filters to a query builder as request parameters.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals(FilterType, f.Type).
		WhereEquals(FilterMethod, f.Method).
		WhereEquals(FilterField, f.Field)
}

func optional(values url.Values, key string) *string {
	if v := strings.TrimSpace(values.Get(key)); v != "" {
		return &v
	}
	return nil
}
