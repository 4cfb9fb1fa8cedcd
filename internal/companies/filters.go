package companies

import (
	"net/url"
	"strings"

	"github.com/frenchcert/frenchcert/pkg/query"
)

const (
	FilterCategory = "category"
	FilterCountry  = "country"
	FilterField    = "field"
)

// Filters contains optional filtering criteria for company listings.
type Filters struct {
	Category *string
	Country  *string
	Field    *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Blank values leave a filter unset.
func FiltersFromQuery(values url.Values) Filters {
	get := func(key string) *string {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			return &v
		}
		return nil
	}
	return Filters{
		Category: get(FilterCategory),
		Country:  get(FilterCountry),
		Field:    get(FilterField),
	}
}

// Apply adds the set filters to a query builder as request parameters.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals(FilterCategory, f.Category).
		WhereEquals(FilterCountry, f.Country).
		WhereEquals(FilterField, f.Field)
}
