package pages

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/frenchcert/frenchcert/pkg/query"
)

const FilterPublished = "published"

// Filters contains optional filtering criteria for page listings.
type Filters struct {
	Published *bool
}

// FiltersFromQuery reads published=true|false. Anything else leaves the
// filter unset.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if b, err := strconv.ParseBool(strings.TrimSpace(values.Get(FilterPublished))); err == nil {
		f.Published = &b
	}
	return f
}

// Apply adds the set filters to a query builder as request parameters.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Published != nil {
		b.Set(FilterPublished, strconv.FormatBool(*f.Published))
	}
	return b
}
