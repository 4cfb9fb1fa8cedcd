// Package query builds outbound REST query strings with a fluent API.
// Empty values are never emitted: a filter left blank is omitted entirely
// rather than sent as "name=".
package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

type param struct {
	key    string
	values []string
}

// Builder accumulates query parameters in insertion order.
type Builder struct {
	params      []param
	sortField   string
	descending  bool
	defaultSort string
}

// NewBuilder creates a Builder with an optional default sort field.
func NewBuilder(defaultSort string) *Builder {
	return &Builder{
		params:      make([]param, 0),
		defaultSort: defaultSort,
	}
}

// Page sets the page and limit parameters. Non-positive values are ignored.
func (b *Builder) Page(page, limit int) *Builder {
	if page > 0 {
		b.set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		b.set("limit", strconv.Itoa(limit))
	}
	return b
}

// OrderBy sets the sort field and direction. Empty field keeps the default sort.
func (b *Builder) OrderBy(field string, descending bool) *Builder {
	if field != "" {
		b.sortField = field
	}
	b.descending = descending
	return b
}

// WhereEquals sets key to value. Nil pointers and blank strings are ignored.
func (b *Builder) WhereEquals(key string, value *string) *Builder {
	if value == nil {
		return b
	}
	return b.Set(key, *value)
}

// Set sets key to value after trimming. Blank values are ignored.
func (b *Builder) Set(key, value string) *Builder {
	if v := strings.TrimSpace(value); v != "" {
		b.set(key, v)
	}
	return b
}

// WhereSearch sets the free-text search parameter. Nil or blank search is ignored.
func (b *Builder) WhereSearch(search *string) *Builder {
	return b.WhereEquals("search", search)
}

// WhereIn sets key to every non-blank value. An empty result is ignored.
func (b *Builder) WhereIn(key string, values []string) *Builder {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(kept, v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return b
	}
	b.remove(key)
	b.params = append(b.params, param{key: key, values: kept})
	return b
}

// WhereMap sets every entry of m. Blank values are ignored.
func (b *Builder) WhereMap(m map[string]string) *Builder {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.Set(k, m[k])
	}
	return b
}

// Values returns the accumulated parameters as url.Values.
func (b *Builder) Values() url.Values {
	values := make(url.Values, len(b.params)+1)
	for _, p := range b.params {
		values[p.key] = slices.Clone(p.values)
	}
	if sort := b.buildSort(); sort != "" {
		values.Set("sort", sort)
	}
	return values
}

// Encode returns the URL-encoded query string.
func (b *Builder) Encode() string {
	return b.Values().Encode()
}

func (b *Builder) buildSort() string {
	field := b.sortField
	if field == "" {
		field = b.defaultSort
	}
	if field == "" {
		return ""
	}
	if b.descending {
		return "-" + field
	}
	return field
}

func (b *Builder) set(key, value string) {
	for i := range b.params {
		if b.params[i].key == key {
			b.params[i].values = []string{value}
			return
		}
	}
	b.params = append(b.params, param{key: key, values: []string{value}})
}

func (b *Builder) remove(key string) {
	b.params = slices.DeleteFunc(b.params, func(p param) bool {
		return p.key == key
	})
}
