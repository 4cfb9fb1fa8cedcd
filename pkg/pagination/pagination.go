package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/frenchcert/frenchcert/pkg/query"
)

// PageRequest represents a request for a page of data with optional search.
type PageRequest struct {
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Search *string `json:"search,omitempty"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = cfg.DefaultPageSize
	}
	if r.Limit > cfg.MaxPageSize {
		r.Limit = cfg.MaxPageSize
	}
}

// Apply adds page, limit and search to an outbound query builder.
func (r PageRequest) Apply(b *query.Builder) *query.Builder {
	return b.Page(r.Page, r.Limit).WhereSearch(r.Search)
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: page, limit, search.
// The result is normalized according to the provided config.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	var search *string
	if s := strings.TrimSpace(values.Get("search")); s != "" {
		search = &s
	}

	req := PageRequest{
		Page:   page,
		Limit:  limit,
		Search: search,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
// It is the one listing envelope used throughout the application.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with page and total pages kept at least 1.
func NewPageResult[T any](data []T, page, totalPages int) PageResult[T] {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Page:       page,
		TotalPages: totalPages,
	}
}

// Empty reports whether the page carries no items.
func (p PageResult[T]) Empty() bool {
	return len(p.Data) == 0
}

// Clamp returns page limited to the range [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Pages returns the page numbers to render around current, at most window wide.
func Pages(current, totalPages, window int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if window < 1 || window > totalPages {
		window = totalPages
	}
	current = Clamp(current, totalPages)

	start := max(current-window/2, 1)
	end := start + window - 1
	if end > totalPages {
		end = totalPages
		start = max(end-window+1, 1)
	}

	pages := make([]int, 0, window)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
