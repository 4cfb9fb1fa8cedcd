package pages

import (
	"context"

	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// System defines the interface for CMS page management.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Page], error)
	Find(ctx context.Context, id string) (*Page, error)

	// FindBySlug retrieves a page by its slug.
	// Returns ErrNotFound if no page carries the slug.
	FindBySlug(ctx context.Context, slug string) (*Page, error)

	// Create stores a new page. A blank slug is derived from the title.
	Create(ctx context.Context, cmd Command) (*Page, error)
	Update(ctx context.Context, id string, cmd Command) (*Page, error)
	Delete(ctx context.Context, id string) error
}
