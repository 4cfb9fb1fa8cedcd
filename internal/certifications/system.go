package certifications

import (
	"context"

	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// System defines the interface for certification management.
type System interface {
	// List returns a page of certifications matching the search term and filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Certification], error)

	// Find retrieves a certification by ID.
	// Returns ErrNotFound if the certification does not exist.
	Find(ctx context.Context, id string) (*Certification, error)

	// Create stores a new certification.
	// Returns ErrInvalid when the backend rejects the command.
	Create(ctx context.Context, cmd Command) (*Certification, error)

	// Update modifies an existing certification.
	// Returns ErrNotFound if the certification does not exist.
	Update(ctx context.Context, id string, cmd Command) (*Certification, error)

	// Delete removes a certification.
	// Returns ErrInUse when companies or trainings still reference it.
	Delete(ctx context.Context, id string) error

	Types(ctx context.Context) ([]lookup.Option, error)
	Methods(ctx context.Context) ([]lookup.Option, error)
	Options(ctx context.Context) ([]lookup.Option, error)

	TypeSource(name string) lookup.Source
	MethodSource(name string) lookup.Source
	Source(name string) lookup.Source
}
