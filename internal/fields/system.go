package fields

import (
	"context"

	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// System defines the interface for field management.
type System interface {
	// List returns a page of fields matching the search term.
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Field], error)

	// Find retrieves a field by ID.
	// Returns ErrNotFound if the field does not exist.
	Find(ctx context.Context, id string) (*Field, error)

	Create(ctx context.Context, cmd Command) (*Field, error)
	Update(ctx context.Context, id string, cmd Command) (*Field, error)

	// Delete removes a field.
	// Returns ErrInUse when certifications, trainings or companies still
	// reference it.
	Delete(ctx context.Context, id string) error

	// Options returns every field as a selectable option.
	Options(ctx context.Context) ([]lookup.Option, error)

	// Source returns a lookup source for field options filling the named slot.
	Source(name string) lookup.Source
}
