package trainings

import (
	"context"

	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// System defines the interface for training management.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Training], error)
	Find(ctx context.Context, id string) (*Training, error)
	Create(ctx context.Context, cmd Command) (*Training, error)
	Update(ctx context.Context, id string, cmd Command) (*Training, error)

	// Delete removes a training.
	// Returns ErrInUse when companies still record it.
	Delete(ctx context.Context, id string) error

	Types(ctx context.Context) ([]lookup.Option, error)
	Options(ctx context.Context) ([]lookup.Option, error)
	TypeSource(name string) lookup.Source
	Source(name string) lookup.Source
}
