package trainings

import (
	"context"
	"log/slog"

	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/query"
	"github.com/frenchcert/frenchcert/pkg/repository"
)

const (
	basePath    = "/trainings"
	typesPath   = "/trainings/types/list"
	optionsPath = "/trainings/list"
	defaultSort = "title"
)

type repo struct {
	client     *client.Client
	trainings  *client.Resource[Training]
	logger     *slog.Logger
	pagination pagination.Config
}

func New(c *client.Client, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		client:     c,
		trainings:  client.NewResource[Training](c, basePath),
		logger:     logger.With("system", "trainings"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Training], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(defaultSort)
	page.Apply(qb)
	filters.Apply(qb)

	result, err := r.trainings.List(ctx, qb.Values())
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Training, error) {
	t, err := r.trainings.Find(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return t, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Training, error) {
	t, err := r.trainings.Create(ctx, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("training created", "id", t.ID, "title", cmd.Title)
	return t, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd Command) (*Training, error) {
	t, err := r.trainings.Update(ctx, id, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("training updated", "id", id, "title", cmd.Title)
	return t, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.trainings.Delete(ctx, id); err != nil {
		return repository.MapError(err, domainErrors)
	}
	r.logger.Info("training deleted", "id", id)
	return nil
}

func (r *repo) Types(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, typesPath)
}

func (r *repo) Options(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, optionsPath)
}

func (r *repo) TypeSource(name string) lookup.Source {
	return r.client.LookupSource(name, "training types", typesPath)
}

func (r *repo) Source(name string) lookup.Source {
	return r.client.LookupSource(name, "trainings", optionsPath)
}
