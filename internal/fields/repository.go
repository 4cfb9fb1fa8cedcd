package fields

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
	basePath    = "/fields"
	optionsPath = "/fields/list"
	defaultSort = "name"
)

type repo struct {
	client     *client.Client
	fields     *client.Resource[Field]
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a field system backed by the REST API.
func New(c *client.Client, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		client:     c,
		fields:     client.NewResource[Field](c, basePath),
		logger:     logger.With("system", "fields"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Field], error) {
	page.Normalize(r.pagination)
	qb := page.Apply(query.NewBuilder(defaultSort))

	result, err := r.fields.List(ctx, qb.Values())
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Field, error) {
	f, err := r.fields.Find(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return f, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Field, error) {
	f, err := r.fields.Create(ctx, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("field created", "id", f.ID, "name", cmd.Name)
	return f, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd Command) (*Field, error) {
	f, err := r.fields.Update(ctx, id, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("field updated", "id", id, "name", cmd.Name)
	return f, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.fields.Delete(ctx, id); err != nil {
		return repository.MapError(err, domainErrors)
	}
	r.logger.Info("field deleted", "id", id)
	return nil
}

func (r *repo) Options(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, optionsPath)
}

func (r *repo) Source(name string) lookup.Source {
	return r.client.LookupSource(name, "fields", optionsPath)
}
