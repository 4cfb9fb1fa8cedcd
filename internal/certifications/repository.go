package certifications

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
	basePath    = "/certifications"
	typesPath   = "/certifications/types/list"
	methodsPath = "/certifications/methods/list"
	optionsPath = "/certifications/list"
	defaultSort = "name"
)

type repo struct {
	client         *client.Client
	certifications *client.Resource[Certification]
	logger         *slog.Logger
	pagination     pagination.Config
}

// New creates a certification system backed by the REST API.
func New(c *client.Client, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		client:         c,
		certifications: client.NewResource[Certification](c, basePath),
		logger:         logger.With("system", "certifications"),
		pagination:     pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Certification], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(defaultSort)
	page.Apply(qb)
	filters.Apply(qb)

	result, err := r.certifications.List(ctx, qb.Values())
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Certification, error) {
	c, err := r.certifications.Find(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return c, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Certification, error) {
	c, err := r.certifications.Create(ctx, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("certification created", "id", c.ID, "name", cmd.Name)
	return c, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd Command) (*Certification, error) {
	c, err := r.certifications.Update(ctx, id, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("certification updated", "id", id, "name", cmd.Name)
	return c, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.certifications.Delete(ctx, id); err != nil {
		return repository.MapError(err, domainErrors)
	}
	r.logger.Info("certification deleted", "id", id)
	return nil
}

func (r *repo) Types(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, typesPath)
}

func (r *repo) Methods(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, methodsPath)
}

func (r *repo) Options(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, optionsPath)
}

func (r *repo) TypeSource(name string) lookup.Source {
	return r.client.LookupSource(name, "certification types", typesPath)
}

func (r *repo) MethodSource(name string) lookup.Source {
	return r.client.LookupSource(name, "certification methods", methodsPath)
}

func (r *repo) Source(name string) lookup.Source {
	return r.client.LookupSource(name, "certifications", optionsPath)
}
