package pages

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/query"
	"github.com/frenchcert/frenchcert/pkg/repository"
)

const (
	basePath    = "/pages"
	defaultSort = "title"
)

type repo struct {
	pages      *client.Resource[Page]
	logger     *slog.Logger
	pagination pagination.Config
}

func New(c *client.Client, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		pages:      client.NewResource[Page](c, basePath),
		logger:     logger.With("system", "pages"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Page], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(defaultSort)
	page.Apply(qb)
	filters.Apply(qb)

	result, err := r.pages.List(ctx, qb.Values())
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Page, error) {
	p, err := r.pages.Find(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return p, nil
}

func (r *repo) FindBySlug(ctx context.Context, slug string) (*Page, error) {
	p, err := r.pages.FindPath(ctx, "slug/"+url.PathEscape(slug))
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return p, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Page, error) {
	cmd.Normalize()
	p, err := r.pages.Create(ctx, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("page created", "id", p.ID, "slug", cmd.Slug)
	return p, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd Command) (*Page, error) {
	cmd.Normalize()
	p, err := r.pages.Update(ctx, id, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("page updated", "id", id, "slug", cmd.Slug)
	return p, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.pages.Delete(ctx, id); err != nil {
		return repository.MapError(err, domainErrors)
	}
	r.logger.Info("page deleted", "id", id)
	return nil
}
