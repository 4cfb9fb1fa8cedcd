package companies

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
	basePath       = "/companies"
	categoriesPath = "/companies/categories/list"
	countriesPath  = "/companies/countries/list"
	defaultSort    = "name"

	certificationsPath = "certifications"
	trainingsPath      = "trainings"
)

type repo struct {
	client     *client.Client
	companies  *client.Resource[Company]
	logger     *slog.Logger
	pagination pagination.Config
}

func New(c *client.Client, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		client:     c,
		companies:  client.NewResource[Company](c, basePath),
		logger:     logger.With("system", "companies"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Company], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(defaultSort)
	page.Apply(qb)
	filters.Apply(qb)

	result, err := r.companies.List(ctx, qb.Values())
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Company, error) {
	c, err := r.companies.Find(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return c, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Company, error) {
	c, err := r.companies.Create(ctx, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("company created", "id", c.ID, "name", cmd.Name)
	return c, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd Command) (*Company, error) {
	c, err := r.companies.Update(ctx, id, cmd)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	r.logger.Info("company updated", "id", id, "name", cmd.Name)
	return c, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.companies.Delete(ctx, id); err != nil {
		return repository.MapError(err, domainErrors)
	}
	r.logger.Info("company deleted", "id", id)
	return nil
}

func (r *repo) Categories(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, categoriesPath)
}

func (r *repo) Countries(ctx context.Context) ([]lookup.Option, error) {
	return r.client.Lookup(ctx, countriesPath)
}

func (r *repo) CategorySource(name string) lookup.Source {
	return r.client.LookupSource(name, "company categories", categoriesPath)
}

func (r *repo) CountrySource(name string) lookup.Source {
	return r.client.LookupSource(name, "countries", countriesPath)
}

func (r *repo) certifications(companyID string) *client.Resource[Certification] {
	return client.Sub[Certification](r.client, basePath, companyID, certificationsPath)
}

func (r *repo) trainings(companyID string) *client.Resource[Training] {
	return client.Sub[Training](r.client, basePath, companyID, trainingsPath)
}

func (r *repo) Certifications(ctx context.Context, companyID string, page pagination.PageRequest) (*pagination.PageResult[Certification], error) {
	page.Normalize(r.pagination)
	qb := page.Apply(query.NewBuilder(""))

	result, err := r.certifications(companyID).List(ctx, qb.Values())
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &result, nil
}

func (r *repo) FindCertification(ctx context.Context, companyID, id string) (*Certification, error) {
	c, err := r.certifications(companyID).Find(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, recordErrors)
	}
	return c, nil
}

func (r *repo) AddCertification(ctx context.Context, companyID string, cmd CertificationCommand) (*Certification, error) {
	c, err := r.certifications(companyID).Create(ctx, cmd)
	if err != nil {
		return nil, repository.MapError(err, recordErrors)
	}
	r.logger.Info("company certification added",
		"company", companyID,
		"certification", cmd.Certification,
		"number", cmd.CertificateNumber,
	)
	return c, nil
}

func (r *repo) UpdateCertification(ctx context.Context, companyID, id string, cmd CertificationCommand) (*Certification, error) {
	c, err := r.certifications(companyID).Update(ctx, id, cmd)
	if err != nil {
		return nil, repository.MapError(err, recordErrors)
	}
	r.logger.Info("company certification updated", "company", companyID, "id", id)
	return c, nil
}

func (r *repo) RemoveCertification(ctx context.Context, companyID, id string) error {
	if err := r.certifications(companyID).Delete(ctx, id); err != nil {
		return repository.MapError(err, recordErrors)
	}
	r.logger.Info("company certification removed", "company", companyID, "id", id)
	return nil
}

func (r *repo) Trainings(ctx context.Context, companyID string, page pagination.PageRequest) (*pagination.PageResult[Training], error) {
	page.Normalize(r.pagination)
	qb := page.Apply(query.NewBuilder(""))

	result, err := r.trainings(companyID).List(ctx, qb.Values())
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &result, nil
}

func (r *repo) FindTraining(ctx context.Context, companyID, id string) (*Training, error) {
	t, err := r.trainings(companyID).Find(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, recordErrors)
	}
	return t, nil
}

func (r *repo) AddTraining(ctx context.Context, companyID string, cmd TrainingCommand) (*Training, error) {
	t, err := r.trainings(companyID).Create(ctx, cmd)
	if err != nil {
		return nil, repository.MapError(err, recordErrors)
	}
	r.logger.Info("company training added", "company", companyID, "training", cmd.Training)
	return t, nil
}

func (r *repo) UpdateTraining(ctx context.Context, companyID, id string, cmd TrainingCommand) (*Training, error) {
	t, err := r.trainings(companyID).Update(ctx, id, cmd)
	if err != nil {
		return nil, repository.MapError(err, recordErrors)
	}
	r.logger.Info("company training updated", "company", companyID, "id", id)
	return t, nil
}

func (r *repo) RemoveTraining(ctx context.Context, companyID, id string) error {
	if err := r.trainings(companyID).Delete(ctx, id); err != nil {
		return repository.MapError(err, recordErrors)
	}
	r.logger.Info("company training removed", "company", companyID, "id", id)
	return nil
}
