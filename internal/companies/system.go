package companies

import (
	"context"

	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// System defines the interface for company management, including the
// certifications and trainings recorded under each company.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Company], error)

	// Find retrieves a company by ID.
	// Returns ErrNotFound if the company does not exist.
	Find(ctx context.Context, id string) (*Company, error)

	Create(ctx context.Context, cmd Command) (*Company, error)
	Update(ctx context.Context, id string, cmd Command) (*Company, error)
	Delete(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]lookup.Option, error)
	Countries(ctx context.Context) ([]lookup.Option, error)
	CategorySource(name string) lookup.Source
	CountrySource(name string) lookup.Source

	// Certifications lists the certificates held by a company.
	Certifications(ctx context.Context, companyID string, page pagination.PageRequest) (*pagination.PageResult[Certification], error)
	FindCertification(ctx context.Context, companyID, id string) (*Certification, error)
	AddCertification(ctx context.Context, companyID string, cmd CertificationCommand) (*Certification, error)
	UpdateCertification(ctx context.Context, companyID, id string, cmd CertificationCommand) (*Certification, error)
	RemoveCertification(ctx context.Context, companyID, id string) error

	// Trainings lists the trainings completed by a company.
	Trainings(ctx context.Context, companyID string, page pagination.PageRequest) (*pagination.PageResult[Training], error)
	FindTraining(ctx context.Context, companyID, id string) (*Training, error)
	AddTraining(ctx context.Context, companyID string, cmd TrainingCommand) (*Training, error)
	UpdateTraining(ctx context.Context, companyID, id string, cmd TrainingCommand) (*Training, error)
	RemoveTraining(ctx context.Context, companyID, id string) error
}
