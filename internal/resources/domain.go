package resources

import (
	"log/slog"

	"github.com/frenchcert/frenchcert/internal/certifications"
	"github.com/frenchcert/frenchcert/internal/companies"
	"github.com/frenchcert/frenchcert/internal/fields"
	"github.com/frenchcert/frenchcert/internal/pages"
	"github.com/frenchcert/frenchcert/internal/trainings"
	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// Domain holds all domain systems.
type Domain struct {
	Certifications certifications.System
	Companies      companies.System
	Trainings      trainings.System
	Fields         fields.System
	Pages          pages.System
}

// NewDomain creates all domain systems over one REST client.
func NewDomain(c *client.Client, logger *slog.Logger, pagination pagination.Config) *Domain {
	return &Domain{
		Certifications: certifications.New(c, logger, pagination),
		Companies:      companies.New(c, logger, pagination),
		Trainings:      trainings.New(c, logger, pagination),
		Fields:         fields.New(c, logger, pagination),
		Pages:          pages.New(c, logger, pagination),
	}
}
