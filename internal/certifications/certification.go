// Package certifications manages the certification catalog.
package certifications

import "github.com/frenchcert/frenchcert/pkg/client"

// Certification is one entry of the catalog.
type Certification struct {
	ID             string      `json:"_id"`
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Method         string      `json:"method"`
	ValidityMonths int         `json:"validity_months"`
	Description    string      `json:"description"`
	Fields         client.Refs `json:"fields"`
}

// DefaultValidityMonths is the validity a new certification starts with.
const DefaultValidityMonths = 36

// Command contains the data required to create or update a certification.
type Command struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Type           string   `json:"type" validate:"required"`
	Method         string   `json:"method" validate:"required"`
	ValidityMonths int      `json:"validity_months" validate:"gte=1,lte=120"`
	Description    string   `json:"description" validate:"required"`
	Fields         []string `json:"fields" validate:"required,min=1"`
}

// CommandOf returns the command that would recreate c.
func CommandOf(c *Certification) Command {
	return Command{
		Name:           c.Name,
		Type:           c.Type,
		Method:         c.Method,
		ValidityMonths: c.ValidityMonths,
		Description:    c.Description,
		Fields:         c.Fields.IDs(),
	}
}
