// Package companies manages certified companies and their nested
// certification and training records.
package companies

import (
	"time"

	"github.com/frenchcert/frenchcert/pkg/client"
)

type Company struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Country     string      `json:"country"`
	City        string      `json:"city"`
	Website     string      `json:"website"`
	Description string      `json:"description"`
	Fields      client.Refs `json:"fields"`
}

type Command struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Category    string   `json:"category" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	City        string   `json:"city" validate:"max=120"`
	Website     string   `json:"website" validate:"omitempty,url"`
	Description string   `json:"description" validate:"required"`
	Fields      []string `json:"fields" validate:"required,min=1"`
}

func CommandOf(c *Company) Command {
	return Command{
		Name:        c.Name,
		Category:    c.Category,
		Country:     c.Country,
		City:        c.City,
		Website:     c.Website,
		Description: c.Description,
		Fields:      c.Fields.IDs(),
	}
}

// Certification statuses.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusSuspended = "suspended"
)

// Statuses lists the certification statuses in display order.
var Statuses = []string{StatusActive, StatusExpired, StatusSuspended}

// DateLayout is the wire and form layout of calendar dates.
const DateLayout = time.DateOnly

// Certification is a certificate held by a company.
type Certification struct {
	ID                string     `json:"_id"`
	Certification     client.Ref `json:"certification"`
	CertificateNumber string     `json:"certificate_number"`
	IssuedAt          string     `json:"issued_at"`
	ExpiresAt         string     `json:"expires_at"`
	Status            string     `json:"status"`
}

// Expired reports whether the certificate expiry date is before now.
func (c Certification) Expired(now time.Time) bool {
	exp, err := time.Parse(DateLayout, trimDate(c.ExpiresAt))
	if err != nil {
		return false
	}
	return exp.Before(now.Truncate(24 * time.Hour))
}

type CertificationCommand struct {
	Certification     string `json:"certification" validate:"required"`
	CertificateNumber string `json:"certificate_number" validate:"required,max=80"`
	IssuedAt          string `json:"issued_at" validate:"required,datetime=2006-01-02"`
	ExpiresAt         string `json:"expires_at" validate:"omitempty,datetime=2006-01-02"`
	Status            string `json:"status" validate:"required,oneof=active expired suspended"`
}

func CertificationCommandOf(c *Certification) CertificationCommand {
	return CertificationCommand{
		Certification:     c.Certification.ID,
		CertificateNumber: c.CertificateNumber,
		IssuedAt:          trimDate(c.IssuedAt),
		ExpiresAt:         trimDate(c.ExpiresAt),
		Status:            c.Status,
	}
}

// Training is a training session a company completed.
type Training struct {
	ID          string     `json:"_id"`
	Training    client.Ref `json:"training"`
	CompletedAt string     `json:"completed_at"`
	Attendees   int        `json:"attendees"`
}

type TrainingCommand struct {
	Training    string `json:"training" validate:"required"`
	CompletedAt string `json:"completed_at" validate:"required,datetime=2006-01-02"`
	Attendees   int    `json:"attendees" validate:"gte=1"`
}

func TrainingCommandOf(t *Training) TrainingCommand {
	return TrainingCommand{
		Training:    t.Training.ID,
		CompletedAt: trimDate(t.CompletedAt),
		Attendees:   t.Attendees,
	}
}

// trimDate reduces an ISO timestamp such as "2024-03-01T00:00:00.000Z"
// to its date part.
func trimDate(s string) string {
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		return s[:len(DateLayout)]
	}
	return s
}
