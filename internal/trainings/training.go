// Package trainings manages training sessions offered around certifications.
package trainings

import "github.com/frenchcert/frenchcert/pkg/client"

type Training struct {
	ID             string      `json:"_id"`
	Title          string      `json:"title"`
	Type           string      `json:"type"`
	DurationDays   int         `json:"duration_days"`
	Price          float64     `json:"price"`
	Description    string      `json:"description"`
	Fields         client.Refs `json:"fields"`
	Certifications client.Refs `json:"certifications"`
}

// DefaultDurationDays is the duration a new training starts with.
const DefaultDurationDays = 2

type Command struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Type           string   `json:"type" validate:"required"`
	DurationDays   int      `json:"duration_days" validate:"gte=1,lte=365"`
	Price          float64  `json:"price" validate:"gte=0"`
	Description    string   `json:"description" validate:"required"`
	Fields         []string `json:"fields" validate:"required,min=1"`
	Certifications []string `json:"certifications"`
}

func CommandOf(t *Training) Command {
	return Command{
		Title:          t.Title,
		Type:           t.Type,
		DurationDays:   t.DurationDays,
		Price:          t.Price,
		Description:    t.Description,
		Fields:         t.Fields.IDs(),
		Certifications: t.Certifications.IDs(),
	}
}
