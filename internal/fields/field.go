// Package fields manages the areas of expertise that certifications,
// trainings and companies are tagged with.
package fields

// Field is one area of expertise.
type Field struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Command contains the data required to create or update a field.
type Command struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

// CommandOf returns the command that would recreate f.
func CommandOf(f *Field) Command {
	return Command{Name: f.Name, Description: f.Description}
}
