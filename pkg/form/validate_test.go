package form_test

import (
	"errors"
	"testing"

	"github.com/frenchcert/frenchcert/pkg/form"
)

type companyCommand struct {
	Name     string   `json:"name" validate:"required"`
	Website  string   `json:"website" validate:"omitempty,url"`
	Category string   `json:"category" validate:"required,oneof=Industry Services"`
	Fields   []string `json:"fields" validate:"required,min=1"`
	Validity int      `json:"validity_months" validate:"gte=1,lte=120"`
}

func TestValidate_Messages(t *testing.T) {
	cmd := companyCommand{
		Website:  "not a url",
		Category: "Other",
		Validity: 0,
	}

	err := form.Validate(cmd, map[string]string{"fields": "field"})
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("Validate() error = %v, want ErrInvalid", err)
	}

	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error type = %T", err)
	}

	want := map[string]string{
		"name":            "Name is required",
		"website":         "Website must be a valid URL",
		"category":        "Category must be one of: Industry, Services",
		"fields":          "Select at least one field",
		"validity_months": "Validity months must be at least 1",
	}
	for field, msg := range want {
		if got := verr.Fields[field]; got != msg {
			t.Errorf("Fields[%q] = %q, want %q", field, got, msg)
		}
	}

	if got := verr.First(); got != "Category must be one of: Industry, Services" {
		t.Errorf("First() = %q", got)
	}
}

func TestValidate_Valid(t *testing.T) {
	cmd := companyCommand{
		Name:     "Acme",
		Category: "Industry",
		Fields:   []string{"f1"},
		Validity: 36,
	}
	if err := form.Validate(cmd, nil); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRichText_AttachShowsCurrentContent(t *testing.T) {
	rt := &form.RichText{}
	rt.Push("<p>a</p>")

	var shown string
	rt.Attach(form.EditorFunc(func(s string) { shown = s }))
	if shown != "<p>a</p>" {
		t.Errorf("shown = %q, want %q", shown, "<p>a</p>")
	}

	rt.Edit("<p>b</p>")
	if shown != "<p>a</p>" {
		t.Errorf("Edit() wrote back to the editor: %q", shown)
	}
	if rt.Content() != "<p>b</p>" {
		t.Errorf("Content() = %q", rt.Content())
	}
}
