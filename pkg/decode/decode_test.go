package decode_test

import (
	"testing"

	"github.com/frenchcert/frenchcert/pkg/decode"
)

type command struct {
	Name        string   `json:"name"`
	Validity    int      `json:"validity"`
	Fields      []string `json:"fields"`
	Description string   `json:"description"`
}

func TestFromMap(t *testing.T) {
	input := map[string]any{
		"name":     "ISO 9001",
		"validity": 36,
		"fields":   []string{"qa", "ops"},
	}

	result, err := decode.FromMap[command](input)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if result.Name != "ISO 9001" {
		t.Errorf("Name = %q, want %q", result.Name, "ISO 9001")
	}
	if result.Validity != 36 {
		t.Errorf("Validity = %d, want %d", result.Validity, 36)
	}
	if len(result.Fields) != 2 {
		t.Errorf("len(Fields) = %d, want 2", len(result.Fields))
	}
}

func TestFromMap_TypeMismatch(t *testing.T) {
	input := map[string]any{"validity": "not a number"}

	if _, err := decode.FromMap[command](input); err == nil {
		t.Error("FromMap() should fail on a type mismatch")
	}
}

func TestToMap_RoundTrip(t *testing.T) {
	original := command{
		Name:        "ISO 14001",
		Validity:    24,
		Fields:      []string{"env"},
		Description: "<p>Environmental <strong>management</strong></p>",
	}

	m, err := decode.ToMap(original)
	if err != nil {
		t.Fatalf("ToMap() error = %v", err)
	}

	if m["name"] != "ISO 14001" {
		t.Errorf("name = %v, want %q", m["name"], "ISO 14001")
	}

	back, err := decode.FromMap[command](m)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if back.Description != original.Description {
		t.Errorf("Description = %q, want %q", back.Description, original.Description)
	}
	if back.Validity != original.Validity {
		t.Errorf("Validity = %d, want %d", back.Validity, original.Validity)
	}
}
