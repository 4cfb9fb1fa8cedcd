package query_test

import (
	"testing"

	"github.com/frenchcert/frenchcert/pkg/query"
)

func ptr(s string) *string { return &s }

func TestBuilder_Values_Empty(t *testing.T) {
	b := query.NewBuilder("")

	if got := b.Encode(); got != "" {
		t.Errorf("Encode() = %q, want empty", got)
	}
}

func TestBuilder_Page(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		want  string
	}{
		{"both", 2, 10, "limit=10&page=2"},
		{"zero page omitted", 0, 10, "limit=10"},
		{"zero limit omitted", 3, 0, "page=3"},
		{"negative omitted", -1, -5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.NewBuilder("").Page(tt.page, tt.limit).Encode()
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_OmitsEmptyValues(t *testing.T) {
	values := query.NewBuilder("").
		WhereSearch(ptr("")).
		WhereSearch(nil).
		WhereEquals("type", ptr("   ")).
		Set("field", "").
		WhereIn("ids", []string{"", " "}).
		WhereMap(map[string]string{"country": "", "category": ""}).
		Values()

	if len(values) != 0 {
		t.Errorf("Values() = %v, want no params", values)
	}
}

func TestBuilder_KeepsValues(t *testing.T) {
	values := query.NewBuilder("").
		WhereSearch(ptr("ISO")).
		WhereEquals("type", ptr("ISO 9001:2015")).
		WhereMap(map[string]string{"field": "qa", "country": ""}).
		Values()

	if got := values.Get("search"); got != "ISO" {
		t.Errorf("search = %q, want %q", got, "ISO")
	}
	if got := values.Get("type"); got != "ISO 9001:2015" {
		t.Errorf("type = %q, want %q", got, "ISO 9001:2015")
	}
	if got := values.Get("field"); got != "qa" {
		t.Errorf("field = %q, want %q", got, "qa")
	}
	if values.Has("country") {
		t.Error("country should be omitted")
	}
}

func TestBuilder_SetReplaces(t *testing.T) {
	values := query.NewBuilder("").Set("type", "a").Set("type", "b").Values()

	if got := values["type"]; len(got) != 1 || got[0] != "b" {
		t.Errorf("type = %v, want [b]", got)
	}
}

func TestBuilder_WhereIn_Dedupes(t *testing.T) {
	values := query.NewBuilder("").WhereIn("fields", []string{"a", "b", "a", ""}).Values()

	got := values["fields"]
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("fields = %v, want [a b]", got)
	}
}

func TestBuilder_Sort(t *testing.T) {
	tests := []struct {
		name        string
		defaultSort string
		field       string
		descending  bool
		want        string
	}{
		{"no sort", "", "", false, ""},
		{"default ascending", "name", "", false, "name"},
		{"explicit descending", "name", "createdAt", true, "-createdAt"},
		{"default descending", "name", "", true, "-name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.NewBuilder(tt.defaultSort).OrderBy(tt.field, tt.descending).Values().Get("sort")
			if got != tt.want {
				t.Errorf("sort = %q, want %q", got, tt.want)
			}
		})
	}
}
