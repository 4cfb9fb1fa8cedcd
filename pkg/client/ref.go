package client

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/frenchcert/frenchcert/pkg/lookup"
)

// Ref is a relation to another entity. The backend sends either the bare id
// or the populated entity; both decode into a Ref. A Ref encodes as its id.
type Ref struct {
	ID   string
	Name string
}

// UnmarshalJSON accepts "id" or {"_id": "...", "name": "..."}.
func (r *Ref) UnmarshalJSON(data []byte) error {
	doc := gjson.ParseBytes(data)
	switch {
	case doc.Type == gjson.String:
		r.ID = doc.String()
	case doc.IsObject():
		r.ID = firstText(doc, "_id", "id")
		r.Name = firstText(doc, "name", "title")
	case doc.Type == gjson.Null:
		*r = Ref{}
	default:
		return fmt.Errorf("decode reference: unexpected %s", doc.Type)
	}
	return nil
}

// MarshalJSON encodes the id only.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Label returns the name when known, else the id.
func (r Ref) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Refs is a list of relations.
type Refs []Ref

// IDs returns the ids in order.
func (rs Refs) IDs() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if r.ID != "" {
			out = append(out, r.ID)
		}
	}
	return out
}

// Labels returns the labels in order, resolving unnamed ids through options.
func (rs Refs) Labels(options []lookup.Option) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if r.Name != "" {
			out = append(out, r.Name)
			continue
		}
		out = append(out, lookup.Label(options, r.ID))
	}
	return out
}

// RefsOf builds Refs from ids.
func RefsOf(ids ...string) Refs {
	out := make(Refs, 0, len(ids))
	for _, id := range ids {
		out = append(out, Ref{ID: id})
	}
	return out
}
