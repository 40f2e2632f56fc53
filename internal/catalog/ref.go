// Package catalog holds the small types shared by every resource package.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref points at another document. The backend sends either the bare id or
// the populated document, depending on the endpoint.
type Ref struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

func ID(id string) Ref {
	return Ref{ID: id}
}

// Populated reports whether more than the id is known.
func (r Ref) Populated() bool {
	return r.Name != "" || r.Slug != "" || r.Image != ""
}

// Label is the text to show for the reference.
func (r Ref) Label() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.ID != "":
		return r.ID
	default:
		return "—"
	}
}

type refObject Ref

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = Ref{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	case len(b) > 0 && b[0] == '{':
		var obj refObject
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*r = Ref(obj)
		return nil
	default:
		return fmt.Errorf("catalog: cannot decode reference from %s", b)
	}
}

// MarshalJSON writes the bare id unless the reference is populated.
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Populated() {
		return json.Marshal(r.ID)
	}
	return json.Marshal(refObject(r))
}
