package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode copies a document into a struct using its json tags.
func Decode(doc Document, target any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: encode document: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("docstore: decode document: %w", err)
	}
	return nil
}

// Ref is a reference field that is either a bare identifier or an expanded document.
type Ref struct {
	ID  string
	Doc Document
}

// Expanded reports whether the referenced document was merged in.
func (r Ref) Expanded() bool {
	return r.Doc != nil
}

// MarshalJSON writes the expanded document when present, otherwise the identifier
// or null.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts a string identifier or an object carrying _id.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = Ref{ID: doc.ID(), Doc: doc}
	return nil
}

// RefIDs returns the identifiers of refs in order.
func RefIDs(refs []Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}
