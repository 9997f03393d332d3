// Package docstore defines the document storage capability shared by every backend.
package docstore

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Well-known document fields maintained by the store.
const (
	FieldID        = "_id"
	FieldDeleted   = "isDeleted"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Document is a schemaless record keyed by field name.
type Document map[string]any

// ID returns the document identifier or an empty string.
func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// Deleted reports whether the document is soft-deleted.
func (d Document) Deleted() bool {
	deleted, _ := d[FieldDeleted].(bool)
	return deleted
}

// Lookup resolves a dotted field path.
func (d Document) Lookup(path string) (any, bool) {
	var current any = map[string]any(d)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Select keeps only the named fields. The identifier is always retained.
func (d Document) Select(fields []string) Document {
	if len(fields) == 0 {
		return d
	}
	out := Document{FieldID: d[FieldID]}
	for _, f := range fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Without returns a copy of the document minus the named fields.
func (d Document) Without(fields ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// NewID generates a server-side document identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the identifier format issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// PrepareInsert assigns identifier, timestamps and the soft-delete flag.
func PrepareInsert(doc Document, now time.Time) Document {
	out := doc.Clone()
	if out == nil {
		out = Document{}
	}
	if out.ID() == "" {
		out[FieldID] = NewID()
	}
	if _, ok := out[FieldDeleted]; !ok {
		out[FieldDeleted] = false
	}
	out[FieldCreatedAt] = now
	out[FieldUpdatedAt] = now
	return out
}

// PrepareUpdate strips immutable fields and refreshes the update timestamp.
func PrepareUpdate(set Document, now time.Time) Document {
	out := set.Clone()
	if out == nil {
		out = Document{}
	}
	delete(out, FieldID)
	delete(out, FieldCreatedAt)
	out[FieldUpdatedAt] = now
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Document:
		return val.Clone()
	case map[string]any:
		return map[string]any(Document(val).Clone())
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case []Document:
		out := make([]Document, len(val))
		for i := range val {
			out[i] = val[i].Clone()
		}
		return out
	default:
		return v
	}
}
