package listquery

import (
	"context"

	"github.com/qaforge/qaforge/internal/docstore"
)

// Expansion replaces a reference field with the referenced documents.
type Expansion struct {
	// Field holds one identifier or an array of identifiers.
	Field string
	// Collection holds the referenced documents.
	Collection string
	// Fields selects what is kept of each referenced document; empty keeps all.
	Fields []string
	// SkipDeleted drops soft-deleted referenced documents.
	SkipDeleted bool
	// Nested expansions apply to the referenced documents.
	Nested []Expansion
}

// Expand merges referenced documents into docs with one batched fetch per
// expansion level. Unresolvable single references become null and unresolvable
// array entries are dropped.
func (e *Engine) Expand(ctx context.Context, docs []docstore.Document, expansions []Expansion) error {
	for _, exp := range expansions {
		if err := e.expandOne(ctx, docs, exp); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) expandOne(ctx context.Context, docs []docstore.Document, exp Expansion) error {
	ids := collectIDs(docs, exp.Field)
	if len(ids) == 0 {
		return nil
	}
	filter := docstore.Filter{docstore.In(docstore.FieldID, ids)}
	if exp.SkipDeleted {
		filter = append(filter, docstore.Eq(docstore.FieldDeleted, false))
	}
	refs, err := e.store.Find(ctx, exp.Collection, docstore.Query{
		Filter: filter,
		Fields: exp.projection(),
	})
	if err != nil {
		return err
	}
	if err := e.Expand(ctx, refs, exp.Nested); err != nil {
		return err
	}
	byID := make(map[string]docstore.Document, len(refs))
	for _, ref := range refs {
		byID[ref.ID()] = ref
	}

	for _, doc := range docs {
		raw, ok := doc[exp.Field]
		if !ok || raw == nil {
			continue
		}
		if id, isString := raw.(string); isString {
			if ref, found := byID[id]; found {
				doc[exp.Field] = ref.Clone()
			} else {
				doc[exp.Field] = nil
			}
			continue
		}
		expanded := []any{}
		for _, id := range stringsOf(raw) {
			if ref, found := byID[id]; found {
				expanded = append(expanded, ref.Clone())
			}
		}
		doc[exp.Field] = expanded
	}
	return nil
}

func (exp Expansion) projection() []string {
	if len(exp.Fields) == 0 {
		return nil
	}
	fields := append([]string(nil), exp.Fields...)
	fields = append(fields, docstore.FieldDeleted)
	for _, n := range exp.Nested {
		fields = append(fields, n.Field)
	}
	return fields
}

func collectIDs(docs []docstore.Document, field string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, doc := range docs {
		raw, ok := doc[field]
		if !ok {
			continue
		}
		var candidates []string
		if id, isString := raw.(string); isString {
			candidates = []string{id}
		} else {
			candidates = stringsOf(raw)
		}
		for _, id := range candidates {
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func stringsOf(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
