package shared

import (
	"context"
	"fmt"

	"github.com/qaforge/qaforge/internal/docstore"
)

// Checker runs uniqueness and reference checks ahead of writes.
type Checker struct {
	store docstore.Store
}

// NewChecker constructs a Checker.
func NewChecker(store docstore.Store) *Checker {
	return &Checker{store: store}
}

// Unique fails with a Conflict when another document of collection, deleted or
// not, already holds value in field. selfID is excluded for updates.
func (c *Checker) Unique(ctx context.Context, collection, entity, field string, value any, selfID string) error {
	docs, err := c.store.Find(ctx, collection, docstore.Query{
		Filter: docstore.Filter{docstore.Eq(field, value)},
		Limit:  2,
		Fields: []string{docstore.FieldID},
	})
	if err != nil {
		return Storage(err)
	}
	for _, doc := range docs {
		if doc.ID() != selfID {
			return Conflict(fmt.Sprintf("%s with this %s already exists", entity, field), field)
		}
	}
	return nil
}

// References fails with a Validation error listing every id that does not
// resolve to a non-deleted document of collection.
func (c *Checker) References(ctx context.Context, collection, field string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var (
		invalid   []string
		candidate []string
		seen      = make(map[string]struct{}, len(ids))
	)
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if !docstore.ValidID(id) {
			invalid = append(invalid, id)
			continue
		}
		candidate = append(candidate, id)
	}
	if len(candidate) > 0 {
		docs, err := c.store.Find(ctx, collection, docstore.Query{
			Filter: docstore.Filter{
				docstore.In(docstore.FieldID, candidate),
				docstore.Eq(docstore.FieldDeleted, false),
			},
			Fields: []string{docstore.FieldID},
		})
		if err != nil {
			return Storage(err)
		}
		found := make(map[string]struct{}, len(docs))
		for _, doc := range docs {
			found[doc.ID()] = struct{}{}
		}
		for _, id := range candidate {
			if _, ok := found[id]; !ok {
				invalid = append(invalid, id)
			}
		}
	}
	if len(invalid) > 0 {
		return Validation(fmt.Sprintf("invalid %s reference", field), invalid...)
	}
	return nil
}

// Reference checks a single id.
func (c *Checker) Reference(ctx context.Context, collection, field, id string) error {
	return c.References(ctx, collection, field, []string{id})
}

// Exists fails with NotFound unless id names a non-deleted document.
func (c *Checker) Exists(ctx context.Context, collection, entity, id string) error {
	doc, err := c.store.Get(ctx, collection, id)
	if err != nil {
		return FromStore(err, entity)
	}
	if doc.Deleted() {
		return NotFound("%s not found", entity)
	}
	return nil
}
