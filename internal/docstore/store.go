package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no document has the requested identifier.
	ErrNotFound = errors.New("docstore: not found")
	// ErrDuplicate indicates a unique field collided at write time.
	ErrDuplicate = errors.New("docstore: duplicate key")
	// ErrInvalidID indicates a malformed document identifier.
	ErrInvalidID = errors.New("docstore: invalid identifier")
	// ErrUnknownCollection indicates the collection is not declared in the catalog.
	ErrUnknownCollection = errors.New("docstore: unknown collection")
)

// Store is the document storage capability. Single-document writes are atomic;
// nothing spans documents.
type Store interface {
	// Count returns the number of documents matching filter.
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	// Find returns documents matching the query window.
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	// Get returns one document by identifier, deleted or not.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Insert stores a new document and returns it as persisted.
	Insert(ctx context.Context, collection string, doc Document) (Document, error)
	// Update merges set into the document and returns the result.
	Update(ctx context.Context, collection, id string, set Document) (Document, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DuplicateError carries the field that collided when the backend can tell.
type DuplicateError struct {
	Collection string
	Field      string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "docstore: duplicate key in " + e.Collection
	}
	return "docstore: duplicate " + e.Field + " in " + e.Collection
}

// Unwrap lets errors.Is match ErrDuplicate.
func (e *DuplicateError) Unwrap() error { return ErrDuplicate }
