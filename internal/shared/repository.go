package shared

import (
	"context"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
)

// DocumentRepository stores one entity type as documents and decodes them into T.
type DocumentRepository[T any] struct {
	store  docstore.Store
	engine *listquery.Engine
	config listquery.Config
	entity string
}

// NewDocumentRepository builds a repository for the collection named in cfg.
// entity is the human name used in error messages.
func NewDocumentRepository[T any](store docstore.Store, cfg listquery.Config, entity string) *DocumentRepository[T] {
	return &DocumentRepository[T]{
		store:  store,
		engine: listquery.NewEngine(store),
		config: cfg,
		entity: entity,
	}
}

// Config returns the list configuration.
func (r *DocumentRepository[T]) Config() listquery.Config {
	return r.config
}

// List returns one page of the collection.
func (r *DocumentRepository[T]) List(ctx context.Context, params listquery.Params) (listquery.Page[T], error) {
	return r.ListScoped(ctx, nil, params)
}

// ListScoped lists with extra fixed predicates, e.g. the steps of one plan.
func (r *DocumentRepository[T]) ListScoped(ctx context.Context, scope docstore.Filter, params listquery.Params) (listquery.Page[T], error) {
	cfg := r.config
	if len(scope) > 0 {
		cfg.Scope = append(append(docstore.Filter(nil), cfg.Scope...), scope...)
	}
	env, err := r.engine.List(ctx, cfg, params)
	if err != nil {
		return listquery.Page[T]{}, FromStore(err, r.entity)
	}
	page, err := listquery.DecodePage[T](env)
	if err != nil {
		return listquery.Page[T]{}, Storage(err)
	}
	return page, nil
}

// Get returns the expanded document with id.
func (r *DocumentRepository[T]) Get(ctx context.Context, id string, includeDeleted bool) (T, error) {
	var out T
	doc, err := r.engine.Get(ctx, r.config, id, includeDeleted)
	if err != nil {
		return out, FromStore(err, r.entity)
	}
	return out, r.decode(doc, &out)
}

// Document returns the raw, unexpanded document with id when it is not deleted.
func (r *DocumentRepository[T]) Document(ctx context.Context, id string) (docstore.Document, error) {
	doc, err := r.store.Get(ctx, r.config.Collection, id)
	if err != nil {
		return nil, FromStore(err, r.entity)
	}
	if doc.Deleted() {
		return nil, NotFound("%s not found", r.entity)
	}
	return doc, nil
}

// Create inserts doc and returns the stored version.
func (r *DocumentRepository[T]) Create(ctx context.Context, doc docstore.Document) (T, error) {
	var out T
	stored, err := r.store.Insert(ctx, r.config.Collection, doc)
	if err != nil {
		return out, FromStore(err, r.entity)
	}
	return out, r.decode(stored, &out)
}

// Update applies set to the non-deleted document with id.
func (r *DocumentRepository[T]) Update(ctx context.Context, id string, set docstore.Document) (T, error) {
	var out T
	if _, err := r.Document(ctx, id); err != nil {
		return out, err
	}
	stored, err := r.store.Update(ctx, r.config.Collection, id, set)
	if err != nil {
		return out, FromStore(err, r.entity)
	}
	return out, r.decode(stored, &out)
}

// SoftDelete flags the document as deleted. Deleting twice is NotFound.
func (r *DocumentRepository[T]) SoftDelete(ctx context.Context, id string) (T, error) {
	return r.Update(ctx, id, docstore.Document{docstore.FieldDeleted: true})
}

func (r *DocumentRepository[T]) decode(doc docstore.Document, out *T) error {
	if err := docstore.Decode(doc, out); err != nil {
		return Storage(err)
	}
	return nil
}
