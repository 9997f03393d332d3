package listquery

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/qaforge/qaforge/internal/docstore"
)

// Engine runs list plans against a store. It holds no mutable state.
type Engine struct {
	store docstore.Store
}

// NewEngine constructs an Engine over store.
func NewEngine(store docstore.Store) *Engine {
	return &Engine{store: store}
}

// List counts and fetches one page of cfg.Collection, expanding references.
// Storage errors are returned unchanged.
func (e *Engine) List(ctx context.Context, cfg Config, params Params) (Envelope, error) {
	plan := Build(cfg, params)
	if plan.Filter.Unsatisfiable() {
		return NewEnvelope(0, plan.Page, int(plan.Limit), nil), nil
	}

	var (
		total int64
		items []docstore.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := e.store.Count(gctx, cfg.Collection, plan.Filter)
		total = n
		return err
	})
	g.Go(func() error {
		docs, err := e.store.Find(gctx, cfg.Collection, docstore.Query{
			Filter: plan.Filter,
			Sort:   plan.Sort,
			Skip:   plan.Skip,
			Limit:  plan.Limit,
		})
		items = docs
		return err
	})
	if err := g.Wait(); err != nil {
		return Envelope{}, err
	}

	if err := e.Expand(ctx, items, cfg.Expand); err != nil {
		return Envelope{}, err
	}
	return NewEnvelope(total, plan.Page, int(plan.Limit), items), nil
}

// Get fetches one document, hiding soft-deleted ones unless includeDeleted,
// and expands its references.
func (e *Engine) Get(ctx context.Context, cfg Config, id string, includeDeleted bool) (docstore.Document, error) {
	doc, err := e.store.Get(ctx, cfg.Collection, id)
	if err != nil {
		return nil, err
	}
	if doc.Deleted() && !includeDeleted && !cfg.ShowDeleted {
		return nil, docstore.ErrNotFound
	}
	if err := e.Expand(ctx, []docstore.Document{doc}, cfg.Expand); err != nil {
		return nil, err
	}
	return doc, nil
}
