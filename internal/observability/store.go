package observability

import (
	"context"
	"errors"
	"time"

	"github.com/qaforge/qaforge/internal/docstore"
)

// InstrumentStore wraps store so every call is counted and timed. A nil
// Metrics returns store unchanged.
func (m *Metrics) InstrumentStore(store docstore.Store) docstore.Store {
	if m == nil {
		return store
	}
	return &instrumentedStore{next: store, metrics: m}
}

type instrumentedStore struct {
	next    docstore.Store
	metrics *Metrics
}

func (s *instrumentedStore) observe(collection, op string, start time.Time, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, docstore.ErrNotFound):
		status = "not_found"
	case errors.Is(err, docstore.ErrDuplicate):
		status = "duplicate"
	default:
		status = "error"
	}
	s.metrics.storeOps.WithLabelValues(collection, op, status).Inc()
	s.metrics.storeDuration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}

func (s *instrumentedStore) Count(ctx context.Context, collection string, filter docstore.Filter) (int64, error) {
	start := time.Now()
	n, err := s.next.Count(ctx, collection, filter)
	s.observe(collection, "count", start, err)
	return n, err
}

func (s *instrumentedStore) Find(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	start := time.Now()
	docs, err := s.next.Find(ctx, collection, q)
	s.observe(collection, "find", start, err)
	return docs, err
}

func (s *instrumentedStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	start := time.Now()
	doc, err := s.next.Get(ctx, collection, id)
	s.observe(collection, "get", start, err)
	return doc, err
}

func (s *instrumentedStore) Insert(ctx context.Context, collection string, doc docstore.Document) (docstore.Document, error) {
	start := time.Now()
	out, err := s.next.Insert(ctx, collection, doc)
	s.observe(collection, "insert", start, err)
	return out, err
}

func (s *instrumentedStore) Update(ctx context.Context, collection, id string, set docstore.Document) (docstore.Document, error) {
	start := time.Now()
	out, err := s.next.Update(ctx, collection, id, set)
	s.observe(collection, "update", start, err)
	return out, err
}

func (s *instrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
