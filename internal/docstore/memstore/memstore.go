// Package memstore implements docstore.Store in process memory.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
)

// Store keeps documents in memory guarded by a single lock.
type Store struct {
	mu          sync.RWMutex
	now         func() time.Time
	collections map[string]*collection
}

type collection struct {
	def   catalog.Collection
	docs  map[string]docstore.Document
	order []string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCollections replaces the catalog collections, mostly for tests.
func WithCollections(cols ...catalog.Collection) Option {
	return func(s *Store) {
		s.collections = make(map[string]*collection, len(cols))
		for _, c := range cols {
			s.collections[c.Name] = &collection{def: c, docs: make(map[string]docstore.Document)}
		}
	}
}

// New builds an empty store with every catalog collection registered.
func New(opts ...Option) *Store {
	s := &Store{now: func() time.Time { return time.Now().UTC() }}
	WithCollections(catalog.All()...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) collection(name string) (*collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", docstore.ErrUnknownCollection, name)
	}
	return c, nil
}

// Count implements docstore.Store.
func (s *Store) Count(ctx context.Context, name string, filter docstore.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	if filter.Unsatisfiable() {
		return 0, nil
	}
	var n int64
	for _, id := range c.order {
		if matches(c.docs[id], filter) {
			n++
		}
	}
	return n, nil
}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, name string, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	if q.Filter.Unsatisfiable() {
		return []docstore.Document{}, nil
	}
	var hits []docstore.Document
	for _, id := range c.order {
		if doc := c.docs[id]; matches(doc, q.Filter) {
			hits = append(hits, doc)
		}
	}
	if len(q.Sort) > 0 {
		sort.SliceStable(hits, func(i, j int) bool {
			return less(hits[i], hits[j], q.Sort)
		})
	}
	if q.Skip > 0 {
		if q.Skip >= int64(len(hits)) {
			hits = nil
		} else {
			hits = hits[q.Skip:]
		}
	}
	if q.Limit > 0 && int64(len(hits)) > q.Limit {
		hits = hits[:q.Limit]
	}
	out := make([]docstore.Document, 0, len(hits))
	for _, doc := range hits {
		out = append(out, doc.Clone().Select(q.Fields))
	}
	return out, nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, name, id string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !docstore.ValidID(id) {
		return nil, docstore.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return doc.Clone(), nil
}

// Insert implements docstore.Store.
func (s *Store) Insert(ctx context.Context, name string, doc docstore.Document) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prepared := docstore.PrepareInsert(doc, s.now())
	if !docstore.ValidID(prepared.ID()) {
		return nil, docstore.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	if _, exists := c.docs[prepared.ID()]; exists {
		return nil, &docstore.DuplicateError{Collection: name, Field: docstore.FieldID}
	}
	if err := c.checkUnique(prepared, ""); err != nil {
		return nil, err
	}
	c.docs[prepared.ID()] = prepared
	c.order = append(c.order, prepared.ID())
	return prepared.Clone(), nil
}

// Update implements docstore.Store.
func (s *Store) Update(ctx context.Context, name, id string, set docstore.Document) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !docstore.ValidID(id) {
		return nil, docstore.ErrInvalidID
	}
	prepared := docstore.PrepareUpdate(set, s.now())
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	current, ok := c.docs[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	next := current.Clone()
	for k, v := range prepared {
		next[k] = v
	}
	if err := c.checkUnique(next, id); err != nil {
		return nil, err
	}
	c.docs[id] = next
	return next.Clone(), nil
}

// Close implements docstore.Store.
func (s *Store) Close(context.Context) error {
	return nil
}

func (c *collection) checkUnique(doc docstore.Document, self string) error {
	for _, field := range c.def.Unique {
		value, ok := doc[field]
		if !ok || value == nil {
			continue
		}
		for id, other := range c.docs {
			if id == self {
				continue
			}
			if equal(other[field], value) {
				return &docstore.DuplicateError{Collection: c.def.Name, Field: field}
			}
		}
	}
	return nil
}

func less(a, b docstore.Document, order []docstore.Sort) bool {
	for _, s := range order {
		av, _ := a.Lookup(s.Field)
		bv, _ := b.Lookup(s.Field)
		cmp := compare(av, bv)
		if cmp == 0 {
			continue
		}
		if s.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}
