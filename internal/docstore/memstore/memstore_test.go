package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
)

func TestInsertGetUpdate(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := New(WithClock(func() time.Time { return clock }))

	doc, err := store.Insert(ctx, catalog.Projects, docstore.Document{"name": "Alpha"})
	require.NoError(t, err)
	require.False(t, doc.Deleted())

	clock = clock.Add(time.Minute)
	updated, err := store.Update(ctx, catalog.Projects, doc.ID(), docstore.Document{"description": "demo"})
	require.NoError(t, err)
	require.Equal(t, "Alpha", updated["name"])
	require.Equal(t, "demo", updated["description"])
	require.Equal(t, doc[docstore.FieldCreatedAt], updated[docstore.FieldCreatedAt])
	require.Equal(t, clock, updated[docstore.FieldUpdatedAt])

	got, err := store.Get(ctx, catalog.Projects, doc.ID())
	require.NoError(t, err)
	require.Equal(t, updated, got)

	got["name"] = "mutated"
	again, err := store.Get(ctx, catalog.Projects, doc.ID())
	require.NoError(t, err)
	require.Equal(t, "Alpha", again["name"])
}

func TestErrors(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Get(ctx, catalog.Projects, "nope")
	require.ErrorIs(t, err, docstore.ErrInvalidID)
	_, err = store.Get(ctx, catalog.Projects, docstore.NewID())
	require.ErrorIs(t, err, docstore.ErrNotFound)
	_, err = store.Update(ctx, catalog.Projects, docstore.NewID(), docstore.Document{"name": "x"})
	require.ErrorIs(t, err, docstore.ErrNotFound)
	_, err = store.Find(ctx, "widgets", docstore.Query{})
	require.ErrorIs(t, err, docstore.ErrUnknownCollection)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Count(canceled, catalog.Projects, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUniqueFieldsIncludeDeleted(t *testing.T) {
	ctx := context.Background()
	store := New()

	first, err := store.Insert(ctx, catalog.Permissions, docstore.Document{"key": "vwprj", "name": "View projects"})
	require.NoError(t, err)
	_, err = store.Update(ctx, catalog.Permissions, first.ID(), docstore.Document{docstore.FieldDeleted: true})
	require.NoError(t, err)

	_, err = store.Insert(ctx, catalog.Permissions, docstore.Document{"key": "vwprj", "name": "Other"})
	var dup *docstore.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "key", dup.Field)

	second, err := store.Insert(ctx, catalog.Permissions, docstore.Document{"key": "crprj", "name": "Create projects"})
	require.NoError(t, err)
	_, err = store.Update(ctx, catalog.Permissions, second.ID(), docstore.Document{"name": "View projects"})
	require.ErrorIs(t, err, docstore.ErrDuplicate)

	_, err = store.Update(ctx, catalog.Permissions, second.ID(), docstore.Document{"name": "Create projects"})
	require.NoError(t, err)
}

func seedNames(t *testing.T, store *Store, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := store.Insert(context.Background(), catalog.Projects, docstore.Document{"name": name})
		require.NoError(t, err)
	}
}

func TestFindFilterSortWindow(t *testing.T) {
	ctx := context.Background()
	store := New()
	seedNames(t, store, "Delta", "alpha", "Charlie", "Bravo", "ALPHA two")

	docs, err := store.Find(ctx, catalog.Projects, docstore.Query{
		Filter: docstore.Filter{docstore.Contains("name", "alp")},
		Sort:   []docstore.Sort{{Field: "name"}},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "ALPHA two", docs[0]["name"])
	require.Equal(t, "alpha", docs[1]["name"])

	docs, err = store.Find(ctx, catalog.Projects, docstore.Query{
		Sort:   []docstore.Sort{{Field: "name", Desc: true}},
		Skip:   1,
		Limit:  2,
		Fields: []string{"name"},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "Delta", docs[0]["name"])
	require.Equal(t, "Charlie", docs[1]["name"])
	require.Len(t, docs[0], 2)

	docs, err = store.Find(ctx, catalog.Projects, docstore.Query{Skip: 10})
	require.NoError(t, err)
	require.Empty(t, docs)

	n, err := store.Count(ctx, catalog.Projects, docstore.Filter{docstore.None()})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestFindInAndArrayMembership(t *testing.T) {
	ctx := context.Background()
	store := New()
	a, err := store.Insert(ctx, catalog.Roles, docstore.Document{"key": "a", "name": "A", "permissions": []any{"p1", "p2"}})
	require.NoError(t, err)
	_, err = store.Insert(ctx, catalog.Roles, docstore.Document{"key": "b", "name": "B", "permissions": []any{"p3"}})
	require.NoError(t, err)

	docs, err := store.Find(ctx, catalog.Roles, docstore.Query{Filter: docstore.Filter{docstore.Eq("permissions", "p2")}})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, a.ID(), docs[0].ID())

	docs, err = store.Find(ctx, catalog.Roles, docstore.Query{Filter: docstore.Filter{docstore.In("key", []string{"a", "b", "c"})}})
	require.NoError(t, err)
	require.Len(t, docs, 2)
}

func TestCompareOrdersMixedTypes(t *testing.T) {
	require.Equal(t, -1, compare(nil, 1))
	require.Equal(t, -1, compare(1, "a"))
	require.Equal(t, 0, compare(int64(2), 2.0))
	require.Equal(t, 1, compare(true, false))
	require.True(t, equal([]any{"a"}, []any{"a"}))
	require.False(t, equal(nil, "a"))
}
