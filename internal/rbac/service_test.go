package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/memstore"
	"github.com/qaforge/qaforge/internal/listquery"
)

func TestEffectivePermissionsUnion(t *testing.T) {
	user := UserWithRoles{Roles: []Role{
		{Key: "r1", Permissions: []Permission{{Key: "p1"}, {Key: "p2"}}},
		{Key: "r2", Permissions: []Permission{{Key: "p2"}, {Key: "p3"}}},
	}}
	got := EffectivePermissions(user)
	require.Equal(t, []string{"p1", "p2", "p3"}, got.Sorted())
	require.Len(t, got, 3)
}

func TestEffectivePermissionsEmpty(t *testing.T) {
	require.Empty(t, EffectivePermissions(UserWithRoles{}))
	require.Empty(t, EffectivePermissions(UserWithRoles{Roles: []Role{{Key: "empty"}}}))
}

func TestAggregatorDeletedGrants(t *testing.T) {
	user := UserWithRoles{Roles: []Role{
		{Key: "live", Permissions: []Permission{{Key: "p1"}, {Key: "gone", IsDeleted: true}}},
		{Key: "old", IsDeleted: true, Permissions: []Permission{{Key: "p9"}}},
	}}

	strict := Aggregator{}.Effective(user)
	require.Equal(t, []string{"p1"}, strict.Sorted())

	lenient := Aggregator{IncludeDeleted: true}.Effective(user)
	require.Equal(t, []string{"gone", "p1", "p9"}, lenient.Sorted())
	require.Equal(t, lenient, EffectivePermissions(user))
}

func TestSetHasAnyHasAll(t *testing.T) {
	s := NewSet("a", "b", " ")
	require.Equal(t, 2, len(s))
	require.True(t, s.HasAny())
	require.True(t, s.HasAny("x", "b"))
	require.False(t, s.HasAny("x"))
	require.True(t, s.HasAll("a", "b"))
	require.False(t, s.HasAll("a", "c"))
}

func seedGrants(t *testing.T, store docstore.Store) (bob string, viewer string) {
	t.Helper()
	ctx := context.Background()
	p1, err := store.Insert(ctx, catalog.Permissions, docstore.Document{"key": "vwprj", "name": "View projects"})
	require.NoError(t, err)
	p2, err := store.Insert(ctx, catalog.Permissions, docstore.Document{"key": "crprj", "name": "Create projects"})
	require.NoError(t, err)
	admin, err := store.Insert(ctx, catalog.Roles, docstore.Document{
		"name": "Admin", "key": "admin", "permissions": []any{p1.ID(), p2.ID()},
	})
	require.NoError(t, err)
	view, err := store.Insert(ctx, catalog.Roles, docstore.Document{
		"name": "Viewer", "key": "viewer", "permissions": []any{p2.ID()},
	})
	require.NoError(t, err)
	user, err := store.Insert(ctx, catalog.Users, docstore.Document{
		"name": "Bob", "email": "bob@example.com", "roles": []any{admin.ID(), view.ID()},
	})
	require.NoError(t, err)
	return user.ID(), view.ID()
}

func TestResolverForUser(t *testing.T) {
	store := memstore.New()
	bob, viewer := seedGrants(t, store)
	resolver := NewResolver(listquery.NewEngine(store), Aggregator{})

	perms, err := resolver.ForUser(context.Background(), bob)
	require.NoError(t, err)
	require.Equal(t, []string{"crprj", "vwprj"}, perms.Sorted())

	_, err = store.Update(context.Background(), catalog.Roles, viewer, docstore.Document{docstore.FieldDeleted: true})
	require.NoError(t, err)
	perms, err = resolver.ForUser(context.Background(), bob)
	require.NoError(t, err)
	require.Equal(t, []string{"crprj", "vwprj"}, perms.Sorted())
}

func TestResolverSkipsDeletedPermissions(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	bob, _ := seedGrants(t, store)

	found, err := store.Find(ctx, catalog.Permissions, docstore.Query{Filter: docstore.Filter{docstore.Eq("key", "vwprj")}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	_, err = store.Update(ctx, catalog.Permissions, found[0].ID(), docstore.Document{docstore.FieldDeleted: true})
	require.NoError(t, err)

	strict := NewResolver(listquery.NewEngine(store), Aggregator{})
	perms, err := strict.ForUser(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, []string{"crprj"}, perms.Sorted())

	lenient := NewResolver(listquery.NewEngine(store), Aggregator{IncludeDeleted: true})
	perms, err = lenient.ForUser(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, []string{"crprj", "vwprj"}, perms.Sorted())
}

func TestResolverDeletedUser(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	bob, _ := seedGrants(t, store)
	_, err := store.Update(ctx, catalog.Users, bob, docstore.Document{docstore.FieldDeleted: true})
	require.NoError(t, err)

	_, err = NewResolver(listquery.NewEngine(store), Aggregator{}).ForUser(ctx, bob)
	require.True(t, errors.Is(err, docstore.ErrNotFound))
}

func TestResetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	first, err := Reset(ctx, store)
	require.NoError(t, err)
	require.Equal(t, len(Catalog()), first.Created)
	require.NotEmpty(t, first.AdminID)

	second, err := Reset(ctx, store)
	require.NoError(t, err)
	require.Zero(t, second.Created)
	require.Equal(t, first.AdminID, second.AdminID)

	total, err := store.Count(ctx, catalog.Permissions, nil)
	require.NoError(t, err)
	require.EqualValues(t, len(Catalog()), total)

	user, err := store.Insert(ctx, catalog.Users, docstore.Document{
		"name": "Root", "email": "root@example.com", "roles": []any{first.AdminID},
	})
	require.NoError(t, err)
	perms, err := NewResolver(listquery.NewEngine(store), Aggregator{}).ForUser(ctx, user.ID())
	require.NoError(t, err)
	require.ElementsMatch(t, CatalogKeys(), perms.Sorted())
}

func TestResetRestoresDeletedPermission(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, err := Reset(ctx, store)
	require.NoError(t, err)

	found, err := store.Find(ctx, catalog.Permissions, docstore.Query{Filter: docstore.Filter{docstore.Eq("key", ActView+ResUsers)}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	_, err = store.Update(ctx, catalog.Permissions, found[0].ID(), docstore.Document{docstore.FieldDeleted: true})
	require.NoError(t, err)

	result, err := Reset(ctx, store)
	require.NoError(t, err)
	require.Equal(t, 1, result.Restored)
}
