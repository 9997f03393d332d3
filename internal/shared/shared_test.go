package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/memstore"
)

func TestFromStore(t *testing.T) {
	require.NoError(t, FromStore(nil, "project"))

	err := FromStore(fmt.Errorf("insert: %w", &docstore.DuplicateError{Collection: catalog.Permissions, Field: "key"}), "permission")
	require.Equal(t, KindConflict, KindOf(err))
	require.True(t, errors.Is(err, ErrConflict))
	require.True(t, errors.Is(err, docstore.ErrDuplicate))

	err = FromStore(docstore.ErrNotFound, "project")
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, "project not found", err.Error())

	err = FromStore(docstore.ErrInvalidID, "project")
	require.Equal(t, KindStorage, KindOf(err))
	require.True(t, errors.Is(err, docstore.ErrInvalidID))

	err = FromStore(errors.New("connection reset"), "project")
	require.Equal(t, KindStorage, KindOf(err))

	validation := Validation("invalid project_id reference", "abc")
	require.Same(t, validation, FromStore(validation, "test plan"))
	require.Equal(t, "invalid project_id reference: abc", validation.Error())
}

func TestCheckerUnique(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	checker := NewChecker(store)

	doc, err := store.Insert(ctx, catalog.Permissions, docstore.Document{"key": "vwprj", "name": "View projects"})
	require.NoError(t, err)

	require.NoError(t, checker.Unique(ctx, catalog.Permissions, "permission", "key", "crprj", ""))
	require.NoError(t, checker.Unique(ctx, catalog.Permissions, "permission", "key", "vwprj", doc.ID()))

	err = checker.Unique(ctx, catalog.Permissions, "permission", "key", "vwprj", "")
	require.True(t, errors.Is(err, ErrConflict))

	_, err = store.Update(ctx, catalog.Permissions, doc.ID(), docstore.Document{docstore.FieldDeleted: true})
	require.NoError(t, err)
	err = checker.Unique(ctx, catalog.Permissions, "permission", "key", "vwprj", "")
	require.True(t, errors.Is(err, ErrConflict), "deleted documents still hold their unique values")
}

func TestCheckerReferences(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	checker := NewChecker(store)

	live, err := store.Insert(ctx, catalog.Projects, docstore.Document{"name": "Alpha"})
	require.NoError(t, err)
	gone, err := store.Insert(ctx, catalog.Projects, docstore.Document{"name": "Beta", docstore.FieldDeleted: true})
	require.NoError(t, err)
	missing := docstore.NewID()

	require.NoError(t, checker.References(ctx, catalog.Projects, "project_id", nil))
	require.NoError(t, checker.Reference(ctx, catalog.Projects, "project_id", live.ID()))

	err = checker.References(ctx, catalog.Projects, "project_id", []string{live.ID(), gone.ID(), missing, "not-a-uuid", missing})
	require.True(t, errors.Is(err, ErrValidation))
	var e *Error
	require.True(t, errors.As(err, &e))
	require.ElementsMatch(t, []string{gone.ID(), missing, "not-a-uuid"}, e.Invalid)
}

func TestIdempotencyStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewIdempotencyStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.CheckAndInsert(ctx, "k1", "projects"))
	require.ErrorIs(t, store.CheckAndInsert(ctx, "k1", "projects"), ErrIdempotencyConflict)
	require.NoError(t, store.CheckAndInsert(ctx, "k1", "roles"))

	require.NoError(t, store.Delete(ctx, "k1", "projects"))
	require.NoError(t, store.CheckAndInsert(ctx, "k1", "projects"))

	mr.FastForward(2 * time.Hour)
	require.NoError(t, store.CheckAndInsert(ctx, "k1", "roles"))

	require.Error(t, store.CheckAndInsert(ctx, "", "roles"))
	require.Error(t, store.CheckAndInsert(ctx, "k2", ""))
}
