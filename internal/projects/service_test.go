package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/docstore/memstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(memstore.New()))

	created, err := svc.Create(ctx, CreateProjectRequest{Name: "  Alpha  ", Description: " first "})
	require.NoError(t, err)
	require.Equal(t, "Alpha", created.Name)
	require.Equal(t, "first", created.Description)
	require.False(t, created.IsDeleted)
	require.False(t, created.CreatedAt.IsZero())

	name := "Alpha v2"
	updated, err := svc.Update(ctx, created.ID, UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Alpha v2", updated.Name)
	require.Equal(t, "first", updated.Description)
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	page, err := svc.List(ctx, listquery.Params{}.Normalize())
	require.NoError(t, err)
	require.Zero(t, page.Total)
	require.Empty(t, page.Items)

	page, err = svc.List(ctx, listquery.Params{IncludeDeleted: true}.Normalize())
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)

	_, err = svc.Update(ctx, created.ID, UpdateProjectRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProjectValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(memstore.New()))

	_, err := svc.Create(ctx, CreateProjectRequest{Name: "   "})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Update(ctx, uuid.NewString(), UpdateProjectRequest{})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Get(ctx, uuid.NewString(), false)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProjectPagination(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(memstore.New()))
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := svc.Create(ctx, CreateProjectRequest{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, listquery.Params{Page: 2, Limit: 2, SortBy: "name"}.Normalize())
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Gamma", page.Items[0].Name)
}
