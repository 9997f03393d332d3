package teststeps

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/memstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

func setup(t *testing.T) (*Service, *memstore.Store, string) {
	t.Helper()
	store := memstore.New()
	plan, err := store.Insert(context.Background(), catalog.TestPlans, docstore.Document{"name": "Smoke"})
	require.NoError(t, err)
	return NewService(NewRepository(store), shared.NewChecker(store)), store, plan.ID()
}

func TestListByPlan(t *testing.T) {
	ctx := context.Background()
	svc, store, planID := setup(t)
	other, err := store.Insert(ctx, catalog.TestPlans, docstore.Document{"name": "Regression"})
	require.NoError(t, err)

	for _, name := range []string{"Open login", "Submit form"} {
		_, err := svc.Create(ctx, CreateTestStepRequest{Name: name, TestPlanID: planID})
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, CreateTestStepRequest{Name: "Elsewhere", TestPlanID: other.ID()})
	require.NoError(t, err)

	page, err := svc.ListByPlan(ctx, planID, listquery.Params{SortBy: "name"}.Normalize())
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Equal(t, "Open login", page.Items[0].Name)
	require.Equal(t, "Smoke", page.Items[0].TestPlanID.Doc["name"])

	all, err := svc.List(ctx, listquery.Params{}.Normalize())
	require.NoError(t, err)
	require.EqualValues(t, 3, all.Total)
}

func TestListByPlanMissing(t *testing.T) {
	ctx := context.Background()
	svc, store, planID := setup(t)

	_, err := svc.ListByPlan(ctx, uuid.NewString(), listquery.Params{}.Normalize())
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = store.Update(ctx, catalog.TestPlans, planID, docstore.Document{docstore.FieldDeleted: true})
	require.NoError(t, err)
	_, err = svc.ListByPlan(ctx, planID, listquery.Params{}.Normalize())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateValidatesPlan(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := setup(t)

	_, err := svc.Create(ctx, CreateTestStepRequest{Name: "Orphan", TestPlanID: uuid.NewString()})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, CreateTestStepRequest{Name: " ", TestPlanID: uuid.NewString()})
	require.ErrorIs(t, err, shared.ErrValidation)

	total, err := store.Count(ctx, catalog.TestSteps, nil)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestUpdateMovesStep(t *testing.T) {
	ctx := context.Background()
	svc, store, planID := setup(t)
	other, err := store.Insert(ctx, catalog.TestPlans, docstore.Document{"name": "Regression"})
	require.NoError(t, err)

	step, err := svc.Create(ctx, CreateTestStepRequest{Name: "Open login", TestPlanID: planID})
	require.NoError(t, err)

	target := other.ID()
	expected := " Dashboard shown "
	moved, err := svc.Update(ctx, step.ID, UpdateTestStepRequest{TestPlanID: &target, ExpectedResult: &expected})
	require.NoError(t, err)
	require.Equal(t, target, moved.TestPlanID.ID)
	require.Equal(t, "Dashboard shown", moved.ExpectedResult)

	missing := uuid.NewString()
	_, err = svc.Update(ctx, step.ID, UpdateTestStepRequest{TestPlanID: &missing})
	require.ErrorIs(t, err, shared.ErrValidation)
}
