package executions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/memstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *memstore.Store, string) {
	t.Helper()
	store := memstore.New()
	step, err := store.Insert(context.Background(), catalog.TestSteps, docstore.Document{"name": "Open login"})
	require.NoError(t, err)
	svc := NewService(NewRepository(store), shared.NewChecker(store))
	svc.now = func() time.Time { return fixedNow }
	return svc, store, step.ID()
}

func TestCreateDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, stepID := setup(t)

	exec, err := svc.Create(ctx, CreateExecutionRequest{TestStepID: stepID})
	require.NoError(t, err)
	require.Equal(t, StatusNotExecuted, exec.Status)
	require.Nil(t, exec.ExecutedAt)
}

func TestCreateStampsExecutedAt(t *testing.T) {
	ctx := context.Background()
	svc, _, stepID := setup(t)

	exec, err := svc.Create(ctx, CreateExecutionRequest{TestStepID: stepID, Status: " PASS "})
	require.NoError(t, err)
	require.Equal(t, StatusPass, exec.Status)
	require.NotNil(t, exec.ExecutedAt)
	require.True(t, fixedNow.Equal(*exec.ExecutedAt))

	explicit := time.Date(2024, 2, 1, 8, 0, 0, 0, time.FixedZone("CET", 3600))
	exec, err = svc.Create(ctx, CreateExecutionRequest{TestStepID: stepID, Status: "fail", ExecutedAt: &explicit})
	require.NoError(t, err)
	require.True(t, explicit.Equal(*exec.ExecutedAt))
}

func TestCreateRejects(t *testing.T) {
	ctx := context.Background()
	svc, store, stepID := setup(t)

	cases := map[string]CreateExecutionRequest{
		"unknown status": {TestStepID: stepID, Status: "blocked"},
		"missing step":   {Status: "pass"},
		"unknown step":   {TestStepID: uuid.NewString()},
		"unknown user":   {TestStepID: stepID, ExecutedBy: uuid.NewString()},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, req)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}

	total, err := store.Count(ctx, catalog.TestExecutions, nil)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestUpdateStampsFirstRun(t *testing.T) {
	ctx := context.Background()
	svc, _, stepID := setup(t)

	exec, err := svc.Create(ctx, CreateExecutionRequest{TestStepID: stepID})
	require.NoError(t, err)

	pass := "pass"
	updated, err := svc.Update(ctx, exec.ID, UpdateExecutionRequest{Status: &pass})
	require.NoError(t, err)
	require.Equal(t, StatusPass, updated.Status)
	require.NotNil(t, updated.ExecutedAt)
	require.True(t, fixedNow.Equal(*updated.ExecutedAt))

	svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	fail := "fail"
	updated, err = svc.Update(ctx, exec.ID, UpdateExecutionRequest{Status: &fail})
	require.NoError(t, err)
	require.True(t, fixedNow.Equal(*updated.ExecutedAt))

	_, err = svc.Update(ctx, exec.ID, UpdateExecutionRequest{})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestListByStep(t *testing.T) {
	ctx := context.Background()
	svc, store, stepID := setup(t)
	other, err := store.Insert(ctx, catalog.TestSteps, docstore.Document{"name": "Submit form"})
	require.NoError(t, err)

	for _, req := range []CreateExecutionRequest{
		{TestStepID: stepID, Status: "pass"},
		{TestStepID: stepID, Status: "fail"},
		{TestStepID: other.ID(), Status: "skipped"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	page, err := svc.ListByStep(ctx, stepID, listquery.Params{FilterBy: "status", FilterTerm: "fail"}.Normalize())
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, StatusFail, page.Items[0].Status)

	_, err = svc.ListByStep(ctx, uuid.NewString(), listquery.Params{}.Normalize())
	require.ErrorIs(t, err, shared.ErrNotFound)
}
