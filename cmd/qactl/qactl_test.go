package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qaforge/qaforge/internal/app"
	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/memstore"
	"github.com/qaforge/qaforge/internal/rbac"
)

func memoryEnv(store *memstore.Store) env {
	return env{
		loadConfig: func() (*app.Config, error) {
			return &app.Config{StoreDriver: app.DriverMemory, BcryptCost: bcrypt.MinCost}, nil
		},
		openStore: func(context.Context, *app.Config, *slog.Logger) (docstore.Store, error) {
			return store, nil
		},
	}
}

func run(t *testing.T, e env, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(e)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPermissionsResetCommand(t *testing.T) {
	store := memstore.New()
	out, err := run(t, memoryEnv(store), "permissions", "reset")
	require.NoError(t, err)
	require.Contains(t, out, "created 28, restored 0")

	count, err := store.Count(context.Background(), catalog.Permissions, nil)
	require.NoError(t, err)
	require.EqualValues(t, len(rbac.Catalog()), count)
}

func TestSeedCommandIsRepeatable(t *testing.T) {
	store := memstore.New()
	out, err := run(t, memoryEnv(store), "seed")
	require.NoError(t, err)
	require.Contains(t, out, "created 1 projects")

	out, err = run(t, memoryEnv(store), "seed")
	require.NoError(t, err)
	require.Contains(t, out, `demo project "Alpha" already present`)
}

func TestMigrateRequiresPostgres(t *testing.T) {
	_, err := run(t, memoryEnv(memstore.New()), "migrate")
	require.ErrorContains(t, err, "migrations apply to \"postgres\" only")
}

func TestPermissionsListCommand(t *testing.T) {
	out, err := run(t, memoryEnv(memstore.New()), "permissions", "list")
	require.NoError(t, err)
	require.Contains(t, out, "vwprj")
}
