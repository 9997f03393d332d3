package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/qaforge/qaforge/internal/app"
	"github.com/qaforge/qaforge/internal/docstore"
)

// env supplies configuration and the store to commands so tests can swap them.
type env struct {
	loadConfig func() (*app.Config, error)
	openStore  func(ctx context.Context, cfg *app.Config, logger *slog.Logger) (docstore.Store, error)
}

func defaultEnv() env {
	return env{
		loadConfig: app.LoadConfig,
		openStore: func(ctx context.Context, cfg *app.Config, logger *slog.Logger) (docstore.Store, error) {
			return app.OpenStore(ctx, cfg, logger, nil)
		},
	}
}

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:           "qactl",
		Short:         "Operate a qaforge deployment",
		SilenceUsage: true,
	}
	root.AddCommand(
		newSeedCmd(e),
		newPermissionsCmd(e),
		newJobsCmd(e),
		newMigrateCmd(e),
	)
	return root
}

// withStore loads configuration, opens the store and runs fn against it.
func withStore(cmd *cobra.Command, e env, fn func(ctx context.Context, cfg *app.Config, store docstore.Store) error) error {
	cfg, err := e.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := cmd.Context()
	store, err := e.openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("store close", slog.Any("error", err))
		}
	}()
	return fn(ctx, cfg, store)
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
