package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/qaforge/qaforge/internal/app"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/pgstore"
	"github.com/qaforge/qaforge/internal/platform/db"
	"github.com/qaforge/qaforge/internal/rbac"
	"github.com/qaforge/qaforge/internal/seed"
	"github.com/qaforge/qaforge/jobs"
)

func newSeedCmd(e env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, e, func(ctx context.Context, cfg *app.Config, store docstore.Store) error {
				result, err := seed.Demo(ctx, store, seed.Options{Password: password, HashCost: cfg.BcryptCost})
				if err != nil {
					return err
				}
				if result.Skipped {
					printf(cmd.OutOrStdout(), "demo project %q already present\n", seed.DemoProjectName)
				}
				collections := make([]string, 0, len(result.Created))
				for name := range result.Created {
					collections = append(collections, name)
				}
				sort.Strings(collections)
				for _, name := range collections {
					printf(cmd.OutOrStdout(), "created %d %s\n", result.Created[name], name)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password of the seeded users")
	return cmd
}

func newPermissionsCmd(e env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Manage the permission catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Upsert every catalog permission and grant all of them to the admin role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, e, func(ctx context.Context, _ *app.Config, store docstore.Store) error {
				result, err := rbac.Reset(ctx, store)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "created %d, restored %d, admin role %s\n", result.Created, result.Restored, result.AdminID)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the permission catalog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, entry := range rbac.Catalog() {
				printf(cmd.OutOrStdout(), "%-8s %s\n", entry.Key, entry.Name)
			}
		},
	})
	return cmd
}

func newJobsCmd(e env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Trigger and inspect background jobs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "trigger <job>",
		Short:     "Enqueue a job with its default payload",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{jobs.TaskPermissionsReset, jobs.TaskSeedDemo},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			client := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
			defer client.Close()
			info, err := client.Trigger(cmd.Context(), args[0])
			if errors.Is(err, asynq.ErrTaskIDConflict) {
				printf(cmd.OutOrStdout(), "%s already queued\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Show default queue statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
			defer inspector.Close()
			stats, err := jobs.InspectQueue(inspector)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
				stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
			return nil
		},
	})
	return cmd
}

func newMigrateCmd(e env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the PostgreSQL document schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.StoreDriver != app.DriverPostgres {
				return fmt.Errorf("migrate: STORE_DRIVER is %q, migrations apply to %q only", cfg.StoreDriver, app.DriverPostgres)
			}
			pool, err := db.New(cmd.Context(), cfg.PGDSN, cfg.PGMaxConns)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := pgstore.MigrateUp(pool); err != nil {
				return err
			}
			version, dirty, err := pgstore.Version(pool)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "schema version %d dirty=%t\n", version, dirty)
			return nil
		},
	}
	return cmd
}
