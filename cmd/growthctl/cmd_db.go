package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/growthpath/internal/app/repositories"
	"github.com/yigit/growthpath/internal/bootstrap"
	"github.com/yigit/growthpath/internal/config"
	"github.com/yigit/growthpath/internal/db"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/seed"
)

// migrateCmd applies pending migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPostgres(cmd, func(ctx context.Context, cfg *config.Config, pg *db.PostgresDB) error {
			lgr := logFor(cmd)
			if err := bootstrap.RunMigrations(ctx, pg, cfg.Database.MigrationsDir, lgr); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		})
	},
}

// seedCmd upserts the task catalog
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the task catalog into the tasks table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPostgres(cmd, func(ctx context.Context, _ *config.Config, pg *db.PostgresDB) error {
			catalog := progression.DefaultRules().Tasks
			if err := seed.Tasks(ctx, repositories.NewRepositories(pg).Tasks(), catalog, logFor(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tasks\n", len(catalog.Tasks()))
			return nil
		})
	},
}

// withPostgres loads config and opens the pool for commands that need the
// database directly, whatever driver the API is configured with.
func withPostgres(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, pg *db.PostgresDB) error) error {
	cfg, _, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pg, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pg.Close()

	return fn(ctx, cfg, pg)
}
