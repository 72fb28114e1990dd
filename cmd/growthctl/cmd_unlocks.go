package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/bootstrap"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/pkg/cache"
	"github.com/yigit/growthpath/internal/pkg/helpers"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

// unlocksCmd groups mentor unlock maintenance
var unlocksCmd = &cobra.Command{
	Use:   "unlocks",
	Short: "Mentor unlock maintenance",
}

// unlocksSyncCmd records every mentor a user has earned but not yet unlocked
var unlocksSyncCmd = &cobra.Command{
	Use:   "sync <user-id>",
	Short: "Record mentor unlocks a user has earned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("user id must be a uuid: %w", err)
		}

		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		rules := progression.DefaultRules()
		st, pg, err := bootstrap.SetupStore(ctx, cfg, rules, lgr)
		if err != nil {
			return err
		}
		if pg != nil {
			defer pg.Close()
		}

		c := cache.New(ctx, cfg.Redis)
		defer c.Close()

		progress := services.NewProgressService(st, rules, c, helpers.ParseDuration(cfg.Redis.ProgressTTL, 5*time.Minute), logger.Component("growthctl"))
		resp, err := progress.SyncUnlocks(ctx, userID.String())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(resp.NewlyUnlocked) == 0 {
			fmt.Fprintf(out, "no new unlocks (%d unlocked)\n", resp.UnlockedCount)
			return nil
		}
		for _, m := range resp.NewlyUnlocked {
			fmt.Fprintf(out, "unlocked %s %s\n", m.ID, m.Name)
		}
		fmt.Fprintf(out, "%d unlocked in total\n", resp.UnlockedCount)
		return nil
	},
}
