package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yigit/growthpath/internal/domain/progression"
)

// levelCmd resolves points against the level ladder
var levelCmd = &cobra.Command{
	Use:   "level <points>",
	Short: "Resolve a point total to a level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("points must be an integer: %w", err)
		}

		info := progression.DefaultRules().Levels.Resolve(points)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "level %d %s (from %d points)\n", info.Current.Level, info.Current.Name, info.Current.MinPoints)
		if info.Next == nil {
			fmt.Fprintln(out, "max level reached")
			return nil
		}
		fmt.Fprintf(out, "next: level %d %s at %d points, %d to go (%.1f%%)\n",
			info.Next.Level, info.Next.Name, info.Next.MinPoints, info.PointsToNext, info.ProgressPct)
		return nil
	},
}
