// Command growthctl runs maintenance tasks against a GrowthPath deployment.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yigit/growthpath/internal/bootstrap"
)

var (
	configPath string
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "growthctl",
	Short: "GrowthPath maintenance CLI",
	Long: `Operate a GrowthPath deployment.

Available commands:
  migrate       - Apply pending SQL migrations
  seed          - Upsert the task catalog into the tasks table
  level         - Resolve a point total to a level
  unlocks sync  - Record mentor unlocks a user has earned
  token         - Mint a signed access token for local testing`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.ConfigPath(), "Path to config.yaml")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	tokenCmd.Flags().StringVar(&tokenRole, "role", "student", "Role claim of the token")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim of the token")

	unlocksCmd.AddCommand(unlocksSyncCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(unlocksCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
