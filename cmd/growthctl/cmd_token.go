package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/growthpath/internal/bootstrap"
)

var (
	tokenRole  string
	tokenEmail string
)

// tokenCmd mints a token signed with the configured secret
var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a signed access token for local testing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		token, err := bootstrap.NewJWTService(cfg).GenerateToken(args[0], tokenEmail, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
