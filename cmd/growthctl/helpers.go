package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

func logFor(cmd *cobra.Command) zerolog.Logger {
	return logger.Component("growthctl").With().Str("command", cmd.Name()).Logger()
}
