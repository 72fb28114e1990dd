package main

import (
	"context"
	"os"

	"github.com/yigit/growthpath/internal/bootstrap"
	"github.com/yigit/growthpath/internal/pkg/logger"
	"github.com/yigit/growthpath/internal/server"
)

// @title GrowthPath API
// @version 1.0
// @description Tasks, works, reviews and mentor progression for young learners
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Bearer token issued by the identity provider

//go:generate swag init -g cmd/api/main.go -d ../.. -o ../../docs

func main() {
	ctx := context.Background()

	srv, err := server.NewServer(ctx, bootstrap.ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
