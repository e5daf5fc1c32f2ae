package main

import (
	"context"
	"os"

	"github.com/yigit/schooldirectory/internal/bootstrap"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
	"github.com/yigit/schooldirectory/internal/server"
)

// @title School Directory API
// @version 1.0
// @description Directory of schools with their campuses and faculties
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = bootstrap.DefaultConfigPath
	}

	srv, err := server.NewServer(context.Background(), configPath)
	if err != nil {
		// Setup functions already logged the details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
