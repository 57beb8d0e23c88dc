package main

import (
	"os"

	"github.com/hare-edu/hare-backend/internal/pkg/logger"
	"github.com/hare-edu/hare-backend/internal/server"
)

// @title HARE Backend API
// @version 1.0
// @description Academic risk management API: students, evaluation metrics, reference catalogs and risk statistics

// @contact.name API Support
// @contact.email soporte@hare.edu.co

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
