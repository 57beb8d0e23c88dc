// Package bootstrap wires configuration, the database, repositories,
// services and controllers together for the server.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hare-edu/hare-backend/docs" // Import generated swagger docs
	appControllers "github.com/hare-edu/hare-backend/internal/app/controllers"
	appMigrations "github.com/hare-edu/hare-backend/internal/app/migrations"
	"github.com/hare-edu/hare-backend/internal/app/models"
	appRepos "github.com/hare-edu/hare-backend/internal/app/repositories"
	appRoutes "github.com/hare-edu/hare-backend/internal/app/routes"
	appServices "github.com/hare-edu/hare-backend/internal/app/services"
	"github.com/hare-edu/hare-backend/internal/config"
	"github.com/hare-edu/hare-backend/internal/db"
	appMiddleware "github.com/hare-edu/hare-backend/internal/middleware"
	pkgAuth "github.com/hare-edu/hare-backend/internal/pkg/auth"
	"github.com/hare-edu/hare-backend/internal/pkg/helpers"
	"github.com/hare-edu/hare-backend/internal/pkg/logger"
	"github.com/hare-edu/hare-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, ensures the schema
// and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Ensuring database schema...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.EnsureSchema(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database schema setup error")
		database.Close()
		return nil, fmt.Errorf("database schema setup failed: %w", err)
	}
	lgr.Info().Msg("Database schema is up to date.")

	if err := seed.CreateDefaultData(ctx, database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 30*time.Minute),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, database, deps.JWTService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.Services.AuthService),
		User:    appControllers.NewUserController(deps.Services.UserService),
		Student: appControllers.NewStudentController(deps.Services.StudentService, deps.Services.ImportService, deps.Services.UserService),
		Statistics: appControllers.NewStatisticsController(
			deps.Services.StatisticsService,
			deps.Services.ChartService,
			deps.Services.UserService,
		),
		DocumentTypes:    appControllers.NewCatalogController(deps.Services.CatalogService, models.CatalogDocumentTypes, "document type"),
		EnrollmentStatus: appControllers.NewCatalogController(deps.Services.CatalogService, models.CatalogEnrollmentStatuses, "enrollment status"),
		Schools:          appControllers.NewCatalogController(deps.Services.CatalogService, models.CatalogSchools, "school"),
		Municipalities:   appControllers.NewCatalogController(deps.Services.CatalogService, models.CatalogMunicipalities, "municipality"),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
