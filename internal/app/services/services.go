// Package services contains the business logic of the application,
// sitting between the controllers and the repositories. Services own the
// domain rules: uniqueness checks, risk classification, statistics math
// and the import reconciliation flow. Persistence details stay in the
// repository layer.
package services

import (
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/db"
	"github.com/hare-edu/hare-backend/internal/pkg/auth"
)

// Services holds all service instances
type Services struct {
	AuthService       *AuthService
	UserService       *UserService
	CatalogService    *CatalogService
	StudentService    *StudentService
	StatisticsService *StatisticsService
	ChartService      *ChartService
	ImportService     *ImportService
}

// NewServices creates and initializes all services
func NewServices(repos *repositories.Repositories, database *db.PostgresDB, jwtService *auth.JWTService) *Services {
	statisticsService := NewStatisticsService(repos.StatisticsRepository)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, jwtService),
		UserService:       NewUserService(repos.UserRepository),
		CatalogService:    NewCatalogService(repos.CatalogRepository),
		StudentService:    NewStudentService(repos.StudentRepository, repos.StatisticsRepository),
		StatisticsService: statisticsService,
		ChartService:      NewChartService(statisticsService),
		ImportService: NewImportService(
			database,
			repos.CatalogRepository,
			repos.StudentRepository,
			repos.MetricRepository,
			repos.AssociationRepository,
			repos.UserRepository,
		),
	}
}
