package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx.
// Repository methods that must run inside the import transaction accept it
// explicitly so the same SQL serves both scopes.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	CatalogRepository     *CatalogRepository
	StudentRepository     *StudentRepository
	MetricRepository      *MetricRepository
	AssociationRepository *AssociationRepository
	StatisticsRepository  *StatisticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		CatalogRepository:     NewCatalogRepository(db),
		StudentRepository:     NewStudentRepository(db),
		MetricRepository:      NewMetricRepository(db),
		AssociationRepository: NewAssociationRepository(db),
		StatisticsRepository:  NewStatisticsRepository(db),
	}
}
