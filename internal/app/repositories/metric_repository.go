package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hare-edu/hare-backend/internal/app/models"
)

// IMetricRepository defines the interface for evaluation metric operations
type IMetricRepository interface {
	GetByStudentIDTx(ctx context.Context, q Querier, studentID int64) (*models.Metric, error)
	UpsertTx(ctx context.Context, q Querier, studentID int64, average float64) error
}

// MetricRepository handles database operations for evaluation metrics
type MetricRepository struct {
	db *pgxpool.Pool
}

// NewMetricRepository creates a new metric repository
func NewMetricRepository(db *pgxpool.Pool) *MetricRepository {
	return &MetricRepository{
		db: db,
	}
}

// GetByStudentIDTx retrieves a student's metric through the given querier.
// Returns nil without error when the student has none.
func (r *MetricRepository) GetByStudentIDTx(ctx context.Context, q Querier, studentID int64) (*models.Metric, error) {
	query := `SELECT id, student_id, average FROM evaluation_metrics WHERE student_id = $1`

	var metric models.Metric
	err := q.QueryRow(ctx, query, studentID).Scan(&metric.ID, &metric.StudentID, &metric.Average)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving metric: %w", err)
	}

	return &metric, nil
}

// UpsertTx writes the student's single metric row: updates it when present,
// inserts it otherwise. Single-row-per-student is application policy, not a
// database constraint, so the check-then-write runs inside the import
// transaction.
func (r *MetricRepository) UpsertTx(ctx context.Context, q Querier, studentID int64, average float64) error {
	existing, err := r.GetByStudentIDTx(ctx, q, studentID)
	if err != nil {
		return err
	}

	if existing != nil {
		_, err = q.Exec(ctx, `UPDATE evaluation_metrics SET average = $1 WHERE id = $2`, average, existing.ID)
		if err != nil {
			return fmt.Errorf("error updating metric: %w", err)
		}
		return nil
	}

	_, err = q.Exec(ctx, `INSERT INTO evaluation_metrics (student_id, average) VALUES ($1, $2)`, studentID, average)
	if err != nil {
		return fmt.Errorf("error creating metric: %w", err)
	}

	return nil
}
