package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IAssociationRepository defines the interface for user-student
// association operations
type IAssociationRepository interface {
	ExistsTx(ctx context.Context, q Querier, userID, studentID int64) (bool, error)
	CreateTx(ctx context.Context, q Querier, userID, studentID int64) error
}

// AssociationRepository handles database operations for user-student
// associations
type AssociationRepository struct {
	db *pgxpool.Pool
}

// NewAssociationRepository creates a new association repository
func NewAssociationRepository(db *pgxpool.Pool) *AssociationRepository {
	return &AssociationRepository{
		db: db,
	}
}

// ExistsTx checks whether the user already owns an association to the
// student. This pre-insert check is the only duplicate guard; the table
// carries no uniqueness constraint.
func (r *AssociationRepository) ExistsTx(ctx context.Context, q Querier, userID, studentID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_students WHERE user_id = $1 AND student_id = $2)`,
		userID, studentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking association existence: %w", err)
	}

	return exists, nil
}

// CreateTx records that the user discovered the student.
func (r *AssociationRepository) CreateTx(ctx context.Context, q Querier, userID, studentID int64) error {
	_, err := q.Exec(ctx, `
		INSERT INTO user_students (user_id, student_id) VALUES ($1, $2)`,
		userID, studentID)

	if err != nil {
		return fmt.Errorf("error creating association: %w", err)
	}

	return nil
}
