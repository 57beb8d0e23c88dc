package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

// IStudentRepository defines the interface for student-related database
// operations. Tx-suffixed methods accept a Querier so the import flow can
// run them inside a transaction.
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	CreateTx(ctx context.Context, q Querier, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByCodeAndDocumentTx(ctx context.Context, q Querier, code, document string) (*models.Student, error)
	CodeAndDocumentExists(ctx context.Context, code, document string, excludeID int64) (bool, error)
	GetAll(ctx context.Context, skip, limit int) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateTx(ctx context.Context, q Querier, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `id, code, name, document_type_id, document, semester, pensum,
	intake_period, enrollment_status_id, phone, personal_email,
	institutional_email, school_id, municipality_id`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&s.DocumentTypeID,
		&s.Document,
		&s.Semester,
		&s.Pensum,
		&s.IntakePeriod,
		&s.EnrollmentStatusID,
		&s.Phone,
		&s.PersonalEmail,
		&s.InstitutionalEmail,
		&s.SchoolID,
		&s.MunicipalityID,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.CreateTx(ctx, r.db, student)
}

// CreateTx creates a new student through the given querier, which may be a
// transaction on the import path.
func (r *StudentRepository) CreateTx(ctx context.Context, q Querier, student *models.Student) error {
	query := `
		INSERT INTO students (code, name, document_type_id, document, semester, pensum,
			intake_period, enrollment_status_id, phone, personal_email,
			institutional_email, school_id, municipality_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		student.Code,
		student.Name,
		student.DocumentTypeID,
		student.Document,
		student.Semester,
		student.Pensum,
		student.IntakePeriod,
		student.EnrollmentStatusID,
		student.Phone,
		student.PersonalEmail,
		student.InstitutionalEmail,
		student.SchoolID,
		student.MunicipalityID,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByCodeAndDocumentTx looks a student up by the unique (code, document)
// pair. Returns nil without error when no such student exists.
func (r *StudentRepository) GetByCodeAndDocumentTx(ctx context.Context, q Querier, code, document string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE code = $1 AND document = $2`, studentColumns)

	student, err := scanStudent(q.QueryRow(ctx, query, code, document))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student by code and document: %w", err)
	}

	return student, nil
}

// CodeAndDocumentExists checks whether the (code, document) pair is taken
// by a student other than excludeID. Pass 0 on creation.
func (r *StudentRepository) CodeAndDocumentExists(ctx context.Context, code, document string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE code = $1 AND document = $2 AND id != $3)`,
		code, document, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student uniqueness: %w", err)
	}

	return exists, nil
}

// GetAll retrieves students with skip/limit pagination
func (r *StudentRepository) GetAll(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY id OFFSET $1 LIMIT $2`, studentColumns)

	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.UpdateTx(ctx, r.db, student)
}

// UpdateTx updates an existing student through the given querier.
func (r *StudentRepository) UpdateTx(ctx context.Context, q Querier, student *models.Student) error {
	query := `
		UPDATE students
		SET code = $1, name = $2, document_type_id = $3, document = $4, semester = $5,
			pensum = $6, intake_period = $7, enrollment_status_id = $8, phone = $9,
			personal_email = $10, institutional_email = $11, school_id = $12,
			municipality_id = $13
		WHERE id = $14
	`

	cmdTag, err := q.Exec(ctx, query,
		student.Code,
		student.Name,
		student.DocumentTypeID,
		student.Document,
		student.Semester,
		student.Pensum,
		student.IntakePeriod,
		student.EnrollmentStatusID,
		student.Phone,
		student.PersonalEmail,
		student.InstitutionalEmail,
		student.SchoolID,
		student.MunicipalityID,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID. Metrics and associations cascade at the
// database level.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
