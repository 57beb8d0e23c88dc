package services

import (
	"context"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

// StudentService handles student CRUD and the caller-scoped listing with
// risk classification.
type StudentService struct {
	studentRepo repositories.IStudentRepository
	statsRepo   repositories.IStatisticsRepository
}

// NewStudentService creates a new StudentService instance
func NewStudentService(studentRepo repositories.IStudentRepository, statsRepo repositories.IStatisticsRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		statsRepo:   statsRepo,
	}
}

// CreateStudent registers a new student after checking (code, document)
// uniqueness. Catalog references are taken as given; a dangling id fails
// at the foreign key.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	taken, err := s.studentRepo.CodeAndDocumentExists(ctx, req.Code, req.Document, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrStudentAlreadyExists
	}

	student := req.ToModel()
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// GetStudentByID retrieves a single student
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetAllStudents retrieves students with skip/limit pagination
func (s *StudentService) GetAllStudents(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx, skip, limit)
}

// UpdateStudent applies a partial update. When the update moves the
// student to a new (code, document) pair, the pair must not collide with
// another student.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	code := student.Code
	document := student.Document
	if req.Code != nil {
		code = *req.Code
	}
	if req.Document != nil {
		document = *req.Document
	}
	if code != student.Code || document != student.Document {
		taken, err := s.studentRepo.CodeAndDocumentExists(ctx, code, document, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrStudentAlreadyExists
		}
	}

	req.ApplyTo(student)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent deletes a student. Metrics and associations go with it
// through the cascading foreign keys.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}

// MyStudents lists the caller's associated students with their averages
// classified into risk tiers. Students without a metric never appear; the
// total counts the full association scope, not the page.
func (s *StudentService) MyStudents(ctx context.Context, userID int64, skip, limit int) (*dto.MyStudentsResponse, error) {
	rows, err := s.statsRepo.ListAssociated(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.statsRepo.CountAssociated(ctx, userID)
	if err != nil {
		return nil, err
	}

	students := make([]dto.StudentWithRisk, 0, len(rows))
	for _, row := range rows {
		students = append(students, dto.StudentWithRisk{
			Code:               row.Code,
			Name:               row.Name,
			Semester:           row.Semester,
			InstitutionalEmail: row.InstitutionalEmail,
			Average:            row.Average,
			RiskLevel:          models.ClassifyRisk(row.Average),
		})
	}

	return &dto.MyStudentsResponse{
		Students: students,
		Total:    total,
	}, nil
}
