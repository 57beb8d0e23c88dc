package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

func sampleCreateRequest(code, document string) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Code:               code,
		Name:               "Carlos Perez",
		DocumentTypeID:     1,
		Document:           document,
		Semester:           "5",
		Pensum:             "2018-2",
		IntakePeriod:       "2020-1",
		EnrollmentStatusID: 1,
		InstitutionalEmail: "cperez@hare.edu.co",
		SchoolID:           1,
		MunicipalityID:     1,
	}
}

func newStudentFixture() (*StudentService, *fakeStudentRepo, *fakeStatsRepo) {
	studentRepo := &fakeStudentRepo{students: make(map[string]*models.Student)}
	statsRepo := &fakeStatsRepo{}
	return NewStudentService(studentRepo, statsRepo), studentRepo, statsRepo
}

func TestCreateStudent(t *testing.T) {
	service, repo, _ := newStudentFixture()

	student, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201578", "1002003004"))
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}
	if student.ID == 0 {
		t.Error("created student has no ID")
	}
	if len(repo.students) != 1 {
		t.Errorf("stored students = %d, want 1", len(repo.students))
	}
}

func TestCreateStudentDuplicatePair(t *testing.T) {
	service, _, _ := newStudentFixture()

	if _, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201578", "1002003004")); err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	_, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201578", "1002003004"))
	if !errors.Is(err, apperrors.ErrStudentAlreadyExists) {
		t.Errorf("error = %v, want ErrStudentAlreadyExists", err)
	}
}

func TestCreateStudentSharedCodeDifferentDocument(t *testing.T) {
	service, _, _ := newStudentFixture()

	if _, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201578", "1002003004")); err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}
	// Uniqueness is on the pair, not the code alone.
	if _, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201578", "900900900")); err != nil {
		t.Errorf("CreateStudent with same code, different document returned error: %v", err)
	}
}

func TestUpdateStudentPartial(t *testing.T) {
	service, _, _ := newStudentFixture()

	created, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201578", "1002003004"))
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	newSemester := "6"
	updated, err := service.UpdateStudent(context.Background(), created.ID, &dto.UpdateStudentRequest{
		Semester: &newSemester,
	})
	if err != nil {
		t.Fatalf("UpdateStudent returned error: %v", err)
	}

	if updated.Semester != "6" {
		t.Errorf("semester = %q, want 6", updated.Semester)
	}
	if updated.Code != "20201578" || updated.Document != "1002003004" {
		t.Error("absent fields were modified by a partial update")
	}
}

func TestUpdateStudentPairCollision(t *testing.T) {
	service, _, _ := newStudentFixture()

	if _, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201578", "1002003004")); err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}
	second, err := service.CreateStudent(context.Background(), sampleCreateRequest("20201579", "1002003005"))
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	takenCode := "20201578"
	takenDocument := "1002003004"
	_, err = service.UpdateStudent(context.Background(), second.ID, &dto.UpdateStudentRequest{
		Code:     &takenCode,
		Document: &takenDocument,
	})
	if !errors.Is(err, apperrors.ErrStudentAlreadyExists) {
		t.Errorf("error = %v, want ErrStudentAlreadyExists", err)
	}
}

func TestMyStudentsClassifiesRisk(t *testing.T) {
	service, _, statsRepo := newStudentFixture()
	statsRepo.rows = []repositories.AssociatedStudentRow{
		{Code: "A", Name: "Alta", Semester: "1", InstitutionalEmail: "a@hare.edu.co", Average: 0.9},
		{Code: "B", Name: "Media", Semester: "2", InstitutionalEmail: "b@hare.edu.co", Average: 2.5},
		{Code: "C", Name: "Baja", Semester: "3", InstitutionalEmail: "c@hare.edu.co", Average: 4.2},
	}
	statsRepo.total = 3

	resp, err := service.MyStudents(context.Background(), 7, 0, 100)
	if err != nil {
		t.Fatalf("MyStudents returned error: %v", err)
	}

	if resp.Total != 3 || len(resp.Students) != 3 {
		t.Fatalf("total/len = %d/%d, want 3/3", resp.Total, len(resp.Students))
	}

	want := []models.RiskLevel{models.RiskHigh, models.RiskMedium, models.RiskLow}
	for i, s := range resp.Students {
		if s.RiskLevel != want[i] {
			t.Errorf("students[%d].RiskLevel = %v, want %v", i, s.RiskLevel, want[i])
		}
	}
}

// The total counts every associated student, so it can exceed the listing
// when some associated students carry no metric yet.
func TestMyStudentsTotalIncludesMetricLess(t *testing.T) {
	service, _, statsRepo := newStudentFixture()
	statsRepo.rows = []repositories.AssociatedStudentRow{
		{Code: "A", Name: "Alta", Semester: "1", InstitutionalEmail: "a@hare.edu.co", Average: 0.9},
	}
	statsRepo.total = 4

	resp, err := service.MyStudents(context.Background(), 7, 0, 100)
	if err != nil {
		t.Fatalf("MyStudents returned error: %v", err)
	}
	if resp.Total != 4 || len(resp.Students) != 1 {
		t.Errorf("total/len = %d/%d, want 4/1", resp.Total, len(resp.Students))
	}
}

func TestMyStudentsEmptyScope(t *testing.T) {
	service, _, _ := newStudentFixture()

	resp, err := service.MyStudents(context.Background(), 7, 0, 100)
	if err != nil {
		t.Fatalf("MyStudents returned error: %v", err)
	}
	if resp.Total != 0 || len(resp.Students) != 0 {
		t.Errorf("total/len = %d/%d, want 0/0", resp.Total, len(resp.Students))
	}
}
