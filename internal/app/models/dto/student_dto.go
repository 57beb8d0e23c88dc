package dto

import "github.com/hare-edu/hare-backend/internal/app/models"

// CreateStudentRequest represents student creation data.
type CreateStudentRequest struct {
	Code               string  `json:"code" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	DocumentTypeID     int64   `json:"documentTypeId" binding:"required,min=1"`
	Document           string  `json:"document" binding:"required"`
	Semester           string  `json:"semester" binding:"required"`
	Pensum             string  `json:"pensum" binding:"required"`
	IntakePeriod       string  `json:"intakePeriod" binding:"required"`
	EnrollmentStatusID int64   `json:"enrollmentStatusId" binding:"required,min=1"`
	Phone              *string `json:"phone,omitempty"`
	PersonalEmail      *string `json:"personalEmail,omitempty" binding:"omitempty,email"`
	InstitutionalEmail string  `json:"institutionalEmail" binding:"required,email"`
	SchoolID           int64   `json:"schoolId" binding:"required,min=1"`
	MunicipalityID     int64   `json:"municipalityId" binding:"required,min=1"`
}

// ToModel builds the student model from the request.
func (r *CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		Code:               r.Code,
		Name:               r.Name,
		DocumentTypeID:     r.DocumentTypeID,
		Document:           r.Document,
		Semester:           r.Semester,
		Pensum:             r.Pensum,
		IntakePeriod:       r.IntakePeriod,
		EnrollmentStatusID: r.EnrollmentStatusID,
		Phone:              r.Phone,
		PersonalEmail:      r.PersonalEmail,
		InstitutionalEmail: r.InstitutionalEmail,
		SchoolID:           r.SchoolID,
		MunicipalityID:     r.MunicipalityID,
	}
}

// UpdateStudentRequest represents a partial student update. Nil fields are
// left untouched; the merge is explicit per field, never reflective.
type UpdateStudentRequest struct {
	Code               *string `json:"code,omitempty"`
	Name               *string `json:"name,omitempty"`
	DocumentTypeID     *int64  `json:"documentTypeId,omitempty" binding:"omitempty,min=1"`
	Document           *string `json:"document,omitempty"`
	Semester           *string `json:"semester,omitempty"`
	Pensum             *string `json:"pensum,omitempty"`
	IntakePeriod       *string `json:"intakePeriod,omitempty"`
	EnrollmentStatusID *int64  `json:"enrollmentStatusId,omitempty" binding:"omitempty,min=1"`
	Phone              *string `json:"phone,omitempty"`
	PersonalEmail      *string `json:"personalEmail,omitempty" binding:"omitempty,email"`
	InstitutionalEmail *string `json:"institutionalEmail,omitempty" binding:"omitempty,email"`
	SchoolID           *int64  `json:"schoolId,omitempty" binding:"omitempty,min=1"`
	MunicipalityID     *int64  `json:"municipalityId,omitempty" binding:"omitempty,min=1"`
}

// ApplyTo merges the present fields onto the student.
func (r *UpdateStudentRequest) ApplyTo(s *models.Student) {
	if r.Code != nil {
		s.Code = *r.Code
	}
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.DocumentTypeID != nil {
		s.DocumentTypeID = *r.DocumentTypeID
	}
	if r.Document != nil {
		s.Document = *r.Document
	}
	if r.Semester != nil {
		s.Semester = *r.Semester
	}
	if r.Pensum != nil {
		s.Pensum = *r.Pensum
	}
	if r.IntakePeriod != nil {
		s.IntakePeriod = *r.IntakePeriod
	}
	if r.EnrollmentStatusID != nil {
		s.EnrollmentStatusID = *r.EnrollmentStatusID
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.PersonalEmail != nil {
		s.PersonalEmail = r.PersonalEmail
	}
	if r.InstitutionalEmail != nil {
		s.InstitutionalEmail = *r.InstitutionalEmail
	}
	if r.SchoolID != nil {
		s.SchoolID = *r.SchoolID
	}
	if r.MunicipalityID != nil {
		s.MunicipalityID = *r.MunicipalityID
	}
}

// StudentWithRisk is a row of the caller's associated-students listing.
type StudentWithRisk struct {
	Code               string           `json:"code"`
	Name               string           `json:"name"`
	Semester           string           `json:"semester"`
	InstitutionalEmail string           `json:"institutionalEmail"`
	Average            float64          `json:"average"`
	RiskLevel          models.RiskLevel `json:"riskLevel"`
}

// MyStudentsResponse wraps the associated-students listing with its
// unpaginated total.
type MyStudentsResponse struct {
	Students []StudentWithRisk `json:"students"`
	Total    int64             `json:"total"`
}
