package models

// Student defines the student model based on the 'students' table.
// The (code, document) pair is unique system-wide. Catalog references are
// plain foreign-key ids; related names are joined in at query time when a
// response needs them.
type Student struct {
	ID                 int64   `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the student record
	Code               string  `json:"code" db:"code" example:"20201578"`                                       // Institutional student code
	Name               string  `json:"name" db:"name" example:"Carlos Perez"`                                   // Student's full name
	DocumentTypeID     int64   `json:"documentTypeId" db:"document_type_id" example:"1"`                        // FK to document_types
	Document           string  `json:"document" db:"document" example:"1002003004"`                             // Identity document number
	Semester           string  `json:"semester" db:"semester" example:"5"`                                      // Current semester (raw string, as reported)
	Pensum             string  `json:"pensum" db:"pensum" example:"2018-2"`                                     // Curriculum version
	IntakePeriod       string  `json:"intakePeriod" db:"intake_period" example:"2020-1"`                        // Term the student entered the program
	EnrollmentStatusID int64   `json:"enrollmentStatusId" db:"enrollment_status_id" example:"2"`                // FK to enrollment_statuses
	Phone              *string `json:"phone,omitempty" db:"phone" example:"3109876543"`                         // Mobile phone (nullable)
	PersonalEmail      *string `json:"personalEmail,omitempty" db:"personal_email" example:"carlos@gmail.com"`  // Personal email (nullable)
	InstitutionalEmail string  `json:"institutionalEmail" db:"institutional_email" example:"cperez@hare.edu.co"` // Institutional email
	SchoolID           int64   `json:"schoolId" db:"school_id" example:"3"`                                     // FK to schools (school of origin)
	MunicipalityID     int64   `json:"municipalityId" db:"municipality_id" example:"7"`                         // FK to municipalities (birth municipality)
}
