package models

import "time"

// Association links a user to a student they discovered through an import,
// based on the 'user_students' table. Rows are created lazily on first
// import and only ever read afterwards; deleting a student cascades them.
type Association struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	UserID    int64     `json:"userId" db:"user_id" example:"4"`
	StudentID int64     `json:"studentId" db:"student_id" example:"12"`
	IndexedAt time.Time `json:"indexedAt" db:"indexed_at" example:"2024-01-15T10:00:00Z"`
}
