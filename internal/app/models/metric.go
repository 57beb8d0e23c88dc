package models

// Metric defines the evaluation metric model based on the
// 'evaluation_metrics' table. Each student carries at most one row; the
// import path upserts it rather than relying on a database constraint.
type Metric struct {
	ID        int64   `json:"id" db:"id" example:"1"`
	StudentID int64   `json:"studentId" db:"student_id" example:"12"`
	Average   float64 `json:"average" db:"average" example:"3.47"` // Academic average, conceptually 0.0-5.0
}

// RiskLevel classifies a student's academic risk from their average.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// ClassifyRisk maps an average to its risk level.
//
// The ranges mirror the institutional policy as recorded: [0.0, 1.0] is
// HIGH, [1.1, 2.9] is MEDIUM, and everything else falls through to LOW —
// including values inside (1.0, 1.1) and anything above 2.9 or outside the
// nominal 0-5 scale. The (1.0, 1.1) gap is intentional and must not be
// merged into the neighboring ranges.
func ClassifyRisk(average float64) RiskLevel {
	switch {
	case average >= 0.0 && average <= 1.0:
		return RiskHigh
	case average >= 1.1 && average <= 2.9:
		return RiskMedium
	default:
		return RiskLow
	}
}
