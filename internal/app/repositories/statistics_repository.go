package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hare-edu/hare-backend/internal/app/models"
)

// GroupDimension selects the grouping column of a grouped-count query.
type GroupDimension string

const (
	GroupBySchool       GroupDimension = "school"
	GroupByMunicipality GroupDimension = "municipality"
	GroupBySemester     GroupDimension = "semester"
)

// AverageSummary is the raw aggregate backing the AVERAGE statistics mode.
//
// Buckets holds the five-range histogram of raw averages. RiskCounts holds
// the tier counts computed over the literal policy ranges [0,1], [1.1,2.9]
// and [3.0,5.0] — values falling in the gaps between those ranges are
// counted in the total but in no tier. The mismatch with the histogram
// boundaries is a recorded institutional quirk; both schemes are kept as
// observed.
type AverageSummary struct {
	OverallAverage float64
	Total          int64
	Buckets        map[string]int64
	RiskCounts     map[models.RiskLevel]int64
}

// GroupCount is one group's label and size.
type GroupCount struct {
	Label string
	Count int64
}

// AssociatedStudentRow is one row of the caller's associated-students
// listing: student fields joined with the metric average.
type AssociatedStudentRow struct {
	Code               string
	Name               string
	Semester           string
	InstitutionalEmail string
	Average            float64
}

// IStatisticsRepository defines the scoped aggregation queries. Aggregates
// and the listing see only students associated with the given user and
// carrying a metric; CountAssociated counts all associated students.
type IStatisticsRepository interface {
	AverageSummary(ctx context.Context, userID int64) (*AverageSummary, error)
	GroupCounts(ctx context.Context, userID int64, dimension GroupDimension) ([]GroupCount, error)
	RiskLevelCounts(ctx context.Context, userID int64) ([]GroupCount, error)
	ListAssociated(ctx context.Context, userID int64, skip, limit int) ([]AssociatedStudentRow, error)
	CountAssociated(ctx context.Context, userID int64) (int64, error)
}

// StatisticsRepository computes grouped counts and average distributions
// over the joined student/metric/association data.
type StatisticsRepository struct {
	db *pgxpool.Pool
}

// NewStatisticsRepository creates a new statistics repository
func NewStatisticsRepository(db *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{
		db: db,
	}
}

// AverageSummary computes the overall average, the five-bucket histogram
// and the risk-range counts in a single aggregate query.
func (r *StatisticsRepository) AverageSummary(ctx context.Context, userID int64) (*AverageSummary, error) {
	query := `
		SELECT
			COALESCE(AVG(m.average), 0),
			COUNT(*),
			COALESCE(SUM(CASE WHEN m.average <= 1.0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.average > 1.0 AND m.average <= 2.0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.average > 2.0 AND m.average <= 3.0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.average > 3.0 AND m.average <= 4.0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.average > 4.0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.average BETWEEN 0.0 AND 1.0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.average BETWEEN 1.1 AND 2.9 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.average BETWEEN 3.0 AND 5.0 THEN 1 ELSE 0 END), 0)
		FROM students s
		JOIN user_students us ON us.student_id = s.id
		JOIN evaluation_metrics m ON m.student_id = s.id
		WHERE us.user_id = $1
	`

	summary := &AverageSummary{
		Buckets:    make(map[string]int64, 5),
		RiskCounts: make(map[models.RiskLevel]int64, 3),
	}

	var b01, b12, b23, b34, b45, high, medium, low int64
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&summary.OverallAverage,
		&summary.Total,
		&b01, &b12, &b23, &b34, &b45,
		&high, &medium, &low,
	)
	if err != nil {
		return nil, fmt.Errorf("error computing average summary: %w", err)
	}

	summary.Buckets["0-1"] = b01
	summary.Buckets["1-2"] = b12
	summary.Buckets["2-3"] = b23
	summary.Buckets["3-4"] = b34
	summary.Buckets["4-5"] = b45
	summary.RiskCounts[models.RiskHigh] = high
	summary.RiskCounts[models.RiskMedium] = medium
	summary.RiskCounts[models.RiskLow] = low

	return summary, nil
}

// GroupCounts groups the caller's associated students by school name,
// municipality name or raw semester.
func (r *StatisticsRepository) GroupCounts(ctx context.Context, userID int64, dimension GroupDimension) ([]GroupCount, error) {
	var query string
	switch dimension {
	case GroupBySchool:
		query = `
			SELECT c.name, COUNT(*)
			FROM students s
			JOIN user_students us ON us.student_id = s.id
			JOIN evaluation_metrics m ON m.student_id = s.id
			JOIN schools c ON c.id = s.school_id
			WHERE us.user_id = $1
			GROUP BY c.name
		`
	case GroupByMunicipality:
		query = `
			SELECT c.name, COUNT(*)
			FROM students s
			JOIN user_students us ON us.student_id = s.id
			JOIN evaluation_metrics m ON m.student_id = s.id
			JOIN municipalities c ON c.id = s.municipality_id
			WHERE us.user_id = $1
			GROUP BY c.name
		`
	case GroupBySemester:
		query = `
			SELECT s.semester, COUNT(*)
			FROM students s
			JOIN user_students us ON us.student_id = s.id
			JOIN evaluation_metrics m ON m.student_id = s.id
			WHERE us.user_id = $1
			GROUP BY s.semester
		`
	default:
		return nil, fmt.Errorf("unsupported group dimension: %s", dimension)
	}

	return r.queryGroupCounts(ctx, query, userID)
}

// RiskLevelCounts classifies each associated student in SQL and groups by
// tier label. The cascade mirrors models.ClassifyRisk without its gap:
// everything at or below 2.9 that is not HIGH counts as MEDIUM here, as
// observed in the behavior being replicated.
func (r *StatisticsRepository) RiskLevelCounts(ctx context.Context, userID int64) ([]GroupCount, error) {
	query := `
		SELECT
			CASE
				WHEN m.average <= 1.0 THEN 'HIGH'
				WHEN m.average <= 2.9 THEN 'MEDIUM'
				ELSE 'LOW'
			END AS level,
			COUNT(*)
		FROM students s
		JOIN user_students us ON us.student_id = s.id
		JOIN evaluation_metrics m ON m.student_id = s.id
		WHERE us.user_id = $1
		GROUP BY level
	`

	return r.queryGroupCounts(ctx, query, userID)
}

func (r *StatisticsRepository) queryGroupCounts(ctx context.Context, query string, userID int64) ([]GroupCount, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error computing group counts: %w", err)
	}
	defer rows.Close()

	var groups []GroupCount
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.Label, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// ListAssociated returns the caller's associated students joined with
// their averages, paginated by skip/limit.
func (r *StatisticsRepository) ListAssociated(ctx context.Context, userID int64, skip, limit int) ([]AssociatedStudentRow, error) {
	query := `
		SELECT s.code, s.name, s.semester, s.institutional_email, m.average
		FROM students s
		JOIN user_students us ON us.student_id = s.id
		JOIN evaluation_metrics m ON m.student_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.id
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing associated students: %w", err)
	}
	defer rows.Close()

	var students []AssociatedStudentRow
	for rows.Next() {
		var row AssociatedStudentRow
		if err := rows.Scan(&row.Code, &row.Name, &row.Semester, &row.InstitutionalEmail, &row.Average); err != nil {
			return nil, err
		}
		students = append(students, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// CountAssociated counts every student associated with the user,
// including students that carry no metric yet and are therefore absent
// from the listing.
func (r *StatisticsRepository) CountAssociated(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM user_students us
		WHERE us.user_id = $1
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting associated students: %w", err)
	}

	return total, nil
}
