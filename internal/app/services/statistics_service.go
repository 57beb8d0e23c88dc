package services

import (
	"context"
	"math"
	"sort"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

// StatisticsService turns the raw scoped aggregates into the per-mode
// statistics payloads. All percentage values are rounded to two decimals.
type StatisticsService struct {
	statsRepo repositories.IStatisticsRepository
}

// NewStatisticsService creates a new StatisticsService instance
func NewStatisticsService(statsRepo repositories.IStatisticsRepository) *StatisticsService {
	return &StatisticsService{
		statsRepo: statsRepo,
	}
}

// GetStatistics computes the statistics payload for the given mode, scoped
// to the caller's associated students.
func (s *StatisticsService) GetStatistics(ctx context.Context, userID int64, statType dto.StatisticType) (*dto.StatisticsResponse, error) {
	if !statType.Valid() {
		return nil, apperrors.NewBadRequestError("unsupported statistic type: " + string(statType))
	}

	resp := &dto.StatisticsResponse{Type: statType}

	switch statType {
	case dto.StatisticAverage:
		average, err := s.averageStatistics(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp.Average = average
	case dto.StatisticRiskLevel:
		groups, err := s.statsRepo.RiskLevelCounts(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp.Grouped = buildGrouped(groups, riskTierRank)
	default:
		groups, err := s.statsRepo.GroupCounts(ctx, userID, groupDimension(statType))
		if err != nil {
			return nil, err
		}
		resp.Grouped = buildGrouped(groups, nil)
	}

	return resp, nil
}

// averageStatistics builds the AVERAGE payload. The tier percentages use
// the unclipped total as divisor (floored at one), so averages falling
// outside every tier range dilute all three shares.
func (s *StatisticsService) averageStatistics(ctx context.Context, userID int64) (*dto.AverageStatistics, error) {
	summary, err := s.statsRepo.AverageSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	divisor := summary.Total
	if divisor < 1 {
		divisor = 1
	}

	distribution := make([]dto.StatisticItem, 0, 3)
	for _, level := range []models.RiskLevel{models.RiskHigh, models.RiskMedium, models.RiskLow} {
		count := summary.RiskCounts[level]
		distribution = append(distribution, dto.StatisticItem{
			Label:      string(level),
			Count:      count,
			Percentage: round2(float64(count) / float64(divisor) * 100),
		})
	}

	return &dto.AverageStatistics{
		OverallAverage:   round2(summary.OverallAverage),
		RiskDistribution: distribution,
		AverageRanges:    summary.Buckets,
	}, nil
}

// buildGrouped assembles a grouped payload. The divisor is the sum of the
// group counts, so the percentages of a non-empty result always total 100
// up to rounding. rank, when non-nil, fixes the item order; otherwise the
// items sort by label.
func buildGrouped(groups []repositories.GroupCount, rank func(string) int) *dto.GroupedStatistics {
	var total int64
	for _, g := range groups {
		total += g.Count
	}

	if rank != nil {
		sort.SliceStable(groups, func(i, j int) bool {
			return rank(groups[i].Label) < rank(groups[j].Label)
		})
	} else {
		sort.Slice(groups, func(i, j int) bool {
			return groups[i].Label < groups[j].Label
		})
	}

	items := make([]dto.StatisticItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, dto.StatisticItem{
			Label:      g.Label,
			Count:      g.Count,
			Percentage: round2(float64(g.Count) / float64(total) * 100),
		})
	}

	return &dto.GroupedStatistics{
		TotalStudents: total,
		Items:         items,
	}
}

func groupDimension(statType dto.StatisticType) repositories.GroupDimension {
	switch statType {
	case dto.StatisticSchool:
		return repositories.GroupBySchool
	case dto.StatisticMunicipality:
		return repositories.GroupByMunicipality
	default:
		return repositories.GroupBySemester
	}
}

// riskTierRank orders tiers from highest to lowest risk.
func riskTierRank(label string) int {
	switch label {
	case string(models.RiskHigh):
		return 0
	case string(models.RiskMedium):
		return 1
	default:
		return 2
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
