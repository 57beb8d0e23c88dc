package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
	"github.com/hare-edu/hare-backend/internal/pkg/charts"
)

// ChartService renders statistics payloads as base64-encoded PNG charts.
type ChartService struct {
	statsService *StatisticsService
}

// NewChartService creates a new ChartService instance
func NewChartService(statsService *StatisticsService) *ChartService {
	return &ChartService{
		statsService: statsService,
	}
}

// GetChart computes the statistics for the given mode and renders them in
// the requested style. A scope with no chartable data is a bad request,
// not an empty image.
func (s *ChartService) GetChart(ctx context.Context, userID int64, statType dto.StatisticType, chartType dto.ChartType) (*dto.ChartResponse, error) {
	if !chartType.Valid() {
		return nil, apperrors.NewBadRequestError("unsupported chart type: " + string(chartType))
	}

	stats, err := s.statsService.GetStatistics(ctx, userID, statType)
	if err != nil {
		return nil, err
	}

	points := chartPoints(stats)
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	if len(points) == 0 || sum == 0 {
		return nil, apperrors.NewBadRequestError("no data available for the requested chart")
	}

	png, err := charts.RenderPNG(chartStyle(chartType), chartTitle(statType), points)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}

	return &dto.ChartResponse{
		StatisticType: statType,
		ChartType:     chartType,
		ImageBase64:   base64.StdEncoding.EncodeToString(png),
	}, nil
}

// chartPoints flattens a statistics payload into labeled values. The
// AVERAGE mode charts its histogram buckets in range order; grouped modes
// chart their items as-is.
func chartPoints(stats *dto.StatisticsResponse) []charts.Point {
	if stats.Average != nil {
		points := make([]charts.Point, 0, len(averageRangeOrder))
		for _, label := range averageRangeOrder {
			points = append(points, charts.Point{
				Label: label,
				Value: float64(stats.Average.AverageRanges[label]),
			})
		}
		return points
	}

	points := make([]charts.Point, 0, len(stats.Grouped.Items))
	for _, item := range stats.Grouped.Items {
		points = append(points, charts.Point{
			Label: item.Label,
			Value: float64(item.Count),
		})
	}
	return points
}

var averageRangeOrder = []string{"0-1", "1-2", "2-3", "3-4", "4-5"}

func chartStyle(chartType dto.ChartType) charts.Style {
	switch chartType {
	case dto.ChartPie:
		return charts.StylePie
	case dto.ChartLine:
		return charts.StyleLine
	default:
		return charts.StyleBar
	}
}

func chartTitle(statType dto.StatisticType) string {
	switch statType {
	case dto.StatisticAverage:
		return "Student Average Distribution"
	case dto.StatisticSchool:
		return "Students by School"
	case dto.StatisticMunicipality:
		return "Students by Municipality"
	case dto.StatisticSemester:
		return "Students by Semester"
	case dto.StatisticRiskLevel:
		return "Students by Risk Level"
	default:
		return "Student Statistics"
	}
}
