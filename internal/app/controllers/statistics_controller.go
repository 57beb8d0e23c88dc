package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/services"
	"github.com/hare-edu/hare-backend/internal/middleware"
)

// StatisticsController handles the statistics and chart endpoints, both
// scoped to the authenticated user's associated students.
type StatisticsController struct {
	statisticsService *services.StatisticsService
	chartService      *services.ChartService
	userService       *services.UserService
}

// NewStatisticsController creates a new StatisticsController
func NewStatisticsController(statisticsService *services.StatisticsService, chartService *services.ChartService, userService *services.UserService) *StatisticsController {
	return &StatisticsController{
		statisticsService: statisticsService,
		chartService:      chartService,
		userService:       userService,
	}
}

// GetStatistics computes a statistics breakdown
// @Summary Get student statistics
// @Description Computes statistics over the caller's associated students, grouped by the requested dimension
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param type query string true "Statistic type" Enums(average, school, municipality, semester, risk_level)
// @Success 200 {object} dto.APIResponse{data=dto.StatisticsResponse} "Statistics computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Unsupported statistic type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/statistics [get]
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	userID, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	statType := dto.StatisticType(ctx.Query("type"))

	stats, err := c.statisticsService.GetStatistics(ctx, userID, statType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// GetChart renders a statistics breakdown as a chart
// @Summary Get a statistics chart
// @Description Renders the requested statistics breakdown as a base64-encoded PNG chart
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param type query string true "Statistic type" Enums(average, school, municipality, semester, risk_level)
// @Param chart query string true "Chart style" Enums(bar, pie, line)
// @Success 200 {object} dto.APIResponse{data=dto.ChartResponse} "Chart rendered successfully"
// @Failure 400 {object} dto.ErrorResponse "Unsupported type or no data to chart"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/charts [get]
func (c *StatisticsController) GetChart(ctx *gin.Context) {
	userID, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	statType := dto.StatisticType(ctx.Query("type"))
	chartType := dto.ChartType(ctx.Query("chart"))

	chart, err := c.chartService.GetChart(ctx, userID, statType, chartType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      chart,
		Timestamp: time.Now(),
	})
}

func (c *StatisticsController) resolveCaller(ctx *gin.Context) (int64, bool) {
	email := ctx.GetString(middleware.ContextEmailKey)

	user, err := c.userService.GetUserByEmail(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return user.ID, true
}
