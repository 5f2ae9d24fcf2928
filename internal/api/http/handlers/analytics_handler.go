package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/farm-helpdesk/internal/api/dto"
	"github.com/spec-kit/farm-helpdesk/internal/service"
)

// AnalyticsHandler serves admin dashboard aggregates.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Summary GET /admin/analytics/summary.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Analytics summary fetched", dto.AnalyticsSummaryResponse{
		StatusData:   chartDataResponse(summary.StatusData),
		CategoryData: chartDataResponse(summary.CategoryData),
		TotalCount:   summary.TotalCount,
	}))
}

// Trends GET /admin/analytics/trends.
func (h *AnalyticsHandler) Trends(c *fiber.Ctx) error {
	months := parseInt(c.Query("months"), 6)

	trends, err := h.service.Trends(c.Context(), months)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Trends fetched", dto.AnalyticsTrendsResponse{
		TrendsData:                 chartDataResponse(trends.TrendsData),
		AverageResolutionTimeHours: trends.AverageResolutionTimeHours,
	}))
}
