package handlers

import (
	"net/http"

	"protection-service/internal/apiutil"
	"protection-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Register(app *fiber.App) {
	group := app.Group("/protection/api/v1/analytics")
	group.Get("/economic", h.GetEconomicAnalytics)
	group.Delete("/cache", h.ClearCache)
}

// GetEconomicAnalytics serves cached cost and performance aggregates.
// Pass ?refresh=true to bypass the cache.
func (h *AnalyticsHandler) GetEconomicAnalytics(c fiber.Ctx) error {
	forceRefresh := c.Query("refresh") == "true"

	analytics, err := h.analyticsService.GetEconomicAnalytics(c.Context(), forceRefresh)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("ANALYTICS_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(analytics))
}

func (h *AnalyticsHandler) ClearCache(c fiber.Ctx) error {
	if err := h.analyticsService.ClearCache(c.Context()); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("CACHE_CLEAR_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(fiber.Map{
		"message": "Analytics cache cleared",
	}))
}
