package handlers

import (
	"net/http"

	"protection-service/internal/apiutil"
	"protection-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type WarningHandler struct {
	warningService *services.WarningService
}

func NewWarningHandler(warningService *services.WarningService) *WarningHandler {
	return &WarningHandler{warningService: warningService}
}

func (h *WarningHandler) Register(app *fiber.App) {
	group := app.Group("/protection/api/v1/warnings")
	group.Get("/", h.GetWarnings)
}

// GetWarnings aggregates warnings across all categories, critical first.
func (h *WarningHandler) GetWarnings(c fiber.Ctx) error {
	summary, err := h.warningService.GetWarnings(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("WARNINGS_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(summary))
}
