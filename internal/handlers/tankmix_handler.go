package handlers

import (
	"net/http"

	"protection-service/internal/apiutil"
	"protection-service/internal/models"
	"protection-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type TankMixHandler struct {
	tankMixService *services.TankMixService
}

func NewTankMixHandler(tankMixService *services.TankMixService) *TankMixHandler {
	return &TankMixHandler{tankMixService: tankMixService}
}

func (h *TankMixHandler) Register(app *fiber.App) {
	group := app.Group("/protection/api/v1/tank-mix")
	group.Post("/", h.CalculateTankMix)
	group.Get("/methodology", h.Methodology)
}

// CalculateTankMix checks pairwise compatibility and builds a mixing sequence.
func (h *TankMixHandler) CalculateTankMix(c fiber.Ctx) error {
	var req models.TankMixRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Invalid request body"))
	}

	result, err := h.tankMixService.CalculateTankMix(req.ProductIDs)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("TANK_MIX_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(result))
}

func (h *TankMixHandler) Methodology(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(apiutil.Success(fiber.Map{
		"methodology": h.tankMixService.CompatibilityTestMethodology(),
	}))
}
