package handlers

import (
	"net/http"
	"strconv"

	"protection-service/internal/apiutil"
	"protection-service/internal/models"
	"protection-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type PlanHandler struct {
	planningService *services.PlanningService
}

func NewPlanHandler(planningService *services.PlanningService) *PlanHandler {
	return &PlanHandler{planningService: planningService}
}

func (h *PlanHandler) Register(app *fiber.App) {
	group := app.Group("/protection/api/v1/plans")
	group.Get("/season", h.GetSeasonPlan)
	group.Post("/generate", h.GeneratePlans)
	group.Put("/:id/complete", h.CompletePlan)
	group.Put("/:id/snooze", h.SnoozePlan)
	group.Patch("/:id/status", h.SetPlanStatus)
}

// GetSeasonPlan returns upcoming plans decorated with product names,
// due-soon flags and warehouse availability.
func (h *PlanHandler) GetSeasonPlan(c fiber.Ctx) error {
	plans, err := h.planningService.GetSeasonPlan()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("PLAN_RETRIEVAL_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(plans))
}

// GeneratePlans creates missing plans for fields without an upcoming one.
func (h *PlanHandler) GeneratePlans(c fiber.Ctx) error {
	if err := h.planningService.EnsurePlansGenerated(); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("PLAN_GENERATION_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(fiber.Map{
		"message": "Plan generation completed",
	}))
}

func (h *PlanHandler) CompletePlan(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Invalid plan id"))
	}

	if err := h.planningService.MarkCompleted(id); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("PLAN_UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(fiber.Map{
		"message": "Plan marked as completed",
	}))
}

func (h *PlanHandler) SnoozePlan(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Invalid plan id"))
	}

	var req models.SnoozePlanRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Invalid request body"))
	}
	if req.Days <= 0 {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Snooze days must be positive"))
	}

	if err := h.planningService.SnoozePlan(id, req.Days); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("PLAN_UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(fiber.Map{
		"message": "Plan snoozed",
	}))
}

func (h *PlanHandler) SetPlanStatus(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Invalid plan id"))
	}

	var req models.SetPlanStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Invalid request body"))
	}

	if !models.IsValidPlanStatus(req.Status) {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Unknown plan status"))
	}

	if err := h.planningService.SetStatus(id, req.Status); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("PLAN_UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(fiber.Map{
		"message": "Plan status updated",
	}))
}
