package handlers

import (
	"net/http"
	"strconv"

	"protection-service/internal/apiutil"
	"protection-service/internal/models"
	"protection-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type CalculationHandler struct {
	dosageService *services.DosageService
	productStore  services.ProductStore
}

func NewCalculationHandler(dosageService *services.DosageService, productStore services.ProductStore) *CalculationHandler {
	return &CalculationHandler{
		dosageService: dosageService,
		productStore:  productStore,
	}
}

func (h *CalculationHandler) Register(app *fiber.App) {
	group := app.Group("/protection/api/v1/calculations")
	group.Post("/dosage/:productID", h.AdjustDosage)
	group.Post("/working-solution", h.WorkingSolution)
}

type dosageRequest struct {
	Conditions models.EnvironmentalConditions `json:"conditions"`
}

// AdjustDosage returns the coefficient-adjusted dosage for one product under
// the posted environmental conditions.
func (h *CalculationHandler) AdjustDosage(c fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("productID"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Invalid product id"))
	}

	var req dosageRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Invalid request body"))
	}

	product, err := h.productStore.GetByID(productID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}
	if product == nil {
		return c.Status(http.StatusNotFound).JSON(apiutil.Error("NOT_FOUND", "Product not found"))
	}

	adjustment := h.dosageService.AdjustDosage(product, req.Conditions)
	return c.Status(http.StatusOK).JSON(apiutil.Success(adjustment))
}

// WorkingSolution computes spray volume, water split and cost for an area.
func (h *CalculationHandler) WorkingSolution(c fiber.Ctx) error {
	var req models.WorkingSolutionRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Invalid request body"))
	}

	product, err := h.productStore.GetByID(req.ProductID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}
	if product == nil {
		return c.Status(http.StatusNotFound).JSON(apiutil.Error("NOT_FOUND", "Product not found"))
	}

	if problems := req.ValidateAgainst(product); len(problems) > 0 {
		return c.Status(http.StatusBadRequest).JSON(apiutil.ValidationError(problems))
	}

	result := h.dosageService.WorkingSolution(req.Area, product, req.Dosage, req.Params)
	return c.Status(http.StatusOK).JSON(apiutil.Success(result))
}
