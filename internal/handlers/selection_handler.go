package handlers

import (
	"net/http"
	"strconv"

	"protection-service/internal/apiutil"
	"protection-service/internal/models"
	"protection-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type SelectionHandler struct {
	selectionService *services.ProductSelectionService
}

func NewSelectionHandler(selectionService *services.ProductSelectionService) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService}
}

func (h *SelectionHandler) Register(app *fiber.App) {
	group := app.Group("/protection/api/v1/recommendations")
	group.Post("/select", h.SelectProducts)
	group.Post("/alternatives/:productID", h.GetAlternatives)
}

// SelectProducts scores and ranks products matching the posted criteria.
func (h *SelectionHandler) SelectProducts(c fiber.Ctx) error {
	var criteria models.SelectionCriteria
	if err := c.Bind().Body(&criteria); err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Invalid request body"))
	}

	if problems := criteria.Validate(); len(problems) > 0 {
		return c.Status(http.StatusBadRequest).JSON(apiutil.ValidationError(problems))
	}

	recommendations, err := h.selectionService.SelectProducts(criteria)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("SELECTION_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(recommendations))
}

// GetAlternatives ranks replacements for one product under the same criteria.
func (h *SelectionHandler) GetAlternatives(c fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("productID"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Invalid product id"))
	}

	var criteria models.SelectionCriteria
	if err := c.Bind().Body(&criteria); err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_REQUEST", "Invalid request body"))
	}

	if problems := criteria.Validate(); len(problems) > 0 {
		return c.Status(http.StatusBadRequest).JSON(apiutil.ValidationError(problems))
	}

	alternatives, err := h.selectionService.GetAlternatives(productID, criteria)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("SELECTION_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(alternatives))
}
