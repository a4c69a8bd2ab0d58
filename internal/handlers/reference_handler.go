package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"protection-service/internal/apiutil"
	"protection-service/internal/models"
	"protection-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

// ReferenceHandler exposes the catalog endpoints consumed by front-end pickers.
type ReferenceHandler struct {
	referenceService *services.ReferenceService
}

func NewReferenceHandler(referenceService *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

func (h *ReferenceHandler) Register(app *fiber.App) {
	group := app.Group("/protection/api/v1/catalog")
	group.Get("/products", h.ListProducts)
	group.Get("/products/:productID", h.GetProduct)
	group.Get("/pests", h.ListPests)
	group.Get("/pests/:pestID", h.GetPest)
	group.Get("/crops", h.ListCrops)
	group.Get("/fields", h.ListFields)
}

// ListProducts returns the product catalog, optionally filtered with
// ?type=herbicide|fungicide|insecticide|adjuvant.
func (h *ReferenceHandler) ListProducts(c fiber.Ctx) error {
	var productType *models.ProductType
	if raw := c.Query("type"); raw != "" {
		t := models.ProductType(raw)
		if !models.IsValidProductType(t) {
			return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Unknown product type: "+raw))
		}
		productType = &t
	}

	products, err := h.referenceService.ListProducts(productType)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(products))
}

func (h *ReferenceHandler) GetProduct(c fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("productID"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Invalid product id"))
	}

	product, err := h.referenceService.GetProduct(productID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(http.StatusNotFound).JSON(apiutil.Error("NOT_FOUND", err.Error()))
		}
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(product))
}

func (h *ReferenceHandler) ListPests(c fiber.Ctx) error {
	pests, err := h.referenceService.ListPests()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(pests))
}

func (h *ReferenceHandler) GetPest(c fiber.Ctx) error {
	pestID, err := strconv.ParseInt(c.Params("pestID"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(apiutil.Error("INVALID_PARAMETER", "Invalid pest id"))
	}

	pest, err := h.referenceService.GetPest(pestID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(http.StatusNotFound).JSON(apiutil.Error("NOT_FOUND", err.Error()))
		}
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(pest))
}

func (h *ReferenceHandler) ListCrops(c fiber.Ctx) error {
	crops, err := h.referenceService.ListCrops()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(crops))
}

func (h *ReferenceHandler) ListFields(c fiber.Ctx) error {
	fields, err := h.referenceService.ListFields()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(apiutil.Error("RETRIEVAL_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(apiutil.Success(fields))
}
