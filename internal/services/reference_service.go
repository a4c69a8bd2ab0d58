package services

import (
	"fmt"

	"protection-service/internal/models"
)

// ReferenceService serves the catalog data the UI needs for its pickers:
// products, pests, crops and fields. Read-only, no caching.
type ReferenceService struct {
	products ProductStore
	pests    PestStore
	crops    CropStore
	fields   FieldStore
}

func NewReferenceService(products ProductStore, pests PestStore, crops CropStore, fields FieldStore) *ReferenceService {
	return &ReferenceService{
		products: products,
		pests:    pests,
		crops:    crops,
		fields:   fields,
	}
}

// ListProducts returns the full catalog, or only products of the given type
// when one is supplied.
func (s *ReferenceService) ListProducts(productType *models.ProductType) ([]models.Product, error) {
	if productType != nil {
		products, err := s.products.GetByType(*productType)
		if err != nil {
			return nil, fmt.Errorf("list products by type: %w", err)
		}
		return products, nil
	}

	products, err := s.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ReferenceService) GetProduct(id int64) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return product, nil
}

func (s *ReferenceService) ListPests() ([]models.Pest, error) {
	pests, err := s.pests.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list pests: %w", err)
	}
	return pests, nil
}

func (s *ReferenceService) GetPest(id int64) (*models.Pest, error) {
	pest, err := s.pests.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get pest: %w", err)
	}
	if pest == nil {
		return nil, fmt.Errorf("pest %d not found", id)
	}
	return pest, nil
}

func (s *ReferenceService) ListCrops() ([]models.Crop, error) {
	crops, err := s.crops.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}
	return crops, nil
}

func (s *ReferenceService) ListFields() ([]models.Field, error) {
	fields, err := s.fields.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fields, nil
}
