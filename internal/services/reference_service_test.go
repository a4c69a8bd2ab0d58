package services

import (
	"testing"

	"protection-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func newReferenceService() *ReferenceService {
	products := &fakeProductStore{
		products: []models.Product{
			{ID: 1, Name: "Раундап", Type: models.ProductHerbicide},
			{ID: 2, Name: "Альто Супер", Type: models.ProductFungicide},
			{ID: 3, Name: "Каратэ", Type: models.ProductInsecticide},
			{ID: 4, Name: "Торнадо", Type: models.ProductHerbicide},
		},
	}
	pests := &fakePestStore{
		pests: []models.Pest{
			{ID: 10, Name: "Амброзия", Type: models.PestWeed},
			{ID: 11, Name: "Тля", Type: models.PestInsect},
		},
	}
	crops := &fakeCropStore{
		crops: []models.Crop{{ID: 5, Name: "Пшеница"}},
	}
	fields := &fakeFieldStore{
		fields: []models.Field{{ID: 7, Name: "Северное", Area: 120}},
	}
	return NewReferenceService(products, pests, crops, fields)
}

// ============================================================================
// TEST SUITE 1: PRODUCT CATALOG
// ============================================================================

func TestListProducts_All(t *testing.T) {
	service := newReferenceService()

	products, err := service.ListProducts(nil)

	assert.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestListProducts_FilteredByType(t *testing.T) {
	service := newReferenceService()
	herbicide := models.ProductHerbicide

	products, err := service.ListProducts(&herbicide)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Раундап", products[0].Name)
	assert.Equal(t, "Торнадо", products[1].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	service := newReferenceService()

	product, err := service.GetProduct(99)

	assert.Nil(t, product)
	assert.ErrorContains(t, err, "not found")
}

// ============================================================================
// TEST SUITE 2: PESTS, CROPS AND FIELDS
// ============================================================================

func TestGetPest_ByID(t *testing.T) {
	service := newReferenceService()

	pest, err := service.GetPest(11)

	assert.NoError(t, err)
	assert.Equal(t, "Тля", pest.Name)
}

func TestGetPest_NotFound(t *testing.T) {
	service := newReferenceService()

	pest, err := service.GetPest(42)

	assert.Nil(t, pest)
	assert.ErrorContains(t, err, "not found")
}

func TestListCropsAndFields(t *testing.T) {
	service := newReferenceService()

	crops, err := service.ListCrops()
	assert.NoError(t, err)
	assert.Len(t, crops, 1)

	fields, err := service.ListFields()
	assert.NoError(t, err)
	assert.Equal(t, "Северное", fields[0].Name)
}
