package services

import (
	"testing"

	"protection-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func testProduct(minDosage, maxDosage, price float64) *models.Product {
	return &models.Product{
		ID:               1,
		Name:             "Тестовый препарат",
		ActiveIngredient: "Глифосат",
		Type:             models.ProductHerbicide,
		PricePerUnit:     price,
		Unit:             "л",
		MinDosage:        minDosage,
		MaxDosage:        maxDosage,
		UnitDosage:       "л/га",
	}
}

// ============================================================================
// TEST SUITE 1: DOSAGE ADJUSTMENT
// ============================================================================

func TestAdjustDosage_NeutralConditions(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 4, 500)

	result := service.AdjustDosage(product, models.EnvironmentalConditions{})

	assert.Equal(t, 2.5, result.BaseDosage, "Base dosage should be the range midpoint")
	assert.Equal(t, 1.0, result.Coefficient)
	assert.Equal(t, 2.5, result.AdjustedDosage)
	assert.Equal(t, 1.0, result.Factors.Soil)
	assert.Equal(t, 1.0, result.Factors.Temperature)
	assert.Equal(t, 1.0, result.Factors.Humidity)
	assert.Equal(t, 1.0, result.Factors.PlantCondition)
}

func TestAdjustDosage_AllFactorsCombined(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 4, 500)

	result := service.AdjustDosage(product, models.EnvironmentalConditions{
		SoilType:        soilPtr(models.SoilChernozem), // 1.2
		Temperature:     floatPtr(12),                  // 1.3
		Humidity:        floatPtr(35),                  // 1.2
		IsWeakenedPlant: true,                          // 0.8
	})

	assert.InDelta(t, 1.4976, result.Coefficient, 1e-9, "Coefficient should be 1.2*1.3*1.2*0.8")
	assert.InDelta(t, 3.744, result.AdjustedDosage, 1e-9)
}

func TestAdjustDosage_ClampedToMinimum(t *testing.T) {
	service := NewDosageService()
	product := testProduct(2, 3, 500)

	// sand 0.8 * hot 0.8 * humid 0.9 * weakened 0.8 = 0.4608
	result := service.AdjustDosage(product, models.EnvironmentalConditions{
		SoilType:        soilPtr(models.SoilSand),
		Temperature:     floatPtr(30),
		Humidity:        floatPtr(90),
		IsWeakenedPlant: true,
	})

	assert.InDelta(t, 0.4608, result.Coefficient, 1e-9, "Coefficient reports the raw factor product")
	assert.Equal(t, 2.0, result.AdjustedDosage, "Adjusted dosage should be clamped to the registered minimum")
}

func TestAdjustDosage_ClampedToMaximum(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 2, 500)

	// chernozem 1.2 * cold 1.3 * dry 1.2 = 1.872, midpoint 1.5 -> 2.808
	result := service.AdjustDosage(product, models.EnvironmentalConditions{
		SoilType:    soilPtr(models.SoilChernozem),
		Temperature: floatPtr(12),
		Humidity:    floatPtr(35),
	})

	assert.InDelta(t, 1.872, result.Coefficient, 1e-9)
	assert.Equal(t, 2.0, result.AdjustedDosage, "Adjusted dosage should be clamped to the registered maximum")
}

func TestAdjustDosage_LowHumidityFlagWithoutValue(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 4, 500)

	result := service.AdjustDosage(product, models.EnvironmentalConditions{IsLowHumidity: true})

	assert.Equal(t, 1.2, result.Factors.Humidity, "Explicit low-humidity flag should raise the dosage without a measured value")
}

// ============================================================================
// TEST SUITE 2: WORKING SOLUTION
// ============================================================================

func TestWorkingSolution_DefaultBoomVolume(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 3, 500)

	result := service.WorkingSolution(10, product, 2, models.SprayParams{SprayerType: models.SprayerBoom})

	assert.Equal(t, 200.0, result.RecommendedVolume)
	assert.Equal(t, 2000.0, result.TotalVolume)
	assert.Equal(t, 20.0, result.ProductAmount)
	assert.Equal(t, 1980.0, result.WaterAmount)
	assert.Equal(t, 1000.0, result.CostPerHectare)
	assert.Equal(t, 10000.0, result.TotalCost)
}

func TestWorkingSolution_AerialClampedToFloor(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 3, 500)

	result := service.WorkingSolution(5, product, 1, models.SprayParams{SprayerType: models.SprayerAerial})

	assert.Equal(t, 100.0, result.RecommendedVolume, "Aerial base volume is below the floor and must be clamped up")
	assert.Equal(t, 500.0, result.TotalVolume)
}

func TestWorkingSolution_WindAndCoverageModifiers(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 3, 500)

	coverage := models.CoverageHigh
	result := service.WorkingSolution(1, product, 2, models.SprayParams{
		SprayerType: models.SprayerBoom,
		WindSpeed:   floatPtr(6), // *1.2
		Coverage:    &coverage,   // *1.2
	})

	assert.Equal(t, 288.0, result.RecommendedVolume)
}

func TestWorkingSolution_CalmWindReducesVolume(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 3, 500)

	result := service.WorkingSolution(1, product, 2, models.SprayParams{
		SprayerType: models.SprayerBoom,
		WindSpeed:   floatPtr(1),
	})

	assert.Equal(t, 180.0, result.RecommendedVolume)
}

func TestWorkingSolution_RefillsCount(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 3, 500)

	result := service.WorkingSolution(10, product, 2, models.SprayParams{
		SprayerType:     models.SprayerBoom,
		SprayerCapacity: floatPtr(300),
	})

	// 2000 l of solution in a 300 l tank
	assert.NotNil(t, result.RefillsCount)
	assert.Equal(t, 7, *result.RefillsCount)

	withoutCapacity := service.WorkingSolution(10, product, 2, models.SprayParams{SprayerType: models.SprayerBoom})
	assert.Nil(t, withoutCapacity.RefillsCount)
}

// ============================================================================
// TEST SUITE 3: COST CALCULATION
// ============================================================================

func TestCostPerHectare_ZeroPrice(t *testing.T) {
	service := NewDosageService()
	product := testProduct(1, 3, 0)

	assert.Equal(t, 0.0, service.CostPerHectare(product, 2), "Unknown price should cost zero, not a negative value")
}

func TestTotalCost_SumsDosedProducts(t *testing.T) {
	service := NewDosageService()

	total := service.TotalCost([]DosedProduct{
		{Product: testProduct(1, 3, 500), Dosage: 2},  // 1000/ha
		{Product: testProduct(1, 3, 1200), Dosage: 1}, // 1200/ha
	}, 10)

	assert.Equal(t, 22000.0, total)
}
