package services

import (
	"context"
	"testing"
	"time"

	"protection-service/internal/cache"
	"protection-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func analyticsTreatment(id, cropID int64, year int, area, totalCost float64, products ...models.TreatmentProduct) models.Treatment {
	return models.Treatment{
		ID:            id,
		FieldID:       1,
		CropID:        &cropID,
		TreatmentDate: time.Date(year, 6, 15, 12, 0, 0, 0, time.UTC).Unix(),
		Area:          area,
		TotalCost:     &totalCost,
		Products:      products,
	}
}

type countingTreatmentStore struct {
	fakeTreatmentStore
	calls int
}

func (c *countingTreatmentStore) GetAll() ([]models.Treatment, error) {
	c.calls++
	return c.fakeTreatmentStore.GetAll()
}

func newAnalyticsService(treatments []models.Treatment) (*AnalyticsService, *countingTreatmentStore) {
	store := &countingTreatmentStore{fakeTreatmentStore: fakeTreatmentStore{treatments: treatments}}
	service := NewAnalyticsService(
		store,
		&fakeCropStore{crops: []models.Crop{
			{ID: 5, Name: "Пшеница", Category: models.CropCereals},
			{ID: 6, Name: "Подсолнечник", Category: models.CropTechnical},
		}},
		&fakeProductStore{avgEfficacy: map[int64]float64{3: 93.5}},
		cache.NewMemoryStore(),
	)
	return service, store
}

// ============================================================================
// TEST SUITE 1: AGGREGATION
// ============================================================================

func TestGetEconomicAnalytics_CropStats(t *testing.T) {
	treatments := []models.Treatment{
		analyticsTreatment(1, 5, 2026, 100, 50000),
		analyticsTreatment(2, 5, 2026, 100, 30000),
		analyticsTreatment(3, 6, 2026, 50, 90000),
	}
	service, _ := newAnalyticsService(treatments)

	analytics, err := service.GetEconomicAnalytics(context.Background(), false)

	assert.NoError(t, err)
	assert.Len(t, analytics.Crops, 2)
	assert.Equal(t, "Подсолнечник", analytics.Crops[0].CropName, "Crops sort by total cost descending")
	assert.Equal(t, 90000.0, analytics.Crops[0].TotalCost)
	assert.Equal(t, "Пшеница", analytics.Crops[1].CropName)
	assert.Equal(t, 80000.0, analytics.Crops[1].TotalCost)
	assert.Equal(t, 400.0, analytics.Crops[1].CostPerHectare)
	assert.Equal(t, 2, analytics.Crops[1].Treatments)
}

func TestGetEconomicAnalytics_ProductStats(t *testing.T) {
	cost := 12000.0
	treatments := []models.Treatment{
		analyticsTreatment(1, 5, 2026, 100, 50000,
			models.TreatmentProduct{ProductID: 3, Dosage: 2, Cost: &cost},
			models.TreatmentProduct{ProductID: 3, Dosage: 1.5, Cost: &cost},
		),
	}
	service, _ := newAnalyticsService(treatments)

	analytics, err := service.GetEconomicAnalytics(context.Background(), false)

	assert.NoError(t, err)
	assert.Len(t, analytics.Products, 1)
	stat := analytics.Products[0]
	assert.Equal(t, 2, stat.Applications)
	assert.Equal(t, 3.5, stat.TotalDosage)
	assert.Equal(t, 24000.0, stat.TotalCost)
	assert.NotNil(t, stat.EstimatedEfficacy)
	assert.Equal(t, 93.5, *stat.EstimatedEfficacy)
}

func TestGetEconomicAnalytics_SeasonalStats(t *testing.T) {
	treatments := []models.Treatment{
		analyticsTreatment(1, 5, 2025, 100, 40000),
		analyticsTreatment(2, 5, 2026, 100, 50000),
		analyticsTreatment(3, 5, 2026, 100, 30000),
	}
	service, _ := newAnalyticsService(treatments)

	analytics, err := service.GetEconomicAnalytics(context.Background(), false)

	assert.NoError(t, err)
	assert.Len(t, analytics.Seasons, 2)
	assert.Equal(t, "2026", analytics.Seasons[0].Season, "Most recent season comes first")
	assert.Equal(t, 2, analytics.Seasons[0].TotalTreatments)
	assert.Equal(t, 40000.0, analytics.Seasons[0].AvgCostPerTreatment)
	assert.Equal(t, "2025", analytics.Seasons[1].Season)

	assert.Equal(t, 3, analytics.Totals.TotalTreatments)
	assert.Equal(t, 300.0, analytics.Totals.TotalArea)
	assert.Equal(t, 120000.0, analytics.Totals.TotalCost)
}

func TestResolveTreatmentCost_FallsBackToProductCosts(t *testing.T) {
	costA, costB := 5000.0, 7000.0
	treatment := models.Treatment{
		Products: []models.TreatmentProduct{
			{ProductID: 1, Dosage: 2, Cost: &costA},
			{ProductID: 2, Dosage: 1, Cost: &costB},
		},
	}

	assert.Equal(t, 12000.0, resolveTreatmentCost(&treatment))

	recorded := 9999.0
	treatment.TotalCost = &recorded
	assert.Equal(t, 9999.0, resolveTreatmentCost(&treatment), "Recorded total always wins")
}

// ============================================================================
// TEST SUITE 2: CACHING
// ============================================================================

func TestGetEconomicAnalytics_ServedFromCache(t *testing.T) {
	treatments := []models.Treatment{analyticsTreatment(1, 5, 2026, 100, 50000)}
	service, store := newAnalyticsService(treatments)
	ctx := context.Background()

	first, err := service.GetEconomicAnalytics(ctx, false)
	assert.NoError(t, err)
	second, err := service.GetEconomicAnalytics(ctx, false)
	assert.NoError(t, err)

	assert.Equal(t, 1, store.calls, "Second read must hit the cache, not the store")
	assert.Equal(t, first.Totals, second.Totals)
}

func TestGetEconomicAnalytics_ForceRefreshBypassesCache(t *testing.T) {
	treatments := []models.Treatment{analyticsTreatment(1, 5, 2026, 100, 50000)}
	service, store := newAnalyticsService(treatments)
	ctx := context.Background()

	_, err := service.GetEconomicAnalytics(ctx, false)
	assert.NoError(t, err)
	_, err = service.GetEconomicAnalytics(ctx, true)
	assert.NoError(t, err)

	assert.Equal(t, 2, store.calls)
}

func TestClearCache_ForcesRecomputation(t *testing.T) {
	treatments := []models.Treatment{analyticsTreatment(1, 5, 2026, 100, 50000)}
	service, store := newAnalyticsService(treatments)
	ctx := context.Background()

	_, err := service.GetEconomicAnalytics(ctx, false)
	assert.NoError(t, err)
	assert.NoError(t, service.ClearCache(ctx))
	_, err = service.GetEconomicAnalytics(ctx, false)
	assert.NoError(t, err)

	assert.Equal(t, 2, store.calls)
}
