package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"protection-service/internal/cache"
	"protection-service/internal/models"
)

const (
	analyticsCacheKey = "economic"
	analyticsCacheTTL = 5 * time.Minute
)

type CropEconomicStat struct {
	CropID         int64   `json:"crop_id"`
	CropName       string  `json:"crop_name"`
	TotalArea      float64 `json:"total_area"`
	TotalCost      float64 `json:"total_cost"`
	CostPerHectare float64 `json:"cost_per_hectare"`
	Treatments     int     `json:"treatments"`
}

type ProductPerformanceStat struct {
	ProductID         int64    `json:"product_id"`
	ProductName       string   `json:"product_name"`
	Applications      int      `json:"applications"`
	TotalDosage       float64  `json:"total_dosage"`
	TotalCost         float64  `json:"total_cost"`
	EstimatedEfficacy *float64 `json:"estimated_efficacy"`
}

type SeasonalCostStat struct {
	Season              string  `json:"season"`
	TotalTreatments     int     `json:"total_treatments"`
	TotalArea           float64 `json:"total_area"`
	TotalCost           float64 `json:"total_cost"`
	AvgCostPerTreatment float64 `json:"avg_cost_per_treatment"`
}

type AnalyticsTotals struct {
	TotalTreatments int     `json:"total_treatments"`
	TotalArea       float64 `json:"total_area"`
	TotalCost       float64 `json:"total_cost"`
}

type EconomicAnalytics struct {
	Crops    []CropEconomicStat       `json:"crops"`
	Products []ProductPerformanceStat `json:"products"`
	Seasons  []SeasonalCostStat       `json:"seasons"`
	Totals   AnalyticsTotals          `json:"totals"`
}

// AnalyticsService aggregates treatment history into economic statistics,
// served through a TTL read-through cache.
type AnalyticsService struct {
	treatmentStore TreatmentStore
	cropStore      CropStore
	productStore   ProductStore
	cacheStore     cache.Store
}

func NewAnalyticsService(treatmentStore TreatmentStore, cropStore CropStore, productStore ProductStore, cacheStore cache.Store) *AnalyticsService {
	return &AnalyticsService{
		treatmentStore: treatmentStore,
		cropStore:      cropStore,
		productStore:   productStore,
		cacheStore:     cacheStore,
	}
}

// GetEconomicAnalytics serves the cached analytics when fresh, otherwise
// recomputes and caches the result. forceRefresh bypasses the cache read.
func (s *AnalyticsService) GetEconomicAnalytics(ctx context.Context, forceRefresh bool) (*EconomicAnalytics, error) {
	if !forceRefresh {
		var cached EconomicAnalytics
		hit, err := s.cacheStore.Get(ctx, analyticsCacheKey, &cached)
		if err != nil {
			slog.Warn("Analytics cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	treatments, err := s.treatmentStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load treatments: %w", err)
	}
	crops, err := s.cropStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load crops: %w", err)
	}
	products, err := s.productStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	cropByID := make(map[int64]models.Crop, len(crops))
	for _, crop := range crops {
		cropByID[crop.ID] = crop
	}
	productByID := make(map[int64]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	productStats, err := s.buildProductStats(treatments, productByID)
	if err != nil {
		return nil, err
	}

	analytics := &EconomicAnalytics{
		Crops:    s.buildCropStats(treatments, cropByID),
		Products: productStats,
		Seasons:  s.buildSeasonalStats(treatments),
		Totals:   s.buildTotals(treatments),
	}

	if err := s.cacheStore.Set(ctx, analyticsCacheKey, analytics, analyticsCacheTTL); err != nil {
		slog.Warn("Analytics cache write failed", "error", err)
	}
	return analytics, nil
}

// ClearCache drops the cached analytics so the next read recomputes.
func (s *AnalyticsService) ClearCache(ctx context.Context) error {
	return s.cacheStore.Invalidate(ctx, analyticsCacheKey)
}

func (s *AnalyticsService) buildCropStats(treatments []models.Treatment, cropByID map[int64]models.Crop) []CropEconomicStat {
	stats := make(map[int64]*CropEconomicStat)
	var order []int64

	for _, treatment := range treatments {
		if treatment.CropID == nil {
			continue
		}
		cropID := *treatment.CropID

		stat, ok := stats[cropID]
		if !ok {
			name := "Неизвестная культура"
			if crop, found := cropByID[cropID]; found {
				name = crop.Name
			}
			stat = &CropEconomicStat{CropID: cropID, CropName: name}
			stats[cropID] = stat
			order = append(order, cropID)
		}

		stat.TotalArea += treatment.Area
		stat.TotalCost += resolveTreatmentCost(&treatment)
		stat.Treatments++
		if stat.TotalArea > 0 {
			stat.CostPerHectare = stat.TotalCost / stat.TotalArea
		}
	}

	result := make([]CropEconomicStat, 0, len(order))
	for _, cropID := range order {
		result = append(result, *stats[cropID])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].TotalCost > result[j].TotalCost })
	return result
}

func (s *AnalyticsService) buildProductStats(treatments []models.Treatment, productByID map[int64]models.Product) ([]ProductPerformanceStat, error) {
	stats := make(map[int64]*ProductPerformanceStat)
	var order []int64

	for _, treatment := range treatments {
		for _, usage := range treatment.Products {
			stat, ok := stats[usage.ProductID]
			if !ok {
				name := "Неизвестный препарат"
				if product, found := productByID[usage.ProductID]; found {
					name = product.Name
				}
				stat = &ProductPerformanceStat{ProductID: usage.ProductID, ProductName: name}
				stats[usage.ProductID] = stat
				order = append(order, usage.ProductID)
			}

			stat.Applications++
			stat.TotalDosage += usage.Dosage
			if usage.Cost != nil {
				stat.TotalCost += *usage.Cost
			}
		}
	}

	if len(order) > 0 {
		efficacyByID, err := s.productStore.GetAverageEfficacyBulk(order)
		if err != nil {
			return nil, fmt.Errorf("failed to load bulk efficacy: %w", err)
		}
		for _, productID := range order {
			if avg, ok := efficacyByID[productID]; ok {
				value := avg
				stats[productID].EstimatedEfficacy = &value
			}
		}
	}

	result := make([]ProductPerformanceStat, 0, len(order))
	for _, productID := range order {
		result = append(result, *stats[productID])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].TotalCost > result[j].TotalCost })
	return result, nil
}

func (s *AnalyticsService) buildSeasonalStats(treatments []models.Treatment) []SeasonalCostStat {
	stats := make(map[string]*SeasonalCostStat)
	var order []string

	for _, treatment := range treatments {
		season := strconv.Itoa(time.Unix(treatment.TreatmentDate, 0).Year())

		stat, ok := stats[season]
		if !ok {
			stat = &SeasonalCostStat{Season: season}
			stats[season] = stat
			order = append(order, season)
		}

		stat.TotalTreatments++
		stat.TotalArea += treatment.Area
		stat.TotalCost += resolveTreatmentCost(&treatment)
		stat.AvgCostPerTreatment = stat.TotalCost / float64(stat.TotalTreatments)
	}

	result := make([]SeasonalCostStat, 0, len(order))
	for _, season := range order {
		result = append(result, *stats[season])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Season > result[j].Season })
	return result
}

func (s *AnalyticsService) buildTotals(treatments []models.Treatment) AnalyticsTotals {
	totals := AnalyticsTotals{}
	for _, treatment := range treatments {
		totals.TotalTreatments++
		totals.TotalArea += treatment.Area
		totals.TotalCost += resolveTreatmentCost(&treatment)
	}
	return totals
}

// resolveTreatmentCost prefers the recorded total and falls back to summing
// per-product costs.
func resolveTreatmentCost(treatment *models.Treatment) float64 {
	if treatment.TotalCost != nil {
		return *treatment.TotalCost
	}
	total := 0.0
	for _, usage := range treatment.Products {
		if usage.Cost != nil {
			total += *usage.Cost
		}
	}
	return total
}
