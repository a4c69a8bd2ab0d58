package services

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"protection-service/internal/models"
)

const (
	defaultMinEfficacy = 90.0
	maxAlternatives    = 5

	efficacyWeight = 0.4
	costWeight     = 0.3
	safetyWeight   = 0.3
)

// ProductSelectionService ranks candidate products for a crop/pest/condition
// combination.
type ProductSelectionService struct {
	productStore ProductStore
	cropStore    CropStore
	dosage       *DosageService
}

func NewProductSelectionService(productStore ProductStore, cropStore CropStore, dosage *DosageService) *ProductSelectionService {
	return &ProductSelectionService{
		productStore: productStore,
		cropStore:    cropStore,
		dosage:       dosage,
	}
}

// SelectProducts runs the recommendation pipeline: union of products
// effective against any requested pest, intersected with crop-compatible
// products, filtered by waiting period, then scored and ranked. The sort is
// stable, so equal scores keep candidate order.
func (s *ProductSelectionService) SelectProducts(criteria models.SelectionCriteria) ([]models.RecommendedProduct, error) {
	minEfficacy := defaultMinEfficacy
	if criteria.MinEfficacy != nil {
		minEfficacy = *criteria.MinEfficacy
	}

	crop, err := s.cropStore.GetByID(criteria.CropID)
	if err != nil {
		return nil, fmt.Errorf("failed to load crop %d: %w", criteria.CropID, err)
	}

	// Union of products effective against any of the requested pests,
	// first-seen order preserved.
	var candidates []models.Product
	seen := make(map[int64]bool)
	for _, pestID := range criteria.PestIDs {
		products, err := s.productStore.GetEffectiveAgainstPest(pestID, minEfficacy)
		if err != nil {
			return nil, fmt.Errorf("failed to load products for pest %d: %w", pestID, err)
		}
		for _, product := range products {
			if !seen[product.ID] {
				seen[product.ID] = true
				candidates = append(candidates, product)
			}
		}
	}

	compatible, err := s.productStore.GetCompatibleWithCrop(criteria.CropID, criteria.CropPhase)
	if err != nil {
		return nil, fmt.Errorf("failed to load products for crop %d: %w", criteria.CropID, err)
	}
	compatibleIDs := make(map[int64]bool, len(compatible))
	for _, product := range compatible {
		compatibleIDs[product.ID] = true
	}

	conditions := models.EnvironmentalConditions{
		SoilType:      criteria.SoilType,
		Temperature:   criteria.Temperature,
		Humidity:      criteria.Humidity,
		IsLowHumidity: criteria.IsLowHumidity,
	}

	recommendations := make([]models.RecommendedProduct, 0, len(candidates))
	for i := range candidates {
		product := candidates[i]
		if !compatibleIDs[product.ID] {
			continue
		}
		if criteria.DaysUntilHarvest != nil && product.WaitingPeriod != nil &&
			*product.WaitingPeriod > *criteria.DaysUntilHarvest {
			continue
		}

		adjustment := s.dosage.AdjustDosage(&product, conditions)
		costPerHectare := s.dosage.CostPerHectare(&product, adjustment.AdjustedDosage)

		avgEfficacy, err := s.averageEfficacy(product.ID, criteria.PestIDs)
		if err != nil {
			return nil, err
		}

		score := s.score(avgEfficacy, costPerHectare, product.WaitingPeriod)
		warnings := s.collectWarnings(&product, crop, criteria.CropPhase, adjustment.Coefficient)

		recommendations = append(recommendations, models.RecommendedProduct{
			Product:        product,
			Efficacy:       round1(avgEfficacy),
			AdjustedDosage: round2(adjustment.AdjustedDosage),
			CostPerHectare: round2(costPerHectare),
			TotalCost:      round2(costPerHectare * criteria.Area),
			WaitingPeriod:  product.WaitingPeriod,
			Score:          round3(score),
			Warnings:       warnings,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	slog.Info("Product selection completed",
		"crop_id", criteria.CropID,
		"pests", len(criteria.PestIDs),
		"candidates", len(candidates),
		"recommended", len(recommendations))
	return recommendations, nil
}

// GetAlternatives reruns the pipeline without one product and keeps the top
// five results.
func (s *ProductSelectionService) GetAlternatives(excludeProductID int64, criteria models.SelectionCriteria) ([]models.RecommendedProduct, error) {
	all, err := s.SelectProducts(criteria)
	if err != nil {
		return nil, err
	}

	alternatives := make([]models.RecommendedProduct, 0, maxAlternatives)
	for _, rec := range all {
		if rec.Product.ID == excludeProductID {
			continue
		}
		alternatives = append(alternatives, rec)
		if len(alternatives) == maxAlternatives {
			break
		}
	}
	return alternatives, nil
}

// averageEfficacy averages the product's registered efficacy over the
// requested pests. Pests without data are left out of the average rather
// than counted as zero.
func (s *ProductSelectionService) averageEfficacy(productID int64, pestIDs []int64) (float64, error) {
	entries, err := s.productStore.GetPestEfficacyForProduct(productID)
	if err != nil {
		return 0, fmt.Errorf("failed to load efficacy for product %d: %w", productID, err)
	}

	byPest := make(map[int64]float64, len(entries))
	for _, entry := range entries {
		byPest[entry.PestID] = entry.EfficacyPct
	}

	total, count := 0.0, 0
	for _, pestID := range pestIDs {
		if efficacy, ok := byPest[pestID]; ok {
			total += efficacy
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return total / float64(count), nil
}

func (s *ProductSelectionService) score(avgEfficacy, costPerHectare float64, waitingPeriod *int) float64 {
	efficacyScore := avgEfficacy / 100

	costScore := 0.5 // unknown price: neutral
	if costPerHectare > 0 {
		costScore = 1 / (1 + costPerHectare/1000)
	}

	safetyScore := 0.6 // unset waiting period treated conservatively
	if waitingPeriod != nil {
		switch {
		case *waitingPeriod <= 30:
			safetyScore = 1.0
		case *waitingPeriod <= 60:
			safetyScore = 0.8
		}
	}

	return efficacyScore*efficacyWeight + costScore*costWeight + safetyScore*safetyWeight
}

func (s *ProductSelectionService) collectWarnings(product *models.Product, crop *models.Crop, cropPhase *int, coefficient float64) []string {
	warnings := []string{}

	if crop != nil && cropPhase != nil {
		if crop.BBCHMin != nil && *cropPhase < *crop.BBCHMin {
			warnings = append(warnings, fmt.Sprintf(
				"Фаза BBCH %d ниже рекомендуемого минимума (%d).", *cropPhase, *crop.BBCHMin))
		}
		if crop.BBCHMax != nil && *cropPhase > *crop.BBCHMax {
			warnings = append(warnings, fmt.Sprintf(
				"Фаза BBCH %d выше рекомендуемого максимума (%d).", *cropPhase, *crop.BBCHMax))
		}
	}
	if product.WaitingPeriod != nil && *product.WaitingPeriod > 30 {
		warnings = append(warnings, fmt.Sprintf("Длительный интервал ожидания: %d дней", *product.WaitingPeriod))
	}
	if coefficient > 1.2 {
		warnings = append(warnings, "Высокая корректировка дозировки из-за условий")
	}
	if coefficient < 0.9 {
		warnings = append(warnings, "Сниженная дозировка из-за условий")
	}
	return warnings
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
