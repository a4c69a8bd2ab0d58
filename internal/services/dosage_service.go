package services

import (
	"math"

	"protection-service/internal/models"
)

// Working-solution volume bounds, l/ha. The floor dominates the aerial base
// volume on purpose: even aerial application reports at least 100 l/ha.
const (
	minVolumePerHa     = 100.0
	maxVolumePerHa     = 400.0
	defaultVolumePerHa = 200.0
	aerialVolumePerHa  = 50.0
)

// DosageService is the pure dosage-adjustment and working-solution
// calculator. It holds no state and calls no collaborators.
type DosageService struct{}

func NewDosageService() *DosageService {
	return &DosageService{}
}

func (s *DosageService) soilCoefficient(soil *models.SoilType) float64 {
	if soil == nil {
		return 1.0
	}
	switch *soil {
	case models.SoilSand:
		return 0.8
	case models.SoilLoam:
		return 1.0
	case models.SoilChernozem:
		return 1.2
	case models.SoilClay:
		return 1.1
	default:
		return 1.0
	}
}

func (s *DosageService) temperatureCoefficient(temperature *float64) float64 {
	if temperature == nil {
		return 1.0
	}
	switch {
	case *temperature < 15:
		return 1.3
	case *temperature <= 25:
		return 1.0
	default:
		return 0.8
	}
}

func (s *DosageService) humidityCoefficient(humidity *float64, isLow bool) float64 {
	if humidity == nil && !isLow {
		return 1.0
	}
	if isLow || (humidity != nil && *humidity < 40) {
		return 1.2
	}
	if humidity != nil && *humidity > 80 {
		return 0.9
	}
	return 1.0
}

func (s *DosageService) plantConditionCoefficient(isWeakened bool) float64 {
	if isWeakened {
		return 0.8
	}
	return 1.0
}

// AdjustDosage applies the four environmental coefficients to the product's
// base (midpoint) dosage. AdjustedDosage is clamped into [min,max] while
// Coefficient keeps the raw factor product for diagnostics.
func (s *DosageService) AdjustDosage(product *models.Product, conditions models.EnvironmentalConditions) models.DosageAdjustment {
	baseDosage := product.BaseDosage()

	factors := models.AdjustmentFactors{
		Soil:           s.soilCoefficient(conditions.SoilType),
		Temperature:    s.temperatureCoefficient(conditions.Temperature),
		Humidity:       s.humidityCoefficient(conditions.Humidity, conditions.IsLowHumidity),
		PlantCondition: s.plantConditionCoefficient(conditions.IsWeakenedPlant),
	}

	coefficient := factors.Soil * factors.Temperature * factors.Humidity * factors.PlantCondition
	adjusted := baseDosage * coefficient

	adjusted = math.Max(product.MinDosage, math.Min(product.MaxDosage, adjusted))

	return models.DosageAdjustment{
		BaseDosage:     baseDosage,
		AdjustedDosage: adjusted,
		Coefficient:    coefficient,
		Factors:        factors,
	}
}

// WorkingSolution computes the spray volume and water/product split for a
// treatment over the given area.
func (s *DosageService) WorkingSolution(area float64, product *models.Product, dosage float64, params models.SprayParams) models.WorkingSolutionCalculation {
	baseVolume := defaultVolumePerHa
	switch params.SprayerType {
	case models.SprayerAerial:
		baseVolume = aerialVolumePerHa
	case models.SprayerBoom:
		baseVolume = defaultVolumePerHa
	}

	if params.WindSpeed != nil {
		if *params.WindSpeed > 5 {
			baseVolume *= 1.2
		} else if *params.WindSpeed < 2 {
			baseVolume *= 0.9
		}
	}

	if params.Temperature != nil {
		if *params.Temperature > 25 {
			baseVolume *= 1.1
		} else if *params.Temperature < 15 {
			baseVolume *= 0.95
		}
	}

	if params.Coverage != nil {
		switch *params.Coverage {
		case models.CoverageHigh:
			baseVolume *= 1.2
		case models.CoverageLow:
			baseVolume *= 0.8
		}
	}

	recommendedVolume := math.Max(minVolumePerHa, math.Min(maxVolumePerHa, baseVolume))

	totalVolume := recommendedVolume * area
	productAmount := dosage * area
	waterAmount := totalVolume - productAmount
	costPerHectare := dosage * product.PricePerUnit
	totalCost := costPerHectare * area

	var refills *int
	if params.SprayerCapacity != nil && *params.SprayerCapacity > 0 {
		count := int(math.Ceil(totalVolume / *params.SprayerCapacity))
		refills = &count
	}

	return models.WorkingSolutionCalculation{
		Area:              area,
		RecommendedVolume: round1(recommendedVolume),
		TotalVolume:       round1(totalVolume),
		ProductAmount:     round2(productAmount),
		WaterAmount:       round1(waterAmount),
		RefillsCount:      refills,
		CostPerHectare:    round2(costPerHectare),
		TotalCost:         round2(totalCost),
	}
}

// CostPerHectare prices one hectare at the given dosage.
func (s *DosageService) CostPerHectare(product *models.Product, dosage float64) float64 {
	if product.PricePerUnit <= 0 {
		return 0
	}
	return dosage * product.PricePerUnit
}

// DosedProduct pairs a product with a chosen dosage for cost totals.
type DosedProduct struct {
	Product *models.Product
	Dosage  float64
}

// TotalCost sums the per-hectare cost of each dosed product over the area.
func (s *DosageService) TotalCost(items []DosedProduct, area float64) float64 {
	total := 0.0
	for _, item := range items {
		total += s.CostPerHectare(item.Product, item.Dosage) * area
	}
	return round2(total)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
