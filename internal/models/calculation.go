package models

// EnvironmentalConditions describes the field state at application time.
// Every field is optional; an unset field contributes a neutral 1.0
// coefficient to the dosage adjustment.
type EnvironmentalConditions struct {
	SoilType        *SoilType `json:"soil_type,omitempty"`
	Temperature     *float64  `json:"temperature,omitempty"` // °C
	Humidity        *float64  `json:"humidity,omitempty"`    // %
	WindSpeed       *float64  `json:"wind_speed,omitempty"`  // m/s
	IsLowHumidity   bool      `json:"is_low_humidity,omitempty"`
	IsWeakenedPlant bool      `json:"is_weakened_plants,omitempty"`
	CropPhase       *int      `json:"crop_phase,omitempty"` // BBCH code
}

// DosageAdjustment is the result of applying environmental coefficients to a
// product's base dosage. Coefficient is the raw product of the four factors
// even when AdjustedDosage had to be clamped into [min,max].
type DosageAdjustment struct {
	BaseDosage     float64           `json:"base_dosage"`
	AdjustedDosage float64           `json:"adjusted_dosage"`
	Coefficient    float64           `json:"coefficient"`
	Factors        AdjustmentFactors `json:"factors"`
}

type AdjustmentFactors struct {
	Soil           float64 `json:"soil"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	PlantCondition float64 `json:"plant_condition"`
}

// SprayParams tunes the working-solution volume calculation.
type SprayParams struct {
	SprayerType     SprayerType    `json:"sprayer_type,omitempty"`
	WindSpeed       *float64       `json:"wind_speed,omitempty"`
	Temperature     *float64       `json:"temperature,omitempty"`
	Coverage        *CoverageLevel `json:"coverage,omitempty"`
	SprayerCapacity *float64       `json:"sprayer_capacity,omitempty"` // tank volume, liters
}

type WorkingSolutionCalculation struct {
	Area              float64 `json:"area"`               // hectares
	RecommendedVolume float64 `json:"recommended_volume"` // l/ha, always within [100,400]
	TotalVolume       float64 `json:"total_volume"`       // liters
	ProductAmount     float64 `json:"product_amount"`     // liters or kg
	WaterAmount       float64 `json:"water_amount"`       // liters
	RefillsCount      *int    `json:"refills_count,omitempty"` // tank refills, when capacity is known
	CostPerHectare    float64 `json:"cost_per_hectare"`
	TotalCost         float64 `json:"total_cost"`
}

// RecommendedProduct is one ranked entry of a product selection run.
type RecommendedProduct struct {
	Product        Product  `json:"product"`
	Efficacy       float64  `json:"efficacy"` // average % across requested pests
	AdjustedDosage float64  `json:"adjusted_dosage"`
	CostPerHectare float64  `json:"cost_per_hectare"`
	TotalCost      float64  `json:"total_cost"`
	WaitingPeriod  *int     `json:"waiting_period,omitempty"`
	Score          float64  `json:"score"`
	Warnings       []string `json:"warnings"`
}

// TankMixResult is the verdict on mixing a set of products in one tank.
// Issues block the mix; warnings are advisory.
type TankMixResult struct {
	Compatible     bool      `json:"compatible"`
	Products       []Product `json:"products"`
	MixingSequence []Product `json:"mixing_sequence"`
	TotalDosage    float64   `json:"total_dosage"`
	Warnings       []string  `json:"warnings"`
	Issues         []string  `json:"issues"`
}
