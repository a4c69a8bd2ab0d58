package models

import "fmt"

const maxFieldArea = 10000 // hectares

// SelectionCriteria is the input of a product selection run.
type SelectionCriteria struct {
	CropID           int64     `json:"crop_id"`
	CropPhase        *int      `json:"crop_phase,omitempty"`
	PestIDs          []int64   `json:"pest_ids"`
	SoilType         *SoilType `json:"soil_type,omitempty"`
	Temperature      *float64  `json:"temperature,omitempty"`
	Humidity         *float64  `json:"humidity,omitempty"`
	IsLowHumidity    bool      `json:"is_low_humidity,omitempty"`
	DaysUntilHarvest *int      `json:"days_until_harvest,omitempty"`
	Area             float64   `json:"area"`
	MinEfficacy      *float64  `json:"min_efficacy,omitempty"`
}

// Validate accumulates human-readable problems instead of failing on the
// first one, so batch flows can report everything at once.
func (c *SelectionCriteria) Validate() []string {
	var problems []string
	if c.CropID <= 0 {
		problems = append(problems, "Не выбрана культура")
	}
	if len(c.PestIDs) == 0 {
		problems = append(problems, "Не выбраны вредные объекты")
	}
	problems = append(problems, validateArea(c.Area)...)
	if c.MinEfficacy != nil && (*c.MinEfficacy < 0 || *c.MinEfficacy > 100) {
		problems = append(problems, "Минимальная эффективность должна быть от 0 до 100")
	}
	return problems
}

// TankMixRequest carries the product ids to evaluate as one tank mix.
type TankMixRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// WorkingSolutionRequest is the input of a working-solution calculation.
type WorkingSolutionRequest struct {
	ProductID int64       `json:"product_id"`
	Area      float64     `json:"area"`
	Dosage    float64     `json:"dosage"`
	Params    SprayParams `json:"params"`
}

// ValidateAgainst checks the requested area and dosage against the product's
// registered range, accumulating problems instead of failing fast.
func (r *WorkingSolutionRequest) ValidateAgainst(product *Product) []string {
	var problems []string
	problems = append(problems, validateArea(r.Area)...)
	if r.Dosage <= 0 {
		problems = append(problems, "Дозировка должна быть больше 0")
	} else if product != nil && (r.Dosage < product.MinDosage || r.Dosage > product.MaxDosage) {
		problems = append(problems, fmt.Sprintf(
			"Дозировка %.2f вне допустимого диапазона %.2f–%.2f %s",
			r.Dosage, product.MinDosage, product.MaxDosage, product.UnitDosage))
	}
	if r.Params.SprayerCapacity != nil && *r.Params.SprayerCapacity <= 0 {
		problems = append(problems, "Емкость опрыскивателя должна быть больше 0")
	}
	return problems
}

type SnoozePlanRequest struct {
	Days int `json:"days"`
}

type SetPlanStatusRequest struct {
	Status TreatmentPlanStatus `json:"status"`
}

func validateArea(area float64) []string {
	var problems []string
	if area <= 0 {
		problems = append(problems, "Площадь должна быть больше 0")
	} else if area > maxFieldArea {
		problems = append(problems, fmt.Sprintf("Площадь слишком большая (максимум %d га)", maxFieldArea))
	}
	return problems
}
