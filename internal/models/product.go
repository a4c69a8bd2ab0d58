package models

import "strings"

type Product struct {
	ID               int64             `db:"id" json:"id"`
	Name             string            `db:"name" json:"name"`
	NameEn           *string           `db:"name_en" json:"name_en,omitempty"`
	ActiveIngredient string            `db:"active_ingredient" json:"active_ingredient"`
	Concentration    *string           `db:"concentration" json:"concentration,omitempty"`
	Type             ProductType       `db:"type" json:"type"`
	Category         *string           `db:"category" json:"category,omitempty"`
	Manufacturer     *string           `db:"manufacturer" json:"manufacturer,omitempty"`
	Formulation      *FormulationClass `db:"formulation" json:"formulation,omitempty"`
	PricePerUnit     float64           `db:"price_per_unit" json:"price_per_unit"`
	Unit             string            `db:"unit" json:"unit"`
	MinDosage        float64           `db:"min_dosage" json:"min_dosage"`
	MaxDosage        float64           `db:"max_dosage" json:"max_dosage"`
	UnitDosage       string            `db:"unit_dosage" json:"unit_dosage"`
	WaitingPeriod    *int              `db:"waiting_period" json:"waiting_period,omitempty"`
	CreatedAt        int64             `db:"created_at" json:"created_at"`
	UpdatedAt        int64             `db:"updated_at" json:"updated_at"`
}

// BaseDosage is the midpoint of the registered dosage range.
func (p *Product) BaseDosage() float64 {
	return (p.MinDosage + p.MaxDosage) / 2
}

// FormulationClass returns the stored formulation. For legacy rows without one
// it falls back to a best-effort name heuristic: anything labelled as an
// adjuvant mixes last, everything else defaults to SC (the most common form).
func (p *Product) FormulationClass() FormulationClass {
	if p.Formulation != nil && *p.Formulation != "" {
		return *p.Formulation
	}
	name := strings.ToLower(p.Name)
	if p.Type == ProductAdjuvant || strings.Contains(name, "адъювант") || strings.Contains(name, "adjuvant") {
		return FormAdjuvant
	}
	return FormSC
}

// MixOrder ranks formulations for the pouring sequence: WP -> WG -> SC -> EC
// -> SL, adjuvants always last.
func MixOrder(f FormulationClass) int {
	switch f {
	case FormWP:
		return 1
	case FormWG:
		return 2
	case FormSC:
		return 3
	case FormEC:
		return 4
	case FormSL:
		return 5
	default: // adjuvant
		return 6
	}
}

// ProductEfficacy links a product to a pest with an efficacy percentage,
// optionally bounded to a crop and BBCH phase window.
type ProductEfficacy struct {
	ProductID      int64   `db:"product_id" json:"product_id"`
	PestID         int64   `db:"pest_id" json:"pest_id"`
	EfficacyPct    float64 `db:"efficacy_percent" json:"efficacy_percent"`
	CropID         *int64  `db:"crop_id" json:"crop_id,omitempty"`
	PhaseMin       *int    `db:"phase_min" json:"phase_min,omitempty"`
	PhaseMax       *int    `db:"phase_max" json:"phase_max,omitempty"`
}

// ProductCompatibility is an unordered product pair with three independent
// compatibility verdicts. Rows are stored canonically with ProductID1 <
// ProductID2; lookups are symmetric.
type ProductCompatibility struct {
	ProductID1           int64   `db:"product_id_1" json:"product_id_1"`
	ProductID2           int64   `db:"product_id_2" json:"product_id_2"`
	ChemicalCompatible   bool    `db:"chemical_compatible" json:"chemical_compatible"`
	PhysicalCompatible   bool    `db:"physical_compatible" json:"physical_compatible"`
	BiologicalCompatible bool    `db:"biological_compatible" json:"biological_compatible"`
	Notes                *string `db:"notes" json:"notes,omitempty"`
}
