package models

type ProductType string

const (
	ProductHerbicide   ProductType = "herbicide"
	ProductFungicide   ProductType = "fungicide"
	ProductInsecticide ProductType = "insecticide"
	ProductAdjuvant    ProductType = "adjuvant"
)

func IsValidProductType(t ProductType) bool {
	switch t {
	case ProductHerbicide, ProductFungicide, ProductInsecticide, ProductAdjuvant:
		return true
	default:
		return false
	}
}

type SoilType string

const (
	SoilSand      SoilType = "sand"
	SoilLoam      SoilType = "loam"
	SoilChernozem SoilType = "chernozem"
	SoilClay      SoilType = "clay"
)

type PestType string

const (
	PestWeed     PestType = "weed"
	PestDisease  PestType = "disease"
	PestInsect   PestType = "insect"
	PestNematode PestType = "nematode"
)

type CropCategory string

const (
	CropCereals    CropCategory = "cereals"
	CropTechnical  CropCategory = "technical"
	CropVegetables CropCategory = "vegetables"
	CropFruit      CropCategory = "fruit"
)

// FormulationClass drives the tank-mix pouring order. Stored on the product;
// inferred from the name only for unseeded legacy rows.
type FormulationClass string

const (
	FormWP       FormulationClass = "WP" // wettable powder
	FormWG       FormulationClass = "WG" // water dispersible granules
	FormSC       FormulationClass = "SC" // suspension concentrate
	FormEC       FormulationClass = "EC" // emulsion concentrate
	FormSL       FormulationClass = "SL" // soluble liquid
	FormAdjuvant FormulationClass = "ADJUVANT"
)

type SprayerType string

const (
	SprayerBoom   SprayerType = "boom"
	SprayerAerial SprayerType = "aerial"
)

type CoverageLevel string

const (
	CoverageLow    CoverageLevel = "low"
	CoverageMedium CoverageLevel = "medium"
	CoverageHigh   CoverageLevel = "high"
)

type TreatmentPlanStatus string

const (
	PlanPlanned    TreatmentPlanStatus = "planned"
	PlanInProgress TreatmentPlanStatus = "in_progress"
	PlanCompleted  TreatmentPlanStatus = "completed"
	PlanCancelled  TreatmentPlanStatus = "cancelled"
	PlanSnoozed    TreatmentPlanStatus = "snoozed"
)

func IsValidPlanStatus(status TreatmentPlanStatus) bool {
	switch status {
	case PlanPlanned, PlanInProgress, PlanCompleted, PlanCancelled, PlanSnoozed:
		return true
	default:
		return false
	}
}

// TreatmentPlanPriority: 1 = high, 2 = medium, 3 = low.
type TreatmentPlanPriority int

const (
	PriorityHigh   TreatmentPlanPriority = 1
	PriorityMedium TreatmentPlanPriority = 2
	PriorityLow    TreatmentPlanPriority = 3
)

type WarehouseStatus string

const (
	WarehouseOK       WarehouseStatus = "ok"
	WarehouseLowStock WarehouseStatus = "low_stock"
	WarehouseNoStock  WarehouseStatus = "no_stock"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type WarningCategory string

const (
	WarningResistance    WarningCategory = "resistance"
	WarningPhytotoxicity WarningCategory = "phytotoxicity"
	WarningQuarantine    WarningCategory = "quarantine"
	WarningInventory     WarningCategory = "inventory"
	WarningWeather       WarningCategory = "weather"
)

type WarningSeverity string

const (
	SeverityInfo     WarningSeverity = "info"
	SeverityCaution  WarningSeverity = "caution"
	SeverityCritical WarningSeverity = "critical"
)

// SeverityRank orders severities for the aggregated feed: critical=3,
// caution=2, info=1.
func SeverityRank(s WarningSeverity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityCaution:
		return 2
	default:
		return 1
	}
}
