package models

// WarningItem is one entry of the aggregated warning feed. Items are built
// fresh on every aggregation and never stored.
type WarningItem struct {
	ID                 string          `json:"id"`
	Category           WarningCategory `json:"category"`
	Title              string          `json:"title"`
	Message            string          `json:"message"`
	Severity           WarningSeverity `json:"severity"`
	RelatedFieldID     *int64          `json:"related_field_id,omitempty"`
	RelatedProductID   *int64          `json:"related_product_id,omitempty"`
	RelatedTreatmentID *int64          `json:"related_treatment_id,omitempty"`
}

type WarningSummary struct {
	GeneratedAt int64         `json:"generated_at"`
	Warnings    []WarningItem `json:"warnings"`
}

// ResistanceRisk is the computed (not persisted) view of active-ingredient
// pressure on a field over the lookback window.
type ResistanceRisk struct {
	FieldID           int64     `json:"field_id"`
	FieldName         string    `json:"field_name,omitempty"`
	ActiveIngredient  string    `json:"active_ingredient"`
	UsageCount        int       `json:"usage_count"`
	LastTreatmentDate int64     `json:"last_treatment_date,omitempty"`
	Threshold         int       `json:"threshold"`
	IntervalDays      int       `json:"interval_days"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Notes             string    `json:"notes,omitempty"`
}
