package models

import "github.com/lib/pq"

// TreatmentPlan is a scheduled future treatment for a field. Dates are unix
// seconds; the application window is plannedDate ± 2 days.
type TreatmentPlan struct {
	ID                  int64                 `db:"id" json:"id"`
	FieldID             int64                 `db:"field_id" json:"field_id"`
	CropID              *int64                `db:"crop_id" json:"crop_id,omitempty"`
	PlannedDate         int64                 `db:"planned_date" json:"planned_date"`
	WindowStart         int64                 `db:"window_start" json:"window_start"`
	WindowEnd           int64                 `db:"window_end" json:"window_end"`
	Status              TreatmentPlanStatus   `db:"status" json:"status"`
	Priority            TreatmentPlanPriority `db:"priority" json:"priority"`
	Reason              *string               `db:"reason" json:"reason,omitempty"`
	RecommendedProducts pq.Int64Array         `db:"recommended_products" json:"recommended_products,omitempty"`
	WarehouseStatus     *WarehouseStatus      `db:"warehouse_status" json:"warehouse_status,omitempty"`
	CreatedAt           int64                 `db:"created_at" json:"created_at"`
	UpdatedAt           int64                 `db:"updated_at" json:"updated_at"`
}

// IsUpcoming reports whether the plan still occupies the field's schedule.
func (p *TreatmentPlan) IsUpcoming(now int64) bool {
	switch p.Status {
	case PlanPlanned, PlanInProgress, PlanSnoozed:
		return p.PlannedDate >= now
	default:
		return false
	}
}

// TreatmentPlanDetails decorates a plan with display data resolved from the
// field, crop, product and inventory collaborators.
type TreatmentPlanDetails struct {
	TreatmentPlan
	FieldName               *string  `json:"field_name,omitempty"`
	CropName                *string  `json:"crop_name,omitempty"`
	CropNameEn              *string  `json:"crop_name_en,omitempty"`
	PlannedWindowLabel      *string  `json:"planned_window_label,omitempty"`
	RecommendedProductNames []string `json:"recommended_product_names,omitempty"`
	DaysUntil               int      `json:"days_until"`
	IsDueSoon               bool     `json:"is_due_soon"`
	IsOverdue               bool     `json:"is_overdue"`
}
