package services

import (
	"fmt"
	"log/slog"
	"time"

	"protection-service/internal/models"

	"github.com/lib/pq"
)

const (
	defaultIntervalDays = 21  // days between routine treatments
	firstPlanLeadDays   = 7   // lead time when a field has no history
	planWindowDays      = 2   // application window is plannedDate ± this
	reminderWindowDays  = 3
	seasonHorizonDays   = 180
)

// PlanningService generates and advances per-field treatment plans.
type PlanningService struct {
	planStore      TreatmentPlanStore
	fieldStore     FieldStore
	cropStore      CropStore
	treatmentStore TreatmentStore
	productStore   ProductStore
	warehouseStore WarehouseStore
	now            func() time.Time
}

func NewPlanningService(
	planStore TreatmentPlanStore,
	fieldStore FieldStore,
	cropStore CropStore,
	treatmentStore TreatmentStore,
	productStore ProductStore,
	warehouseStore WarehouseStore,
) *PlanningService {
	return &PlanningService{
		planStore:      planStore,
		fieldStore:     fieldStore,
		cropStore:      cropStore,
		treatmentStore: treatmentStore,
		productStore:   productStore,
		warehouseStore: warehouseStore,
		now:            time.Now,
	}
}

// GetSeasonPlan ensures every field has an upcoming plan, then returns the
// plans of the next half year decorated with display data.
func (s *PlanningService) GetSeasonPlan() ([]models.TreatmentPlanDetails, error) {
	if err := s.EnsurePlansGenerated(); err != nil {
		return nil, err
	}

	plans, err := s.planStore.GetUpcoming(seasonHorizonDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming plans: %w", err)
	}
	if len(plans) == 0 {
		return []models.TreatmentPlanDetails{}, nil
	}

	fields, err := s.fieldStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}
	crops, err := s.cropStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load crops: %w", err)
	}
	products, err := s.productStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	inventory, err := s.warehouseStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	fieldByID := make(map[int64]models.Field, len(fields))
	for _, field := range fields {
		fieldByID[field.ID] = field
	}
	cropByID := make(map[int64]models.Crop, len(crops))
	for _, crop := range crops {
		cropByID[crop.ID] = crop
	}
	productByID := make(map[int64]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}
	stockByProduct := make(map[int64]float64)
	for _, item := range inventory {
		stockByProduct[item.ProductID] += item.Quantity
	}

	now := s.now().Unix()
	details := make([]models.TreatmentPlanDetails, 0, len(plans))
	for _, plan := range plans {
		detail := models.TreatmentPlanDetails{TreatmentPlan: plan}

		if field, ok := fieldByID[plan.FieldID]; ok {
			name := field.Name
			detail.FieldName = &name
		}
		if plan.CropID != nil {
			if crop, ok := cropByID[*plan.CropID]; ok {
				name := crop.Name
				detail.CropName = &name
				detail.CropNameEn = crop.NameEn
			}
		}
		for _, productID := range plan.RecommendedProducts {
			if product, ok := productByID[productID]; ok {
				detail.RecommendedProductNames = append(detail.RecommendedProductNames, product.Name)
			}
		}

		detail.DaysUntil = int((plan.PlannedDate - now) / (24 * 60 * 60))
		detail.IsDueSoon = detail.DaysUntil >= 0 && detail.DaysUntil <= reminderWindowDays
		detail.IsOverdue = plan.PlannedDate < now && plan.Status == models.PlanPlanned

		if plan.WindowStart != 0 && plan.WindowEnd != 0 {
			label := fmt.Sprintf("%s – %s",
				time.Unix(plan.WindowStart, 0).Format("02.01"),
				time.Unix(plan.WindowEnd, 0).Format("02.01"))
			detail.PlannedWindowLabel = &label
		}

		if status := warehouseStatusFromTotals(plan.RecommendedProducts, stockByProduct); status != nil {
			detail.WarehouseStatus = status
		}

		details = append(details, detail)
	}

	return details, nil
}

// EnsurePlansGenerated synthesizes a plan for every field that has no
// upcoming (planned/in_progress/snoozed, plannedDate >= now) plan. Calling
// it again without new treatments creates nothing.
func (s *PlanningService) EnsurePlansGenerated() error {
	fields, err := s.fieldStore.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load fields: %w", err)
	}
	existing, err := s.planStore.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load plans: %w", err)
	}

	now := s.now().Unix()
	plansByField := make(map[int64][]models.TreatmentPlan)
	for _, plan := range existing {
		plansByField[plan.FieldID] = append(plansByField[plan.FieldID], plan)
	}

	for _, field := range fields {
		hasUpcoming := false
		for _, plan := range plansByField[field.ID] {
			if plan.IsUpcoming(now) {
				hasUpcoming = true
				break
			}
		}
		if hasUpcoming {
			continue
		}
		if err := s.generatePlanForField(&field); err != nil {
			return err
		}
	}
	return nil
}

func (s *PlanningService) generatePlanForField(field *models.Field) error {
	treatments, err := s.treatmentStore.GetByField(field.ID)
	if err != nil {
		return fmt.Errorf("failed to load treatments for field %d: %w", field.ID, err)
	}

	var lastTreatment *models.Treatment
	if len(treatments) > 0 {
		lastTreatment = &treatments[0]
	}

	plannedDate := s.nextPlannedDate(lastTreatment)
	recommended := recommendedProductIDs(lastTreatment)

	warehouseStatus, err := s.determineWarehouseStatus(recommended)
	if err != nil {
		return err
	}

	var cropID *int64
	if lastTreatment != nil {
		cropID = lastTreatment.CropID
	}

	reason := s.buildReason(lastTreatment)
	plan := models.TreatmentPlan{
		FieldID:             field.ID,
		CropID:              cropID,
		PlannedDate:         plannedDate,
		WindowStart:         addDays(plannedDate, -planWindowDays),
		WindowEnd:           addDays(plannedDate, planWindowDays),
		Status:              models.PlanPlanned,
		Priority:            s.priorityFor(plannedDate),
		Reason:              &reason,
		RecommendedProducts: recommended,
		WarehouseStatus:     warehouseStatus,
	}

	if err := s.planStore.Save(&plan); err != nil {
		return fmt.Errorf("failed to save plan for field %d: %w", field.ID, err)
	}
	slog.Info("Treatment plan generated",
		"field_id", field.ID,
		"planned_date", plannedDate,
		"priority", plan.Priority)
	return nil
}

// MarkCompleted finishes a plan.
func (s *PlanningService) MarkCompleted(id int64) error {
	return s.planStore.UpdateStatus(id, models.PlanCompleted)
}

// SnoozePlan pushes the plan forward by the given number of days,
// recomputing its window and priority.
func (s *PlanningService) SnoozePlan(id int64, days int) error {
	plan, err := s.planStore.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load plan %d: %w", id, err)
	}
	if plan == nil {
		return fmt.Errorf("treatment plan %d not found", id)
	}

	plan.PlannedDate = addDays(plan.PlannedDate, days)
	plan.WindowStart = addDays(plan.PlannedDate, -planWindowDays)
	plan.WindowEnd = addDays(plan.PlannedDate, planWindowDays)
	plan.Status = models.PlanSnoozed
	plan.Priority = s.priorityFor(plan.PlannedDate)

	if err := s.planStore.Save(plan); err != nil {
		return fmt.Errorf("failed to snooze plan %d: %w", id, err)
	}
	return nil
}

// SetStatus applies an explicit status transition.
func (s *PlanningService) SetStatus(id int64, status models.TreatmentPlanStatus) error {
	if !models.IsValidPlanStatus(status) {
		return fmt.Errorf("invalid plan status %q", status)
	}
	return s.planStore.UpdateStatus(id, status)
}

func (s *PlanningService) nextPlannedDate(lastTreatment *models.Treatment) int64 {
	if lastTreatment == nil {
		return addDays(s.now().Unix(), firstPlanLeadDays)
	}
	return addDays(lastTreatment.TreatmentDate, defaultIntervalDays)
}

func (s *PlanningService) priorityFor(plannedDate int64) models.TreatmentPlanPriority {
	daysUntil := calendarDaysBetween(s.now(), time.Unix(plannedDate, 0))
	switch {
	case daysUntil <= 7:
		return models.PriorityHigh
	case daysUntil <= 21:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func (s *PlanningService) buildReason(lastTreatment *models.Treatment) string {
	if lastTreatment == nil {
		return "Начальная обработка сезона"
	}
	return fmt.Sprintf("Плановая обработка после мероприятия от %s",
		time.Unix(lastTreatment.TreatmentDate, 0).Format("02.01.2006"))
}

// determineWarehouseStatus sums stock per recommended product: no product in
// stock at all means no_stock, any in-stock product at or below the low
// threshold means low_stock.
func (s *PlanningService) determineWarehouseStatus(recommended pq.Int64Array) (*models.WarehouseStatus, error) {
	if len(recommended) == 0 {
		return nil, nil
	}

	hasStock := false
	lowStock := false
	for _, productID := range recommended {
		batches, err := s.warehouseStore.GetByProduct(productID)
		if err != nil {
			return nil, fmt.Errorf("failed to load inventory for product %d: %w", productID, err)
		}
		total := 0.0
		for _, batch := range batches {
			total += batch.Quantity
		}
		if total > 0 {
			hasStock = true
			if total <= lowStockThreshold {
				lowStock = true
			}
		}
	}

	status := models.WarehouseOK
	if !hasStock {
		status = models.WarehouseNoStock
	} else if lowStock {
		status = models.WarehouseLowStock
	}
	return &status, nil
}

func warehouseStatusFromTotals(recommended pq.Int64Array, stockByProduct map[int64]float64) *models.WarehouseStatus {
	if len(recommended) == 0 {
		return nil
	}

	hasStock := false
	lowStock := false
	for _, productID := range recommended {
		total := stockByProduct[productID]
		if total > 0 {
			hasStock = true
			if total <= lowStockThreshold {
				lowStock = true
			}
		}
	}

	status := models.WarehouseOK
	if !hasStock {
		status = models.WarehouseNoStock
	} else if lowStock {
		status = models.WarehouseLowStock
	}
	return &status
}

func recommendedProductIDs(lastTreatment *models.Treatment) pq.Int64Array {
	if lastTreatment == nil || len(lastTreatment.Products) == 0 {
		return nil
	}
	ids := make(pq.Int64Array, 0, len(lastTreatment.Products))
	for _, usage := range lastTreatment.Products {
		ids = append(ids, usage.ProductID)
	}
	return ids
}

func addDays(unixSeconds int64, days int) int64 {
	return time.Unix(unixSeconds, 0).AddDate(0, 0, days).Unix()
}
