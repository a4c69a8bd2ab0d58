package services

import (
	"context"

	"protection-service/internal/models"
)

// ============================================================================
// IN-MEMORY FAKE STORES
// ============================================================================

func intPtr(v int) *int             { return &v }
func int64Ptr(v int64) *int64       { return &v }
func floatPtr(v float64) *float64   { return &v }
func strPtr(v string) *string       { return &v }
func soilPtr(v models.SoilType) *models.SoilType { return &v }

type fakeProductStore struct {
	products        []models.Product
	effectiveByPest map[int64][]models.Product
	cropCompatible  []models.Product
	efficacies      map[int64][]models.ProductEfficacy
	avgEfficacy     map[int64]float64
}

func (f *fakeProductStore) GetByID(id int64) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			product := f.products[i]
			return &product, nil
		}
	}
	return nil, nil
}

func (f *fakeProductStore) GetAll() ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeProductStore) GetByType(productType models.ProductType) ([]models.Product, error) {
	var matched []models.Product
	for _, p := range f.products {
		if p.Type == productType {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakeProductStore) GetEffectiveAgainstPest(pestID int64, minEfficacy float64) ([]models.Product, error) {
	return f.effectiveByPest[pestID], nil
}

func (f *fakeProductStore) GetCompatibleWithCrop(cropID int64, phase *int) ([]models.Product, error) {
	return f.cropCompatible, nil
}

func (f *fakeProductStore) GetPestEfficacyForProduct(productID int64) ([]models.ProductEfficacy, error) {
	return f.efficacies[productID], nil
}

func (f *fakeProductStore) GetAverageEfficacyBulk(productIDs []int64) (map[int64]float64, error) {
	result := make(map[int64]float64)
	for _, id := range productIDs {
		if avg, ok := f.avgEfficacy[id]; ok {
			result[id] = avg
		}
	}
	return result, nil
}

type fakeCompatibilityStore struct {
	records []models.ProductCompatibility
}

func (f *fakeCompatibilityStore) GetCompatibility(idA, idB int64) (*models.ProductCompatibility, error) {
	lo, hi := idA, idB
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := range f.records {
		if f.records[i].ProductID1 == lo && f.records[i].ProductID2 == hi {
			record := f.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

type fakeTreatmentStore struct {
	treatments []models.Treatment
}

func (f *fakeTreatmentStore) GetAll() ([]models.Treatment, error) {
	return f.treatments, nil
}

func (f *fakeTreatmentStore) GetByField(fieldID int64) ([]models.Treatment, error) {
	var result []models.Treatment
	for _, treatment := range f.treatments {
		if treatment.FieldID == fieldID {
			result = append(result, treatment)
		}
	}
	return result, nil
}

type fakeFieldStore struct {
	fields []models.Field
}

func (f *fakeFieldStore) GetAll() ([]models.Field, error) {
	return f.fields, nil
}

func (f *fakeFieldStore) GetByID(id int64) (*models.Field, error) {
	for i := range f.fields {
		if f.fields[i].ID == id {
			field := f.fields[i]
			return &field, nil
		}
	}
	return nil, nil
}

type fakeCropStore struct {
	crops []models.Crop
}

func (f *fakeCropStore) GetAll() ([]models.Crop, error) {
	return f.crops, nil
}

func (f *fakeCropStore) GetByID(id int64) (*models.Crop, error) {
	for i := range f.crops {
		if f.crops[i].ID == id {
			crop := f.crops[i]
			return &crop, nil
		}
	}
	return nil, nil
}

type fakePestStore struct {
	pests []models.Pest
}

func (f *fakePestStore) GetAll() ([]models.Pest, error) {
	return f.pests, nil
}

func (f *fakePestStore) GetByID(id int64) (*models.Pest, error) {
	for i := range f.pests {
		if f.pests[i].ID == id {
			pest := f.pests[i]
			return &pest, nil
		}
	}
	return nil, nil
}

type fakeWarehouseStore struct {
	inventory []models.WarehouseInventory
}

func (f *fakeWarehouseStore) GetAll() ([]models.WarehouseInventory, error) {
	return f.inventory, nil
}

func (f *fakeWarehouseStore) GetByProduct(productID int64) ([]models.WarehouseInventory, error) {
	var result []models.WarehouseInventory
	for _, item := range f.inventory {
		if item.ProductID == productID {
			result = append(result, item)
		}
	}
	return result, nil
}

type fakePlanStore struct {
	plans  []models.TreatmentPlan
	nextID int64
}

func (f *fakePlanStore) GetAll() ([]models.TreatmentPlan, error) {
	return f.plans, nil
}

func (f *fakePlanStore) GetUpcoming(daysAhead int) ([]models.TreatmentPlan, error) {
	var result []models.TreatmentPlan
	for _, plan := range f.plans {
		switch plan.Status {
		case models.PlanPlanned, models.PlanInProgress, models.PlanSnoozed:
			result = append(result, plan)
		}
	}
	return result, nil
}

func (f *fakePlanStore) GetByID(id int64) (*models.TreatmentPlan, error) {
	for i := range f.plans {
		if f.plans[i].ID == id {
			plan := f.plans[i]
			return &plan, nil
		}
	}
	return nil, nil
}

func (f *fakePlanStore) Save(plan *models.TreatmentPlan) error {
	if plan.ID == 0 {
		f.nextID++
		plan.ID = f.nextID
		f.plans = append(f.plans, *plan)
		return nil
	}
	for i := range f.plans {
		if f.plans[i].ID == plan.ID {
			f.plans[i] = *plan
			return nil
		}
	}
	f.plans = append(f.plans, *plan)
	return nil
}

func (f *fakePlanStore) UpdateStatus(id int64, status models.TreatmentPlanStatus) error {
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans[i].Status = status
			return nil
		}
	}
	return nil
}

type fakeResistanceStore struct {
	records []models.ResistanceRecord
}

func (f *fakeResistanceStore) GetAll() ([]models.ResistanceRecord, error) {
	return f.records, nil
}

func (f *fakeResistanceStore) Replace(records []models.ResistanceRecord) error {
	f.records = records
	return nil
}

type fakeNotifier struct {
	published []models.WarningItem
}

func (f *fakeNotifier) PublishWarning(_ context.Context, item models.WarningItem) error {
	f.published = append(f.published, item)
	return nil
}
