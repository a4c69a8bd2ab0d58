package services

import (
	"testing"
	"time"

	"protection-service/internal/models"

	"github.com/stretchr/testify/assert"
)

type planningFixture struct {
	fields     []models.Field
	treatments []models.Treatment
	crops      []models.Crop
	products   []models.Product
	inventory  []models.WarehouseInventory
	plans      *fakePlanStore
}

func newPlanningService(fx planningFixture) (*PlanningService, *fakePlanStore) {
	planStore := fx.plans
	if planStore == nil {
		planStore = &fakePlanStore{}
	}
	service := NewPlanningService(
		planStore,
		&fakeFieldStore{fields: fx.fields},
		&fakeCropStore{crops: fx.crops},
		&fakeTreatmentStore{treatments: fx.treatments},
		&fakeProductStore{products: fx.products},
		&fakeWarehouseStore{inventory: fx.inventory},
	)
	service.now = func() time.Time { return testNow }
	return service, planStore
}

// ============================================================================
// TEST SUITE 1: PLAN GENERATION
// ============================================================================

func TestEnsurePlansGenerated_FieldWithoutHistory(t *testing.T) {
	service, planStore := newPlanningService(planningFixture{
		fields: []models.Field{{ID: 1, Name: "Северное", Area: 100}},
	})

	err := service.EnsurePlansGenerated()

	assert.NoError(t, err)
	assert.Len(t, planStore.plans, 1)
	plan := planStore.plans[0]
	assert.Equal(t, testNow.AddDate(0, 0, 7).Unix(), plan.PlannedDate,
		"A field without history plans a week out")
	assert.Equal(t, models.PlanPlanned, plan.Status)
	assert.Equal(t, models.PriorityHigh, plan.Priority)
	assert.Equal(t, "Начальная обработка сезона", *plan.Reason)
	assert.Empty(t, plan.RecommendedProducts)
}

func TestEnsurePlansGenerated_FieldWithHistory(t *testing.T) {
	lastDate := testNow.AddDate(0, 0, -10).Unix()
	treatment := models.Treatment{
		ID:            1,
		FieldID:       1,
		CropID:        int64Ptr(5),
		TreatmentDate: lastDate,
		Area:          100,
		Products: []models.TreatmentProduct{
			{ProductID: 3, Dosage: 2},
			{ProductID: 4, Dosage: 1},
		},
	}

	service, planStore := newPlanningService(planningFixture{
		fields:     []models.Field{{ID: 1, Name: "Северное", Area: 100}},
		treatments: []models.Treatment{treatment},
	})

	err := service.EnsurePlansGenerated()

	assert.NoError(t, err)
	assert.Len(t, planStore.plans, 1)
	plan := planStore.plans[0]
	expectedDate := time.Unix(lastDate, 0).AddDate(0, 0, 21).Unix()
	assert.Equal(t, expectedDate, plan.PlannedDate, "Next plan is 21 days after the last treatment")
	assert.Equal(t, int64Ptr(5), plan.CropID)
	assert.Equal(t, []int64{3, 4}, []int64(plan.RecommendedProducts))
	assert.Equal(t, time.Unix(expectedDate, 0).AddDate(0, 0, -2).Unix(), plan.WindowStart)
	assert.Equal(t, time.Unix(expectedDate, 0).AddDate(0, 0, 2).Unix(), plan.WindowEnd)
	assert.Equal(t, models.PriorityMedium, plan.Priority, "11 days out falls in the medium band")
}

func TestEnsurePlansGenerated_Idempotent(t *testing.T) {
	service, planStore := newPlanningService(planningFixture{
		fields: []models.Field{{ID: 1, Name: "Северное", Area: 100}},
	})

	assert.NoError(t, service.EnsurePlansGenerated())
	assert.NoError(t, service.EnsurePlansGenerated())

	assert.Len(t, planStore.plans, 1, "A field with an upcoming plan gets nothing new")
}

func TestEnsurePlansGenerated_CompletedPlanDoesNotBlock(t *testing.T) {
	planStore := &fakePlanStore{
		nextID: 1,
		plans: []models.TreatmentPlan{{
			ID:          1,
			FieldID:     1,
			PlannedDate: testNow.AddDate(0, 0, 5).Unix(),
			Status:      models.PlanCompleted,
		}},
	}
	service, _ := newPlanningService(planningFixture{
		fields: []models.Field{{ID: 1, Name: "Северное", Area: 100}},
		plans:  planStore,
	})

	err := service.EnsurePlansGenerated()

	assert.NoError(t, err)
	assert.Len(t, planStore.plans, 2, "Completed plans do not count as upcoming")
}

// ============================================================================
// TEST SUITE 2: WAREHOUSE STATUS
// ============================================================================

func TestEnsurePlansGenerated_WarehouseStatus(t *testing.T) {
	cases := []struct {
		name      string
		inventory []models.WarehouseInventory
		expected  models.WarehouseStatus
	}{
		{"no stock", nil, models.WarehouseNoStock},
		{"low stock", []models.WarehouseInventory{{ID: 1, ProductID: 3, Quantity: 4}}, models.WarehouseLowStock},
		{"sufficient stock", []models.WarehouseInventory{{ID: 1, ProductID: 3, Quantity: 40}}, models.WarehouseOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			treatment := models.Treatment{
				ID:            1,
				FieldID:       1,
				TreatmentDate: testNow.AddDate(0, 0, -10).Unix(),
				Area:          100,
				Products:      []models.TreatmentProduct{{ProductID: 3, Dosage: 2}},
			}
			service, planStore := newPlanningService(planningFixture{
				fields:     []models.Field{{ID: 1, Name: "Северное", Area: 100}},
				treatments: []models.Treatment{treatment},
				inventory:  tc.inventory,
			})

			assert.NoError(t, service.EnsurePlansGenerated())
			assert.Len(t, planStore.plans, 1)
			assert.NotNil(t, planStore.plans[0].WarehouseStatus)
			assert.Equal(t, tc.expected, *planStore.plans[0].WarehouseStatus)
		})
	}
}

// ============================================================================
// TEST SUITE 3: SEASON PLAN DECORATION
// ============================================================================

func TestGetSeasonPlan_DecoratesPlans(t *testing.T) {
	treatment := models.Treatment{
		ID:            1,
		FieldID:       1,
		CropID:        int64Ptr(5),
		TreatmentDate: testNow.AddDate(0, 0, -19).Unix(), // next plan 2 days out
		Area:          100,
		Products:      []models.TreatmentProduct{{ProductID: 3, Dosage: 2}},
	}

	service, _ := newPlanningService(planningFixture{
		fields:     []models.Field{{ID: 1, Name: "Северное", Area: 100}},
		treatments: []models.Treatment{treatment},
		crops:      []models.Crop{{ID: 5, Name: "Пшеница", Category: models.CropCereals}},
		products: []models.Product{{
			ID: 3, Name: "Раундап", ActiveIngredient: "Глифосат",
			Type: models.ProductHerbicide, MinDosage: 2, MaxDosage: 4,
		}},
		inventory: []models.WarehouseInventory{{ID: 1, ProductID: 3, Quantity: 40}},
	})

	details, err := service.GetSeasonPlan()

	assert.NoError(t, err)
	assert.Len(t, details, 1)
	detail := details[0]
	assert.Equal(t, "Северное", *detail.FieldName)
	assert.Equal(t, "Пшеница", *detail.CropName)
	assert.Equal(t, []string{"Раундап"}, detail.RecommendedProductNames)
	assert.Equal(t, 2, detail.DaysUntil)
	assert.True(t, detail.IsDueSoon, "Two days out is within the reminder window")
	assert.False(t, detail.IsOverdue)
	assert.NotNil(t, detail.PlannedWindowLabel)
	assert.Equal(t, models.WarehouseOK, *detail.WarehouseStatus)
}

// ============================================================================
// TEST SUITE 4: STATUS TRANSITIONS
// ============================================================================

func TestSnoozePlan_RecomputesWindowAndPriority(t *testing.T) {
	plannedDate := testNow.AddDate(0, 0, 3).Unix()
	planStore := &fakePlanStore{
		nextID: 1,
		plans: []models.TreatmentPlan{{
			ID:          1,
			FieldID:     1,
			PlannedDate: plannedDate,
			WindowStart: time.Unix(plannedDate, 0).AddDate(0, 0, -2).Unix(),
			WindowEnd:   time.Unix(plannedDate, 0).AddDate(0, 0, 2).Unix(),
			Status:      models.PlanPlanned,
			Priority:    models.PriorityHigh,
		}},
	}
	service, _ := newPlanningService(planningFixture{plans: planStore})

	err := service.SnoozePlan(1, 14)

	assert.NoError(t, err)
	plan := planStore.plans[0]
	expectedDate := time.Unix(plannedDate, 0).AddDate(0, 0, 14).Unix()
	assert.Equal(t, expectedDate, plan.PlannedDate)
	assert.Equal(t, models.PlanSnoozed, plan.Status)
	assert.Equal(t, models.PriorityMedium, plan.Priority, "17 days out drops to medium priority")
	assert.Equal(t, time.Unix(expectedDate, 0).AddDate(0, 0, -2).Unix(), plan.WindowStart)
}

func TestSnoozePlan_UnknownPlan(t *testing.T) {
	service, _ := newPlanningService(planningFixture{})

	err := service.SnoozePlan(42, 7)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	service, _ := newPlanningService(planningFixture{})

	err := service.SetStatus(1, models.TreatmentPlanStatus("archived"))

	assert.Error(t, err)
}

func TestMarkCompleted(t *testing.T) {
	planStore := &fakePlanStore{
		nextID: 1,
		plans: []models.TreatmentPlan{{
			ID:      1,
			FieldID: 1,
			Status:  models.PlanPlanned,
		}},
	}
	service, _ := newPlanningService(planningFixture{plans: planStore})

	assert.NoError(t, service.MarkCompleted(1))
	assert.Equal(t, models.PlanCompleted, planStore.plans[0].Status)
}
