package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseDosage_Midpoint(t *testing.T) {
	product := Product{MinDosage: 2, MaxDosage: 4}
	assert.Equal(t, 3.0, product.BaseDosage())
}

func TestFormulationClass_StoredValueWins(t *testing.T) {
	form := FormWP
	product := Product{Name: "Адъювант Супер", Type: ProductAdjuvant, Formulation: &form}
	assert.Equal(t, FormWP, product.FormulationClass(), "A stored formulation beats the name heuristic")
}

func TestFormulationClass_AdjuvantHeuristics(t *testing.T) {
	byType := Product{Name: "Сильвет", Type: ProductAdjuvant}
	assert.Equal(t, FormAdjuvant, byType.FormulationClass())

	byName := Product{Name: "Супер адъювант", Type: ProductHerbicide}
	assert.Equal(t, FormAdjuvant, byName.FormulationClass())

	fallback := Product{Name: "Раундап", Type: ProductHerbicide}
	assert.Equal(t, FormSC, fallback.FormulationClass(), "Unknown formulations default to SC")
}

func TestMixOrder_AdjuvantLast(t *testing.T) {
	ordered := []FormulationClass{FormWP, FormWG, FormSC, FormEC, FormSL, FormAdjuvant}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, MixOrder(ordered[i-1]), MixOrder(ordered[i]))
	}
}

func TestSeverityRank_Ordering(t *testing.T) {
	assert.Greater(t, SeverityRank(SeverityCritical), SeverityRank(SeverityCaution))
	assert.Greater(t, SeverityRank(SeverityCaution), SeverityRank(SeverityInfo))
	assert.Equal(t, 1, SeverityRank(WarningSeverity("unknown")))
}

func TestTreatmentPlan_IsUpcoming(t *testing.T) {
	now := int64(1_750_000_000)

	upcoming := TreatmentPlan{Status: PlanPlanned, PlannedDate: now + 100}
	assert.True(t, upcoming.IsUpcoming(now))

	snoozed := TreatmentPlan{Status: PlanSnoozed, PlannedDate: now + 100}
	assert.True(t, snoozed.IsUpcoming(now))

	past := TreatmentPlan{Status: PlanPlanned, PlannedDate: now - 100}
	assert.False(t, past.IsUpcoming(now))

	completed := TreatmentPlan{Status: PlanCompleted, PlannedDate: now + 100}
	assert.False(t, completed.IsUpcoming(now))
}
