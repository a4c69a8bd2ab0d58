// Package regulations holds the static agronomy reference tables consumed by
// the decision engine: resistance thresholds, phytotoxicity guidelines and
// quarantine restrictions. These are configuration data, not logic, and can
// be replaced from a JSON file without code changes.
package regulations

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type ResistanceThreshold struct {
	ActiveIngredient        string `json:"active_ingredient"`
	MaxApplicationsPerSeason int   `json:"max_applications_per_season"`
	IntervalDays            int    `json:"interval_days"`
}

type PhytotoxicityGuideline struct {
	ProductName    string   `json:"product_name"`
	MaxTemperature *float64 `json:"max_temperature,omitempty"`
	MinTemperature *float64 `json:"min_temperature,omitempty"`
	MinHumidity    *float64 `json:"min_humidity,omitempty"`
	Caution        string   `json:"caution"`
}

type QuarantineRestriction struct {
	PestName    string  `json:"pest_name"`
	Region      *string `json:"region,omitempty"`
	Restriction string  `json:"restriction"`
}

// Tables bundles all reference data consumed by the engine.
type Tables struct {
	ResistanceThresholds    []ResistanceThreshold    `json:"resistance_thresholds"`
	PhytotoxicityGuidelines []PhytotoxicityGuideline `json:"phytotoxicity_guidelines"`
	QuarantineRestrictions  []QuarantineRestriction  `json:"quarantine_restrictions"`
}

func f(v float64) *float64 { return &v }

// Default returns the built-in reference tables.
func Default() *Tables {
	return &Tables{
		ResistanceThresholds: []ResistanceThreshold{
			{ActiveIngredient: "Глифосат", MaxApplicationsPerSeason: 2, IntervalDays: 30},
			{ActiveIngredient: "Пропиконазол", MaxApplicationsPerSeason: 2, IntervalDays: 21},
			{ActiveIngredient: "Лямбда-цигалотрин", MaxApplicationsPerSeason: 3, IntervalDays: 14},
		},
		PhytotoxicityGuidelines: []PhytotoxicityGuideline{
			{
				ProductName:    "Раундап",
				MaxTemperature: f(28),
				Caution:        "При температуре выше 28°C повышается риск испарения и снижения эффективности.",
			},
			{
				ProductName:    "Альто Супер",
				MinTemperature: f(10),
				Caution:        "Не рекомендуется применять при температуре ниже 10°C — возможно снижение эффективности.",
			},
			{
				ProductName: "Каратэ",
				MinHumidity: f(40),
				Caution:     "При низкой влажности (<40%) повышается риск фитотоксичности для ослабленных растений.",
			},
		},
		QuarantineRestrictions: []QuarantineRestriction{
			{
				PestName:    "Амброзия",
				Restriction: "Зона карантина: требуется уведомление фитосанитарной службы и запрет на вывоз растительной продукции без обработки.",
			},
			{
				PestName:    "Повилика",
				Restriction: "Поля с очагами подлежат ограничению на перемещение семенного материала.",
			},
			{
				PestName:    "Горчак ползучий",
				Restriction: "Требует обязательной регистрации обработки и запрета на перевозку соломы.",
			},
		},
	}
}

// Load reads tables from a JSON file, falling back to the built-in defaults
// when path is empty.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read regulations file: %w", err)
	}
	var tables Tables
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("could not parse regulations file: %w", err)
	}
	return &tables, nil
}

// ThresholdFor matches an active ingredient case-insensitively.
func (t *Tables) ThresholdFor(activeIngredient string) *ResistanceThreshold {
	lowered := strings.ToLower(activeIngredient)
	for i := range t.ResistanceThresholds {
		if strings.ToLower(t.ResistanceThresholds[i].ActiveIngredient) == lowered {
			return &t.ResistanceThresholds[i]
		}
	}
	return nil
}

// GuidelineFor matches a product name case-insensitively.
func (t *Tables) GuidelineFor(productName string) *PhytotoxicityGuideline {
	lowered := strings.ToLower(productName)
	for i := range t.PhytotoxicityGuidelines {
		if strings.ToLower(t.PhytotoxicityGuidelines[i].ProductName) == lowered {
			return &t.PhytotoxicityGuidelines[i]
		}
	}
	return nil
}
