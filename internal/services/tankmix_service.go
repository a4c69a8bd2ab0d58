package services

import (
	"fmt"
	"log/slog"
	"sort"

	"protection-service/internal/models"
)

// Total midpoint dosage above which the mix gets a phytotoxicity warning.
const highMixDosageThreshold = 5.0

// TankMixService evaluates pairwise product compatibility and derives the
// tank pouring order.
type TankMixService struct {
	productStore       ProductStore
	compatibilityStore CompatibilityStore
}

func NewTankMixService(productStore ProductStore, compatibilityStore CompatibilityStore) *TankMixService {
	return &TankMixService{
		productStore:       productStore,
		compatibilityStore: compatibilityStore,
	}
}

// MixingSequence orders products for tank filling: wettable powders first,
// then granules, suspensions, emulsions and solubles, adjuvants always last.
// The sort is stable, so equally ranked products keep their input order.
func (s *TankMixService) MixingSequence(products []models.Product) []models.Product {
	sequence := make([]models.Product, len(products))
	copy(sequence, products)
	sort.SliceStable(sequence, func(i, j int) bool {
		return models.MixOrder(sequence[i].FormulationClass()) < models.MixOrder(sequence[j].FormulationClass())
	})
	return sequence
}

// CalculateTankMix resolves the product ids and evaluates every unordered
// pair. Chemical and physical incompatibilities block the mix; biological
// ones are advisory. Ids that resolve to no product are dropped silently.
func (s *TankMixService) CalculateTankMix(productIDs []int64) (*models.TankMixResult, error) {
	products := make([]models.Product, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := s.productStore.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %d: %w", id, err)
		}
		if product == nil {
			slog.Warn("Tank mix references unknown product", "product_id", id)
			continue
		}
		products = append(products, *product)
	}

	if len(products) == 0 {
		return &models.TankMixResult{
			Compatible:     false,
			Products:       []models.Product{},
			MixingSequence: []models.Product{},
			Warnings:       []string{},
			Issues:         []string{"Нет продуктов для смешивания"},
		}, nil
	}

	warnings := []string{}
	issues := []string{}
	compatible := true

	for i := 0; i < len(products); i++ {
		for j := i + 1; j < len(products); j++ {
			record, err := s.compatibilityStore.GetCompatibility(products[i].ID, products[j].ID)
			if err != nil {
				return nil, fmt.Errorf("failed to get compatibility for (%d,%d): %w",
					products[i].ID, products[j].ID, err)
			}
			if record == nil {
				// no data means assumed compatible
				continue
			}

			notes := ""
			if record.Notes != nil {
				notes = *record.Notes
			}

			if !record.ChemicalCompatible {
				compatible = false
				issue := fmt.Sprintf("Химическая несовместимость: %s и %s", products[i].Name, products[j].Name)
				if notes != "" {
					issue += fmt.Sprintf(" (%s)", notes)
				}
				issues = append(issues, issue)
			} else if notes != "" {
				warnings = append(warnings, notes)
			}

			if !record.PhysicalCompatible {
				compatible = false
				issue := fmt.Sprintf("Физическая несовместимость: %s и %s", products[i].Name, products[j].Name)
				if notes != "" {
					issue += fmt.Sprintf(" (%s)", notes)
				}
				issues = append(issues, issue)
			} else if notes != "" {
				warnings = append(warnings, notes)
			}

			if !record.BiologicalCompatible {
				warning := fmt.Sprintf("Биологическая несовместимость: %s и %s.", products[i].Name, products[j].Name)
				if notes != "" {
					warning += " " + notes
				}
				warnings = append(warnings, warning)
			}
		}
	}

	totalDosage := 0.0
	for i := range products {
		totalDosage += products[i].BaseDosage()
	}
	if totalDosage > highMixDosageThreshold {
		warnings = append(warnings, "Высокая общая дозировка смеси. Проверьте фитотоксичность.")
	}

	result := &models.TankMixResult{
		Compatible:     compatible,
		Products:       products,
		MixingSequence: s.MixingSequence(products),
		TotalDosage:    round2(totalDosage),
		Warnings:       warnings,
		Issues:         issues,
	}

	slog.Info("Tank mix calculated",
		"requested", len(productIDs),
		"resolved", len(products),
		"compatible", result.Compatible,
		"issues", len(result.Issues))
	return result, nil
}

// CompatibilityTestMethodology returns the jar-test instructions shown next
// to a mix verdict.
func (s *TankMixService) CompatibilityTestMethodology() string {
	return `Методика проверки совместимости:
1. Приготовьте пробную смесь в малом объеме (50-100 мл)
2. Добавьте препараты в правильной последовательности
3. Тщательно перемешайте
4. Наблюдайте в течение 15-30 минут
5. Проверьте на наличие осадка, пены, расслоения
6. Если смесь стабильна - можно использовать`
}
