package services

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"protection-service/internal/models"
	"protection-service/internal/regulations"
)

// Treatments older than this window do not count toward resistance pressure.
const resistanceLookbackDays = 90

// ResistanceService aggregates active-ingredient usage per field over a
// rolling window and grades it against the regulatory thresholds. Every run
// replaces the persisted audit records wholesale.
type ResistanceService struct {
	treatmentStore  TreatmentStore
	productStore    ProductStore
	resistanceStore ResistanceStore
	tables          *regulations.Tables
	now             func() time.Time
}

func NewResistanceService(treatmentStore TreatmentStore, productStore ProductStore, resistanceStore ResistanceStore, tables *regulations.Tables) *ResistanceService {
	return &ResistanceService{
		treatmentStore:  treatmentStore,
		productStore:    productStore,
		resistanceStore: resistanceStore,
		tables:          tables,
		now:             time.Now,
	}
}

type ingredientUsage struct {
	fieldID          int64
	activeIngredient string // canonical lowercase
	count            int
	lastDate         int64
}

// Analyze recomputes resistance risks from scratch. fieldNames resolves ids
// to display names for the notes; unknown fields stay nameless.
func (s *ResistanceService) Analyze(fieldNames map[int64]string) ([]models.ResistanceRisk, error) {
	treatments, err := s.treatmentStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load treatments: %w", err)
	}
	products, err := s.productStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	productByID := make(map[int64]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	risks := s.calculateRisks(treatments, fieldNames, productByID)

	if err := s.persist(risks); err != nil {
		return nil, err
	}

	slog.Info("Resistance analysis completed", "risks", len(risks))
	return risks, nil
}

func (s *ResistanceService) calculateRisks(treatments []models.Treatment, fieldNames map[int64]string, productByID map[int64]models.Product) []models.ResistanceRisk {
	cutoff := s.now().AddDate(0, 0, -resistanceLookbackDays).Unix()

	usage := make(map[string]*ingredientUsage)
	var order []string

	for _, treatment := range treatments {
		if treatment.TreatmentDate < cutoff {
			continue
		}
		for _, productUsage := range treatment.Products {
			product, ok := productByID[productUsage.ProductID]
			if !ok || product.ActiveIngredient == "" {
				continue
			}

			key := fmt.Sprintf("%d__%s", treatment.FieldID, strings.ToLower(product.ActiveIngredient))
			entry, ok := usage[key]
			if !ok {
				entry = &ingredientUsage{
					fieldID:          treatment.FieldID,
					activeIngredient: strings.ToLower(product.ActiveIngredient),
				}
				usage[key] = entry
				order = append(order, key)
			}
			entry.count++
			if treatment.TreatmentDate > entry.lastDate {
				entry.lastDate = treatment.TreatmentDate
			}
		}
	}

	sort.Strings(order)

	risks := make([]models.ResistanceRisk, 0, len(order))
	for _, key := range order {
		entry := usage[key]
		threshold := s.tables.ThresholdFor(entry.activeIngredient)
		if threshold == nil {
			// no regulatory threshold means the ingredient is not tracked
			continue
		}

		riskLevel := models.RiskLow
		if entry.count > threshold.MaxApplicationsPerSeason {
			riskLevel = models.RiskHigh
		} else if entry.count == threshold.MaxApplicationsPerSeason {
			riskLevel = models.RiskMedium
		}

		risks = append(risks, models.ResistanceRisk{
			FieldID:           entry.fieldID,
			FieldName:         fieldNames[entry.fieldID],
			ActiveIngredient:  threshold.ActiveIngredient,
			UsageCount:        entry.count,
			LastTreatmentDate: entry.lastDate,
			Threshold:         threshold.MaxApplicationsPerSeason,
			IntervalDays:      threshold.IntervalDays,
			RiskLevel:         riskLevel,
			Notes: fmt.Sprintf("За последние %d дней проведено %d обработок.",
				resistanceLookbackDays, entry.count),
		})
	}

	return risks
}

func (s *ResistanceService) persist(risks []models.ResistanceRisk) error {
	records := make([]models.ResistanceRecord, 0, len(risks))
	for _, risk := range risks {
		risk := risk
		records = append(records, models.ResistanceRecord{
			FieldID:           risk.FieldID,
			ActiveIngredient:  risk.ActiveIngredient,
			UsageCount:        risk.UsageCount,
			LastTreatmentDate: &risk.LastTreatmentDate,
			RiskLevel:         risk.RiskLevel,
			Notes:             &risk.Notes,
		})
	}

	if err := s.resistanceStore.Replace(records); err != nil {
		return fmt.Errorf("failed to persist resistance records: %w", err)
	}
	return nil
}
