package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"protection-service/internal/models"
	"protection-service/internal/regulations"
)

const (
	lowStockThreshold        = 5.0
	highWindThreshold        = 7.0  // m/s
	lowHumidityThreshold     = 35.0 // %
	highTemperatureThreshold = 30.0 // °C
	expiryWarningDays        = 30
	unknownFieldLabel        = "Неизвестное поле"
)

// WarningNotifier delivers critical warnings to the notification queue.
type WarningNotifier interface {
	PublishWarning(ctx context.Context, item models.WarningItem) error
}

// WarningService merges resistance, phytotoxicity, quarantine, inventory and
// weather signals into one feed ordered by severity. Items are generated
// fresh on every call; only resistance computations persist as a side
// artifact of the embedded analysis.
type WarningService struct {
	treatmentStore TreatmentStore
	productStore   ProductStore
	warehouseStore WarehouseStore
	fieldStore     FieldStore
	resistance     *ResistanceService
	tables         *regulations.Tables
	notifier       WarningNotifier
	now            func() time.Time
}

func NewWarningService(
	treatmentStore TreatmentStore,
	productStore ProductStore,
	warehouseStore WarehouseStore,
	fieldStore FieldStore,
	resistance *ResistanceService,
	tables *regulations.Tables,
	notifier WarningNotifier,
) *WarningService {
	return &WarningService{
		treatmentStore: treatmentStore,
		productStore:   productStore,
		warehouseStore: warehouseStore,
		fieldStore:     fieldStore,
		resistance:     resistance,
		tables:         tables,
		notifier:       notifier,
		now:            time.Now,
	}
}

// GetWarnings rebuilds the aggregated feed. The final order is by severity
// rank descending; the sort is stable, so items of equal severity keep their
// category-generation order.
func (s *WarningService) GetWarnings(ctx context.Context) (*models.WarningSummary, error) {
	treatments, err := s.treatmentStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load treatments: %w", err)
	}
	products, err := s.productStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	inventory, err := s.warehouseStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	fields, err := s.fieldStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}

	productByID := make(map[int64]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}
	fieldNames := make(map[int64]string, len(fields))
	for _, field := range fields {
		fieldNames[field.ID] = field.Name
	}

	risks, err := s.resistance.Analyze(fieldNames)
	if err != nil {
		return nil, fmt.Errorf("resistance analysis failed: %w", err)
	}

	var warnings []models.WarningItem
	warnings = append(warnings, s.transformResistanceRisks(risks)...)
	warnings = append(warnings, s.checkPhytotoxicity(treatments, productByID, fieldNames)...)
	warnings = append(warnings, s.checkQuarantine(treatments, fieldNames)...)
	warnings = append(warnings, s.checkInventory(inventory, productByID)...)
	warnings = append(warnings, s.checkWeather(treatments, fieldNames)...)

	sort.SliceStable(warnings, func(i, j int) bool {
		return models.SeverityRank(warnings[i].Severity) > models.SeverityRank(warnings[j].Severity)
	})

	s.publishCritical(ctx, warnings)

	slog.Info("Warning aggregation completed", "warnings", len(warnings))
	return &models.WarningSummary{
		GeneratedAt: s.now().Unix(),
		Warnings:    warnings,
	}, nil
}

// publishCritical pushes critical items to the notification queue. Delivery
// failures are logged, never surfaced: the feed itself is the primary output.
func (s *WarningService) publishCritical(ctx context.Context, warnings []models.WarningItem) {
	if s.notifier == nil {
		return
	}
	for _, item := range warnings {
		if item.Severity != models.SeverityCritical {
			continue
		}
		if err := s.notifier.PublishWarning(ctx, item); err != nil {
			slog.Error("Failed to publish critical warning", "warning_id", item.ID, "error", err)
		}
	}
}

func (s *WarningService) transformResistanceRisks(risks []models.ResistanceRisk) []models.WarningItem {
	var warnings []models.WarningItem
	for _, risk := range risks {
		if risk.RiskLevel == models.RiskLow {
			continue
		}
		severity := models.SeverityCaution
		if risk.RiskLevel == models.RiskHigh {
			severity = models.SeverityCritical
		}

		fieldName := risk.FieldName
		if fieldName == "" {
			fieldName = unknownFieldLabel
		}
		fieldID := risk.FieldID

		warnings = append(warnings, models.WarningItem{
			ID:       fmt.Sprintf("res-%d-%s", risk.FieldID, risk.ActiveIngredient),
			Category: models.WarningResistance,
			Title:    "Риск резистентности",
			Message: strings.TrimSpace(fmt.Sprintf(
				"Поле \"%s\": обнаружено %d обработок действующим веществом %s (порог %d). %s Рекомендуемый интервал — каждые %d дн.",
				fieldName, risk.UsageCount, risk.ActiveIngredient, risk.Threshold, risk.Notes, risk.IntervalDays)),
			Severity:       severity,
			RelatedFieldID: &fieldID,
		})
	}
	return warnings
}

func (s *WarningService) checkPhytotoxicity(treatments []models.Treatment, productByID map[int64]models.Product, fieldNames map[int64]string) []models.WarningItem {
	var warnings []models.WarningItem

	for _, treatment := range treatments {
		for _, usage := range treatment.Products {
			product, ok := productByID[usage.ProductID]
			if !ok {
				continue
			}

			caution := s.phytotoxicityCaution(&treatment, &product)
			if caution == "" {
				continue
			}

			fieldID := treatment.FieldID
			treatmentID := treatment.ID
			productID := usage.ProductID
			warnings = append(warnings, models.WarningItem{
				ID:       fmt.Sprintf("phyto-%d-%d", treatment.ID, usage.ProductID),
				Category: models.WarningPhytotoxicity,
				Title:    "Риск фитотоксичности",
				Message: fmt.Sprintf("Поле \"%s\": %s. %s",
					s.fieldLabel(fieldNames, treatment.FieldID), product.Name, caution),
				Severity:           models.SeverityCaution,
				RelatedFieldID:     &fieldID,
				RelatedTreatmentID: &treatmentID,
				RelatedProductID:   &productID,
			})
		}
	}
	return warnings
}

// phytotoxicityCaution checks the product-specific guideline first and only
// falls back to the generic temperature/humidity heuristics when none fires.
func (s *WarningService) phytotoxicityCaution(treatment *models.Treatment, product *models.Product) string {
	if guideline := s.tables.GuidelineFor(product.Name); guideline != nil {
		if guideline.MaxTemperature != nil && treatment.Temperature != nil &&
			*treatment.Temperature > *guideline.MaxTemperature {
			return guideline.Caution
		}
		if guideline.MinTemperature != nil && treatment.Temperature != nil &&
			*treatment.Temperature < *guideline.MinTemperature {
			return guideline.Caution
		}
		if guideline.MinHumidity != nil && treatment.Humidity != nil &&
			*treatment.Humidity < *guideline.MinHumidity {
			return guideline.Caution
		}
	}

	if treatment.Temperature != nil && *treatment.Temperature > highTemperatureThreshold {
		return fmt.Sprintf("Температура при обработке превышала %.0f°C. Проверьте риск испарения и фитотоксичности.",
			highTemperatureThreshold)
	}
	if treatment.Humidity != nil && *treatment.Humidity < lowHumidityThreshold {
		return "Низкая влажность воздуха (<35%) может повысить риск фитотоксичности. Рекомендуется снижение дозировки или перенос обработки."
	}
	return ""
}

func (s *WarningService) checkQuarantine(treatments []models.Treatment, fieldNames map[int64]string) []models.WarningItem {
	var warnings []models.WarningItem

	for _, treatment := range treatments {
		if len(treatment.Products) == 0 || treatment.Notes == nil {
			continue
		}
		notes := strings.ToLower(*treatment.Notes)

		for _, restriction := range s.tables.QuarantineRestrictions {
			if !strings.Contains(notes, strings.ToLower(restriction.PestName)) {
				continue
			}
			fieldID := treatment.FieldID
			treatmentID := treatment.ID
			warnings = append(warnings, models.WarningItem{
				ID:       fmt.Sprintf("quar-%d-%s", treatment.ID, restriction.PestName),
				Category: models.WarningQuarantine,
				Title:    "Карантинное ограничение",
				Message: fmt.Sprintf("Поле \"%s\": обнаружен %s. %s",
					s.fieldLabel(fieldNames, treatment.FieldID), restriction.PestName, restriction.Restriction),
				Severity:           models.SeverityCritical,
				RelatedFieldID:     &fieldID,
				RelatedTreatmentID: &treatmentID,
			})
		}
	}
	return warnings
}

func (s *WarningService) checkInventory(inventory []models.WarehouseInventory, productByID map[int64]models.Product) []models.WarningItem {
	var warnings []models.WarningItem
	now := s.now()

	for _, item := range inventory {
		product, ok := productByID[item.ProductID]
		if !ok {
			continue
		}
		productID := item.ProductID

		if item.ExpirationDate != nil {
			days := calendarDaysBetween(now, time.Unix(*item.ExpirationDate, 0))
			if days < 0 {
				warnings = append(warnings, models.WarningItem{
					ID:               fmt.Sprintf("inv-expired-%d", item.ID),
					Category:         models.WarningInventory,
					Title:            "Просроченный препарат",
					Message:          fmt.Sprintf("%s: срок годности истек %d дней назад.", product.Name, -days),
					Severity:         models.SeverityCritical,
					RelatedProductID: &productID,
				})
			} else if days <= expiryWarningDays {
				warnings = append(warnings, models.WarningItem{
					ID:               fmt.Sprintf("inv-expiring-%d", item.ID),
					Category:         models.WarningInventory,
					Title:            "Скорое истечение срока годности",
					Message:          fmt.Sprintf("%s: срок годности истекает через %d дней.", product.Name, days),
					Severity:         models.SeverityCaution,
					RelatedProductID: &productID,
				})
			}
		}

		if item.Quantity <= lowStockThreshold {
			warnings = append(warnings, models.WarningItem{
				ID:       fmt.Sprintf("inv-low-%d", item.ID),
				Category: models.WarningInventory,
				Title:    "Низкий остаток на складе",
				Message: fmt.Sprintf("%s: остаток %g %s. Рекомендуется пополнение склада.",
					product.Name, item.Quantity, item.Unit),
				Severity:         models.SeverityInfo,
				RelatedProductID: &productID,
			})
		}
	}
	return warnings
}

func (s *WarningService) checkWeather(treatments []models.Treatment, fieldNames map[int64]string) []models.WarningItem {
	var warnings []models.WarningItem

	for _, treatment := range treatments {
		if treatment.WindSpeed == nil || *treatment.WindSpeed <= highWindThreshold {
			continue
		}
		fieldID := treatment.FieldID
		treatmentID := treatment.ID
		warnings = append(warnings, models.WarningItem{
			ID:       fmt.Sprintf("weather-wind-%d", treatment.ID),
			Category: models.WarningWeather,
			Title:    "Неблагоприятная погода",
			Message: fmt.Sprintf("Поле \"%s\": скорость ветра %g м/с превышала допустимые значения. Возможен снос препаратов.",
				s.fieldLabel(fieldNames, treatment.FieldID), *treatment.WindSpeed),
			Severity:           models.SeverityCaution,
			RelatedFieldID:     &fieldID,
			RelatedTreatmentID: &treatmentID,
		})
	}
	return warnings
}

func (s *WarningService) fieldLabel(fieldNames map[int64]string, fieldID int64) string {
	if name, ok := fieldNames[fieldID]; ok {
		return name
	}
	return unknownFieldLabel
}

// calendarDaysBetween counts whole calendar days from a to b, negative when
// b is in the past.
func calendarDaysBetween(a, b time.Time) int {
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}
