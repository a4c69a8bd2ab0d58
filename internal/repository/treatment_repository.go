package repository

import (
	"fmt"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TreatmentRepository struct {
	db *sqlx.DB
}

func NewTreatmentRepository(db *sqlx.DB) *TreatmentRepository {
	return &TreatmentRepository{db: db}
}

const treatmentColumns = `id, field_id, crop_id, treatment_date, area, weather_temperature,
	weather_humidity, weather_wind_speed, operator_name, equipment_type, total_cost, notes,
	created_at, updated_at`

// GetAll returns every treatment, newest first, with per-treatment product
// usage attached.
func (r *TreatmentRepository) GetAll() ([]models.Treatment, error) {
	var treatments []models.Treatment
	query := `SELECT ` + treatmentColumns + ` FROM treatment ORDER BY treatment_date DESC`
	if err := r.db.Select(&treatments, query); err != nil {
		return nil, fmt.Errorf("failed to get treatments: %w", err)
	}
	if err := r.attachProducts(treatments); err != nil {
		return nil, err
	}
	return treatments, nil
}

// GetByField returns the field's treatments, newest first.
func (r *TreatmentRepository) GetByField(fieldID int64) ([]models.Treatment, error) {
	var treatments []models.Treatment
	query := `SELECT ` + treatmentColumns + ` FROM treatment WHERE field_id = $1 ORDER BY treatment_date DESC`
	if err := r.db.Select(&treatments, query, fieldID); err != nil {
		return nil, fmt.Errorf("failed to get treatments for field %d: %w", fieldID, err)
	}
	if err := r.attachProducts(treatments); err != nil {
		return nil, err
	}
	return treatments, nil
}

func (r *TreatmentRepository) attachProducts(treatments []models.Treatment) error {
	if len(treatments) == 0 {
		return nil
	}

	ids := make([]int64, len(treatments))
	index := make(map[int64]*models.Treatment, len(treatments))
	for i := range treatments {
		ids[i] = treatments[i].ID
		index[treatments[i].ID] = &treatments[i]
	}

	var usages []models.TreatmentProduct
	query := `
		SELECT id, treatment_id, product_id, dosage, working_solution_volume, cost
		FROM treatment_product
		WHERE treatment_id = ANY($1)
		ORDER BY id`
	if err := r.db.Select(&usages, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to get treatment products: %w", err)
	}

	for _, usage := range usages {
		if treatment, ok := index[usage.TreatmentID]; ok {
			treatment.Products = append(treatment.Products, usage)
		}
	}
	return nil
}
