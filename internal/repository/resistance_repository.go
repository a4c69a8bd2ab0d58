package repository

import (
	"fmt"
	"time"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type ResistanceRepository struct {
	db *sqlx.DB
}

func NewResistanceRepository(db *sqlx.DB) *ResistanceRepository {
	return &ResistanceRepository{db: db}
}

func (r *ResistanceRepository) GetAll() ([]models.ResistanceRecord, error) {
	var records []models.ResistanceRecord
	query := `
		SELECT id, field_id, active_ingredient, usage_count, last_treatment_date,
			risk_level, notes, created_at
		FROM resistance_record ORDER BY field_id, active_ingredient`
	if err := r.db.Select(&records, query); err != nil {
		return nil, fmt.Errorf("failed to get resistance records: %w", err)
	}
	return records, nil
}

// Replace discards every stored record and writes the new set in a single
// transaction, so readers either see the previous snapshot or the new one.
func (r *ResistanceRepository) Replace(records []models.ResistanceRecord) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin resistance replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM resistance_record`); err != nil {
		return fmt.Errorf("failed to clear resistance records: %w", err)
	}

	now := time.Now().Unix()
	query := `
		INSERT INTO resistance_record (field_id, active_ingredient, usage_count,
			last_treatment_date, risk_level, notes, created_at)
		VALUES (:field_id, :active_ingredient, :usage_count,
			:last_treatment_date, :risk_level, :notes, :created_at)`
	for i := range records {
		records[i].CreatedAt = now
		if _, err := tx.NamedExec(query, records[i]); err != nil {
			return fmt.Errorf("failed to save resistance record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resistance replace: %w", err)
	}
	return nil
}
