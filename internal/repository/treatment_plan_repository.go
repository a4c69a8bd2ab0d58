package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type TreatmentPlanRepository struct {
	db *sqlx.DB
}

func NewTreatmentPlanRepository(db *sqlx.DB) *TreatmentPlanRepository {
	return &TreatmentPlanRepository{db: db}
}

const planColumns = `id, field_id, crop_id, planned_date, window_start, window_end, status,
	priority, reason, recommended_products, warehouse_status, created_at, updated_at`

func (r *TreatmentPlanRepository) GetAll() ([]models.TreatmentPlan, error) {
	var plans []models.TreatmentPlan
	query := `SELECT ` + planColumns + ` FROM treatment_plan ORDER BY planned_date`
	if err := r.db.Select(&plans, query); err != nil {
		return nil, fmt.Errorf("failed to get treatment plans: %w", err)
	}
	return plans, nil
}

// GetUpcoming returns non-terminal plans scheduled within daysAhead days from
// now, soonest first.
func (r *TreatmentPlanRepository) GetUpcoming(daysAhead int) ([]models.TreatmentPlan, error) {
	now := time.Now().Unix()
	horizon := now + int64(daysAhead)*24*60*60

	var plans []models.TreatmentPlan
	query := `
		SELECT ` + planColumns + `
		FROM treatment_plan
		WHERE status IN ('planned', 'in_progress', 'snoozed')
		  AND planned_date <= $1
		ORDER BY planned_date`
	if err := r.db.Select(&plans, query, horizon); err != nil {
		return nil, fmt.Errorf("failed to get upcoming treatment plans: %w", err)
	}
	return plans, nil
}

func (r *TreatmentPlanRepository) GetByID(id int64) (*models.TreatmentPlan, error) {
	var plan models.TreatmentPlan
	query := `SELECT ` + planColumns + ` FROM treatment_plan WHERE id = $1`
	err := r.db.Get(&plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment plan %d: %w", id, err)
	}
	return &plan, nil
}

// Save upserts the plan. A zero ID inserts a new row and fills in the
// generated id.
func (r *TreatmentPlanRepository) Save(plan *models.TreatmentPlan) error {
	now := time.Now().Unix()
	plan.UpdatedAt = now

	if plan.ID == 0 {
		plan.CreatedAt = now
		query := `
			INSERT INTO treatment_plan (field_id, crop_id, planned_date, window_start, window_end,
				status, priority, reason, recommended_products, warehouse_status, created_at, updated_at)
			VALUES (:field_id, :crop_id, :planned_date, :window_start, :window_end,
				:status, :priority, :reason, :recommended_products, :warehouse_status, :created_at, :updated_at)
			RETURNING id`
		rows, err := r.db.NamedQuery(query, plan)
		if err != nil {
			return fmt.Errorf("failed to insert treatment plan: %w", err)
		}
		defer rows.Close()
		if rows.Next() {
			if err := rows.Scan(&plan.ID); err != nil {
				return fmt.Errorf("failed to scan treatment plan id: %w", err)
			}
		}
		return nil
	}

	query := `
		UPDATE treatment_plan SET
			field_id = :field_id, crop_id = :crop_id, planned_date = :planned_date,
			window_start = :window_start, window_end = :window_end, status = :status,
			priority = :priority, reason = :reason, recommended_products = :recommended_products,
			warehouse_status = :warehouse_status, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExec(query, plan); err != nil {
		return fmt.Errorf("failed to update treatment plan %d: %w", plan.ID, err)
	}
	return nil
}

func (r *TreatmentPlanRepository) UpdateStatus(id int64, status models.TreatmentPlanStatus) error {
	query := `UPDATE treatment_plan SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.Exec(query, status, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update status of plan %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update of plan %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("treatment plan %d not found", id)
	}
	return nil
}
