package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type FieldRepository struct {
	db *sqlx.DB
}

func NewFieldRepository(db *sqlx.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) GetAll() ([]models.Field, error) {
	var fields []models.Field
	query := `
		SELECT id, name, area, soil_type, latitude, longitude, description, created_at, updated_at
		FROM field ORDER BY name`
	if err := r.db.Select(&fields, query); err != nil {
		return nil, fmt.Errorf("failed to get fields: %w", err)
	}
	return fields, nil
}

func (r *FieldRepository) GetByID(id int64) (*models.Field, error) {
	var field models.Field
	query := `
		SELECT id, name, area, soil_type, latitude, longitude, description, created_at, updated_at
		FROM field WHERE id = $1`
	err := r.db.Get(&field, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get field %d: %w", id, err)
	}
	return &field, nil
}
