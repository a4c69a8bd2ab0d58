package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type PestRepository struct {
	db *sqlx.DB
}

func NewPestRepository(db *sqlx.DB) *PestRepository {
	return &PestRepository{db: db}
}

func (r *PestRepository) GetAll() ([]models.Pest, error) {
	var pests []models.Pest
	query := `
		SELECT id, name, name_en, type, category, description, created_at, updated_at
		FROM pest ORDER BY name`
	if err := r.db.Select(&pests, query); err != nil {
		return nil, fmt.Errorf("failed to get pests: %w", err)
	}
	return pests, nil
}

func (r *PestRepository) GetByID(id int64) (*models.Pest, error) {
	var pest models.Pest
	query := `
		SELECT id, name, name_en, type, category, description, created_at, updated_at
		FROM pest WHERE id = $1`
	err := r.db.Get(&pest, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pest %d: %w", id, err)
	}
	return &pest, nil
}
