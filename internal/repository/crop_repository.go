package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type CropRepository struct {
	db *sqlx.DB
}

func NewCropRepository(db *sqlx.DB) *CropRepository {
	return &CropRepository{db: db}
}

const cropColumns = `id, name, name_en, category, subcategory, variety, bbch_min, bbch_max,
	created_at, updated_at`

func (r *CropRepository) GetAll() ([]models.Crop, error) {
	var crops []models.Crop
	query := `SELECT ` + cropColumns + ` FROM crop ORDER BY name`
	if err := r.db.Select(&crops, query); err != nil {
		return nil, fmt.Errorf("failed to get crops: %w", err)
	}
	return crops, nil
}

func (r *CropRepository) GetByID(id int64) (*models.Crop, error) {
	var crop models.Crop
	query := `SELECT ` + cropColumns + ` FROM crop WHERE id = $1`
	err := r.db.Get(&crop, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crop %d: %w", id, err)
	}
	return &crop, nil
}
