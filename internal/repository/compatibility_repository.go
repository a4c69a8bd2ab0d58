package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type CompatibilityRepository struct {
	db *sqlx.DB
}

func NewCompatibilityRepository(db *sqlx.DB) *CompatibilityRepository {
	return &CompatibilityRepository{db: db}
}

// GetCompatibility looks up the record for an unordered product pair. Rows
// are stored canonically with product_id_1 < product_id_2, so lookups are
// symmetric. A nil result means no data, which callers treat as compatible.
func (r *CompatibilityRepository) GetCompatibility(idA, idB int64) (*models.ProductCompatibility, error) {
	lo, hi := idA, idB
	if lo > hi {
		lo, hi = hi, lo
	}

	var record models.ProductCompatibility
	query := `
		SELECT product_id_1, product_id_2, chemical_compatible, physical_compatible,
			biological_compatible, notes
		FROM product_compatibility
		WHERE product_id_1 = $1 AND product_id_2 = $2`
	err := r.db.Get(&record, query, lo, hi)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compatibility for (%d,%d): %w", lo, hi, err)
	}
	return &record, nil
}
