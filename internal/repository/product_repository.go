package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, name_en, active_ingredient, concentration, type, category,
	manufacturer, formulation, price_per_unit, unit, min_dosage, max_dosage, unit_dosage,
	waiting_period, created_at, updated_at`

func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	query := `SELECT ` + productColumns + ` FROM product WHERE id = $1`
	err := r.db.Get(&product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

func (r *ProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	query := `SELECT ` + productColumns + ` FROM product ORDER BY name`
	if err := r.db.Select(&products, query); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByType(productType models.ProductType) ([]models.Product, error) {
	var products []models.Product
	query := `SELECT ` + productColumns + ` FROM product WHERE type = $1 ORDER BY name`
	if err := r.db.Select(&products, query, productType); err != nil {
		return nil, fmt.Errorf("failed to get products by type %s: %w", productType, err)
	}
	return products, nil
}

// GetEffectiveAgainstPest returns products whose registered efficacy against
// the pest is at least minEfficacy percent.
func (r *ProductRepository) GetEffectiveAgainstPest(pestID int64, minEfficacy float64) ([]models.Product, error) {
	var products []models.Product
	query := `
		SELECT DISTINCT p.id, p.name, p.name_en, p.active_ingredient, p.concentration, p.type,
			p.category, p.manufacturer, p.formulation, p.price_per_unit, p.unit,
			p.min_dosage, p.max_dosage, p.unit_dosage, p.waiting_period, p.created_at, p.updated_at
		FROM product p
		JOIN product_efficacy pe ON pe.product_id = p.id
		WHERE pe.pest_id = $1 AND pe.efficacy_percent >= $2
		ORDER BY p.name`
	if err := r.db.Select(&products, query, pestID, minEfficacy); err != nil {
		return nil, fmt.Errorf("failed to get products effective against pest %d: %w", pestID, err)
	}
	return products, nil
}

// GetCompatibleWithCrop returns products registered for the crop. When phase
// is set, rows carrying a BBCH window must cover it; rows without a window
// always match.
func (r *ProductRepository) GetCompatibleWithCrop(cropID int64, phase *int) ([]models.Product, error) {
	var products []models.Product
	query := `
		SELECT DISTINCT p.id, p.name, p.name_en, p.active_ingredient, p.concentration, p.type,
			p.category, p.manufacturer, p.formulation, p.price_per_unit, p.unit,
			p.min_dosage, p.max_dosage, p.unit_dosage, p.waiting_period, p.created_at, p.updated_at
		FROM product p
		JOIN product_efficacy pe ON pe.product_id = p.id
		WHERE pe.crop_id = $1
		  AND ($2::int IS NULL OR (
			(pe.phase_min IS NULL OR pe.phase_min <= $2) AND
			(pe.phase_max IS NULL OR pe.phase_max >= $2)))
		ORDER BY p.name`
	if err := r.db.Select(&products, query, cropID, phase); err != nil {
		return nil, fmt.Errorf("failed to get products compatible with crop %d: %w", cropID, err)
	}
	return products, nil
}

func (r *ProductRepository) GetPestEfficacyForProduct(productID int64) ([]models.ProductEfficacy, error) {
	var entries []models.ProductEfficacy
	query := `SELECT product_id, pest_id, efficacy_percent, crop_id, phase_min, phase_max
		FROM product_efficacy WHERE product_id = $1`
	if err := r.db.Select(&entries, query, productID); err != nil {
		return nil, fmt.Errorf("failed to get pest efficacy for product %d: %w", productID, err)
	}
	return entries, nil
}

// GetAverageEfficacyBulk returns the mean registered efficacy per product id.
// Products without efficacy rows are absent from the map.
func (r *ProductRepository) GetAverageEfficacyBulk(productIDs []int64) (map[int64]float64, error) {
	result := make(map[int64]float64, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	rows := []struct {
		ProductID int64   `db:"product_id"`
		Avg       float64 `db:"avg_efficacy"`
	}{}
	query := `
		SELECT product_id, AVG(efficacy_percent) AS avg_efficacy
		FROM product_efficacy
		WHERE product_id = ANY($1)
		GROUP BY product_id`
	if err := r.db.Select(&rows, query, pq.Array(productIDs)); err != nil {
		return nil, fmt.Errorf("failed to get bulk average efficacy: %w", err)
	}
	for _, row := range rows {
		result[row.ProductID] = row.Avg
	}
	return result, nil
}
