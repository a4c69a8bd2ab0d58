package repository

import (
	"fmt"

	"protection-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type WarehouseRepository struct {
	db *sqlx.DB
}

func NewWarehouseRepository(db *sqlx.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

const inventoryColumns = `id, product_id, quantity, unit, purchase_date, expiration_date, purchase_price`

func (r *WarehouseRepository) GetAll() ([]models.WarehouseInventory, error) {
	var inventory []models.WarehouseInventory
	query := `SELECT ` + inventoryColumns + ` FROM warehouse_inventory ORDER BY id`
	if err := r.db.Select(&inventory, query); err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return inventory, nil
}

// GetByProduct returns every inventory batch of one product.
func (r *WarehouseRepository) GetByProduct(productID int64) ([]models.WarehouseInventory, error) {
	var inventory []models.WarehouseInventory
	query := `SELECT ` + inventoryColumns + ` FROM warehouse_inventory WHERE product_id = $1 ORDER BY id`
	if err := r.db.Select(&inventory, query, productID); err != nil {
		return nil, fmt.Errorf("failed to get inventory for product %d: %w", productID, err)
	}
	return inventory, nil
}
