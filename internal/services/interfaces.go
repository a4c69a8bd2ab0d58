package services

import "protection-service/internal/models"

// Data-access contracts consumed by the engine. The sqlx repositories satisfy
// them in production; tests inject in-memory fakes.

type ProductStore interface {
	GetByID(id int64) (*models.Product, error)
	GetAll() ([]models.Product, error)
	GetByType(productType models.ProductType) ([]models.Product, error)
	GetEffectiveAgainstPest(pestID int64, minEfficacy float64) ([]models.Product, error)
	GetCompatibleWithCrop(cropID int64, phase *int) ([]models.Product, error)
	GetPestEfficacyForProduct(productID int64) ([]models.ProductEfficacy, error)
	GetAverageEfficacyBulk(productIDs []int64) (map[int64]float64, error)
}

type CompatibilityStore interface {
	GetCompatibility(idA, idB int64) (*models.ProductCompatibility, error)
}

type TreatmentStore interface {
	GetAll() ([]models.Treatment, error)
	GetByField(fieldID int64) ([]models.Treatment, error)
}

type FieldStore interface {
	GetAll() ([]models.Field, error)
	GetByID(id int64) (*models.Field, error)
}

type CropStore interface {
	GetAll() ([]models.Crop, error)
	GetByID(id int64) (*models.Crop, error)
}

type PestStore interface {
	GetAll() ([]models.Pest, error)
	GetByID(id int64) (*models.Pest, error)
}

type WarehouseStore interface {
	GetAll() ([]models.WarehouseInventory, error)
	GetByProduct(productID int64) ([]models.WarehouseInventory, error)
}

type TreatmentPlanStore interface {
	GetAll() ([]models.TreatmentPlan, error)
	GetUpcoming(daysAhead int) ([]models.TreatmentPlan, error)
	GetByID(id int64) (*models.TreatmentPlan, error)
	Save(plan *models.TreatmentPlan) error
	UpdateStatus(id int64, status models.TreatmentPlanStatus) error
}

type ResistanceStore interface {
	GetAll() ([]models.ResistanceRecord, error)
	Replace(records []models.ResistanceRecord) error
}
