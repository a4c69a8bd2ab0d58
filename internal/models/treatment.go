package models

// Treatment is a performed field operation. Timestamps are unix seconds.
type Treatment struct {
	ID            int64              `db:"id" json:"id"`
	FieldID       int64              `db:"field_id" json:"field_id"`
	CropID        *int64             `db:"crop_id" json:"crop_id,omitempty"`
	TreatmentDate int64              `db:"treatment_date" json:"treatment_date"`
	Area          float64            `db:"area" json:"area"` // hectares
	Temperature   *float64           `db:"weather_temperature" json:"weather_temperature,omitempty"`
	Humidity      *float64           `db:"weather_humidity" json:"weather_humidity,omitempty"`
	WindSpeed     *float64           `db:"weather_wind_speed" json:"weather_wind_speed,omitempty"`
	OperatorName  *string            `db:"operator_name" json:"operator_name,omitempty"`
	EquipmentType *string            `db:"equipment_type" json:"equipment_type,omitempty"`
	TotalCost     *float64           `db:"total_cost" json:"total_cost,omitempty"`
	Notes         *string            `db:"notes" json:"notes,omitempty"`
	Products      []TreatmentProduct `db:"-" json:"products,omitempty"`
	CreatedAt     int64              `db:"created_at" json:"created_at"`
	UpdatedAt     int64              `db:"updated_at" json:"updated_at"`
}

type TreatmentProduct struct {
	ID                    int64    `db:"id" json:"id"`
	TreatmentID           int64    `db:"treatment_id" json:"treatment_id"`
	ProductID             int64    `db:"product_id" json:"product_id"`
	Dosage                float64  `db:"dosage" json:"dosage"`
	WorkingSolutionVolume *float64 `db:"working_solution_volume" json:"working_solution_volume,omitempty"`
	Cost                  *float64 `db:"cost" json:"cost,omitempty"`
}

type WarehouseInventory struct {
	ID             int64    `db:"id" json:"id"`
	ProductID      int64    `db:"product_id" json:"product_id"`
	Quantity       float64  `db:"quantity" json:"quantity"`
	Unit           string   `db:"unit" json:"unit"`
	PurchaseDate   *int64   `db:"purchase_date" json:"purchase_date,omitempty"`
	ExpirationDate *int64   `db:"expiration_date" json:"expiration_date,omitempty"`
	PurchasePrice  *float64 `db:"purchase_price" json:"purchase_price,omitempty"`
}

// ResistanceRecord is the persisted audit artifact of a resistance analysis
// run. The whole table is replaced on every run.
type ResistanceRecord struct {
	ID                int64     `db:"id" json:"id"`
	FieldID           int64     `db:"field_id" json:"field_id"`
	ActiveIngredient  string    `db:"active_ingredient" json:"active_ingredient"`
	UsageCount        int       `db:"usage_count" json:"usage_count"`
	LastTreatmentDate *int64    `db:"last_treatment_date" json:"last_treatment_date,omitempty"`
	RiskLevel         RiskLevel `db:"risk_level" json:"risk_level"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt         int64     `db:"created_at" json:"created_at"`
}
