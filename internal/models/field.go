package models

type Field struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Area        float64   `db:"area" json:"area"` // hectares
	SoilType    *SoilType `db:"soil_type" json:"soil_type,omitempty"`
	Latitude    *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64  `db:"longitude" json:"longitude,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   int64     `db:"created_at" json:"created_at"`
	UpdatedAt   int64     `db:"updated_at" json:"updated_at"`
}

type Crop struct {
	ID          int64        `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	NameEn      *string      `db:"name_en" json:"name_en,omitempty"`
	Category    CropCategory `db:"category" json:"category"`
	Subcategory *string      `db:"subcategory" json:"subcategory,omitempty"`
	Variety     *string      `db:"variety" json:"variety,omitempty"`
	BBCHMin     *int         `db:"bbch_min" json:"bbch_min,omitempty"`
	BBCHMax     *int         `db:"bbch_max" json:"bbch_max,omitempty"`
	CreatedAt   int64        `db:"created_at" json:"created_at"`
	UpdatedAt   int64        `db:"updated_at" json:"updated_at"`
}

type Pest struct {
	ID          int64    `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	NameEn      *string  `db:"name_en" json:"name_en,omitempty"`
	Type        PestType `db:"type" json:"type"`
	Category    *string  `db:"category" json:"category,omitempty"`
	Description *string  `db:"description" json:"description,omitempty"`
	CreatedAt   int64    `db:"created_at" json:"created_at"`
	UpdatedAt   int64    `db:"updated_at" json:"updated_at"`
}
