package models

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse belongs to exactly one company.
type Warehouse struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index:idx_warehouses_company"`
	Name      string    `gorm:"column:name;not null"`
	Location  *string   `gorm:"column:location"`
	Capacity  *int      `gorm:"column:capacity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
