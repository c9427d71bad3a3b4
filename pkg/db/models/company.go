package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant boundary. Warehouses and products hang off it.
type Company struct {
	ID         uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string      `gorm:"column:name;not null"`
	Email      *string     `gorm:"column:email;uniqueIndex:uq_companies_email"`
	Warehouses []Warehouse `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
