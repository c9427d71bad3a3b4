package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
)

// Product is a company-level listing; stock lives per warehouse in Inventory.
// The SKU is unique across the whole platform, not per company.
type Product struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID   uuid.UUID         `gorm:"column:company_id;type:uuid;not null;index:idx_products_company"`
	SKU         string            `gorm:"column:sku;not null;uniqueIndex:uq_products_sku"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	ProductType enums.ProductType `gorm:"column:product_type;not null;default:standard"`
	IsBundle    bool              `gorm:"column:is_bundle;not null;default:false"`
	Inventories []Inventory       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
