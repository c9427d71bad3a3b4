package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierProduct is the supplier↔product junction carrying reorder terms.
type SupplierProduct struct {
	ID                   uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID           uuid.UUID        `gorm:"column:supplier_id;type:uuid;not null;uniqueIndex:uq_supplier_products_pair;index:idx_supplier_products_supplier"`
	ProductID            uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_supplier_products_pair;index:idx_supplier_products_product"`
	SupplierSKU          *string          `gorm:"column:supplier_sku"`
	LeadTimeDays         int              `gorm:"column:lead_time_days;not null;default:0"`
	MinimumOrderQuantity int              `gorm:"column:minimum_order_quantity;not null;default:0"`
	UnitCost             *decimal.Decimal `gorm:"column:unit_cost;type:numeric(10,2)"`
	CreatedAt            time.Time        `gorm:"column:created_at;autoCreateTime"`
}
