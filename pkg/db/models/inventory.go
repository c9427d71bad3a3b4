package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory tracks the on-hand quantity for one (product, warehouse) pair.
// At most one row exists per pair and the quantity never goes negative.
type Inventory struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_inventories_product_warehouse;index:idx_inventories_product_quantity,priority:1"`
	WarehouseID       uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:uq_inventories_product_warehouse;index:idx_inventories_warehouse"`
	Quantity          int       `gorm:"column:quantity;not null;default:0;index:idx_inventories_product_quantity,priority:2"`
	LowStockThreshold *int      `gorm:"column:low_stock_threshold"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
