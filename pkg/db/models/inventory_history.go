package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
)

// InventoryHistory is the append-only audit trail for quantity changes. Rows
// are written in the same transaction as the mutation they document and are
// never updated or deleted.
type InventoryHistory struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InventoryID       uuid.UUID          `gorm:"column:inventory_id;type:uuid;not null;index:idx_inventory_history_inventory"`
	PreviousQuantity  int                `gorm:"column:previous_quantity;not null"`
	Delta             int                `gorm:"column:delta;not null"`
	ResultingQuantity int                `gorm:"column:resulting_quantity;not null"`
	ChangeReason      enums.ChangeReason `gorm:"column:change_reason;not null;index:idx_inventory_history_reason_at,priority:1"`
	ChangedBy         *string            `gorm:"column:changed_by"`
	ChangedAt         time.Time          `gorm:"column:changed_at;not null;index:idx_inventory_history_reason_at,priority:2"`
}

// TableName keeps the singular form the reporting queries are written against.
func (InventoryHistory) TableName() string {
	return "inventory_history"
}
