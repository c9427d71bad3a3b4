package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// AdjustmentDTO is the API shape returned after a stock adjustment.
type AdjustmentDTO struct {
	InventoryID      uuid.UUID `json:"inventory_id"`
	ProductID        uuid.UUID `json:"product_id"`
	WarehouseID      uuid.UUID `json:"warehouse_id"`
	PreviousQuantity int       `json:"previous_quantity"`
	Delta            int       `json:"delta"`
	Quantity         int       `json:"quantity"`
	ChangeReason     string    `json:"change_reason"`
}

// HistoryEntryDTO is the API shape for one audit trail entry.
type HistoryEntryDTO struct {
	ID                uuid.UUID `json:"id"`
	PreviousQuantity  int       `json:"previous_quantity"`
	Delta             int       `json:"delta"`
	ResultingQuantity int       `json:"resulting_quantity"`
	ChangeReason      string    `json:"change_reason"`
	ChangedBy         *string   `json:"changed_by,omitempty"`
	ChangedAt         time.Time `json:"changed_at"`
}

// NewHistoryEntryDTO maps the model to its API shape.
func NewHistoryEntryDTO(entry *models.InventoryHistory) *HistoryEntryDTO {
	if entry == nil {
		return nil
	}
	return &HistoryEntryDTO{
		ID:                entry.ID,
		PreviousQuantity:  entry.PreviousQuantity,
		Delta:             entry.Delta,
		ResultingQuantity: entry.ResultingQuantity,
		ChangeReason:      entry.ChangeReason.String(),
		ChangedBy:         entry.ChangedBy,
		ChangedAt:         entry.ChangedAt,
	}
}
