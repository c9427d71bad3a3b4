package warehouses

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// WarehouseDTO is the API shape for a warehouse.
type WarehouseDTO struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	Capacity  *int      `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWarehouseDTO maps the model to its API shape.
func NewWarehouseDTO(warehouse *models.Warehouse) *WarehouseDTO {
	if warehouse == nil {
		return nil
	}
	return &WarehouseDTO{
		ID:        warehouse.ID,
		CompanyID: warehouse.CompanyID,
		Name:      warehouse.Name,
		Location:  warehouse.Location,
		Capacity:  warehouse.Capacity,
		CreatedAt: warehouse.CreatedAt,
	}
}
