package suppliers

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// SupplierDTO is the API shape for a supplier.
type SupplierDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
}

// SupplierLinkDTO is the API shape for a supplier-product link.
type SupplierLinkDTO struct {
	ID                   uuid.UUID        `json:"id"`
	SupplierID           uuid.UUID        `json:"supplier_id"`
	ProductID            uuid.UUID        `json:"product_id"`
	SupplierSKU          *string          `json:"supplier_sku,omitempty"`
	LeadTimeDays         int              `json:"lead_time_days"`
	MinimumOrderQuantity int              `json:"minimum_order_quantity"`
	UnitCost             *decimal.Decimal `json:"unit_cost,omitempty"`
}

// NewSupplierDTO maps the model to its API shape.
func NewSupplierDTO(supplier *models.Supplier) *SupplierDTO {
	if supplier == nil {
		return nil
	}
	return &SupplierDTO{
		ID:           supplier.ID,
		Name:         supplier.Name,
		ContactEmail: supplier.ContactEmail,
		ContactPhone: supplier.ContactPhone,
		Address:      supplier.Address,
	}
}

// NewSupplierLinkDTO maps the junction model to its API shape.
func NewSupplierLinkDTO(link *models.SupplierProduct) *SupplierLinkDTO {
	if link == nil {
		return nil
	}
	return &SupplierLinkDTO{
		ID:                   link.ID,
		SupplierID:           link.SupplierID,
		ProductID:            link.ProductID,
		SupplierSKU:          link.SupplierSKU,
		LeadTimeDays:         link.LeadTimeDays,
		MinimumOrderQuantity: link.MinimumOrderQuantity,
		UnitCost:             link.UnitCost,
	}
}
