package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// ProductDTO is the API shape for a product.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ProductType string          `json:"product_type"`
	IsBundle    bool            `json:"is_bundle"`
	CreatedAt   time.Time       `json:"created_at"`
	Inventory   *InventoryDTO   `json:"inventory,omitempty"`
}

// InventoryDTO is the API shape for one warehouse's stock of a product.
type InventoryDTO struct {
	WarehouseID        uuid.UUID `json:"warehouse_id"`
	Quantity           int       `json:"quantity"`
	LowStockThreshold  *int      `json:"low_stock_threshold,omitempty"`
	EffectiveThreshold int       `json:"effective_threshold"`
}

// NewProductDTO maps the product and its optional inventory row to the API shape.
func NewProductDTO(product *models.Product, inventory *models.Inventory) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:          product.ID,
		CompanyID:   product.CompanyID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ProductType: product.ProductType.String(),
		IsBundle:    product.IsBundle,
		CreatedAt:   product.CreatedAt,
	}
	if inventory != nil {
		effective := product.ProductType.DefaultLowStockThreshold()
		if inventory.LowStockThreshold != nil {
			effective = *inventory.LowStockThreshold
		}
		dto.Inventory = &InventoryDTO{
			WarehouseID:        inventory.WarehouseID,
			Quantity:           inventory.Quantity,
			LowStockThreshold:  inventory.LowStockThreshold,
			EffectiveThreshold: effective,
		}
	}
	return dto
}
