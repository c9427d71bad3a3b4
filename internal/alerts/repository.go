package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
)

// StockRow is one (product, warehouse) cell of the company stock matrix.
// Pairs without an inventory row still appear, with a zero quantity and no
// explicit threshold.
type StockRow struct {
	ProductID         uuid.UUID         `gorm:"column:product_id"`
	ProductName       string            `gorm:"column:product_name"`
	SKU               string            `gorm:"column:sku"`
	ProductType       enums.ProductType `gorm:"column:product_type"`
	WarehouseID       uuid.UUID         `gorm:"column:warehouse_id"`
	WarehouseName     string            `gorm:"column:warehouse_name"`
	Quantity          int               `gorm:"column:quantity"`
	LowStockThreshold *int              `gorm:"column:low_stock_threshold"`
}

// RecentSaleRow carries the most recent sale timestamp per product.
type RecentSaleRow struct {
	ProductID  uuid.UUID `gorm:"column:product_id"`
	LastSaleAt time.Time `gorm:"column:changed_at"`
}

// The cross join expands every product over every company warehouse so that
// warehouses with no inventory row still count against the aggregate with a
// zero quantity.
const stockMatrixQuery = `
SELECT p.id AS product_id,
       p.name AS product_name,
       p.sku,
       p.product_type,
       w.id AS warehouse_id,
       w.name AS warehouse_name,
       COALESCE(i.quantity, 0) AS quantity,
       i.low_stock_threshold
FROM products p
CROSS JOIN warehouses w
LEFT JOIN inventories i
       ON i.product_id = p.id AND i.warehouse_id = w.id
WHERE p.company_id = ? AND w.company_id = ?
ORDER BY p.sku ASC, w.created_at ASC
`

const recentSalesQuery = `
SELECT i.product_id AS product_id,
       h.changed_at AS changed_at
FROM inventory_history h
JOIN inventories i ON i.id = h.inventory_id
JOIN products p ON p.id = i.product_id
WHERE p.company_id = ?
  AND h.change_reason = ?
  AND h.changed_at >= ?
`

// Repository wires together the low-stock reporting queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StockMatrix loads the full product x warehouse grid for a company.
func (r *Repository) StockMatrix(ctx context.Context, companyID uuid.UUID) ([]StockRow, error) {
	var rows []StockRow
	if err := r.db.WithContext(ctx).Raw(stockMatrixQuery, companyID, companyID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RecentSales returns the products with at least one sale since the cutoff,
// with the most recent sale timestamp for each. The per-product max is folded
// here rather than in SQL.
func (r *Repository) RecentSales(ctx context.Context, companyID uuid.UUID, since time.Time) ([]RecentSaleRow, error) {
	var rows []RecentSaleRow
	if err := r.db.WithContext(ctx).
		Raw(recentSalesQuery, companyID, enums.ChangeReasonSale, since).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	latest := make(map[uuid.UUID]time.Time, len(rows))
	order := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		current, seen := latest[row.ProductID]
		if !seen {
			order = append(order, row.ProductID)
		}
		if !seen || row.LastSaleAt.After(current) {
			latest[row.ProductID] = row.LastSaleAt
		}
	}

	folded := make([]RecentSaleRow, 0, len(order))
	for _, productID := range order {
		folded = append(folded, RecentSaleRow{ProductID: productID, LastSaleAt: latest[productID]})
	}
	return folded, nil
}
