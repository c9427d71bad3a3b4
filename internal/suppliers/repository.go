package suppliers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// ProductSupplierRow is one supplier option for a product, joined with the
// supplier contact record.
type ProductSupplierRow struct {
	ProductID            uuid.UUID        `gorm:"column:product_id"`
	SupplierID           uuid.UUID        `gorm:"column:supplier_id"`
	SupplierName         string           `gorm:"column:supplier_name"`
	ContactEmail         *string          `gorm:"column:contact_email"`
	ContactPhone         *string          `gorm:"column:contact_phone"`
	SupplierSKU          *string          `gorm:"column:supplier_sku"`
	LeadTimeDays         int              `gorm:"column:lead_time_days"`
	MinimumOrderQuantity int              `gorm:"column:minimum_order_quantity"`
	UnitCost             *decimal.Decimal `gorm:"column:unit_cost"`
}

const productSuppliersQuery = `
SELECT sp.product_id,
       s.id AS supplier_id,
       s.name AS supplier_name,
       s.contact_email,
       s.contact_phone,
       sp.supplier_sku,
       sp.lead_time_days,
       sp.minimum_order_quantity,
       sp.unit_cost
FROM supplier_products sp
JOIN suppliers s ON s.id = sp.supplier_id
WHERE sp.product_id IN ?
ORDER BY sp.product_id, s.name ASC
`

// Repository wires together supplier persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new supplier row.
func (r *Repository) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// FindByID loads the supplier without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// LinkProduct inserts a supplier-product junction row.
func (r *Repository) LinkProduct(ctx context.Context, link *models.SupplierProduct) (*models.SupplierProduct, error) {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// ListForProducts returns supplier options for the given products. Products
// without suppliers simply have no rows here.
func (r *Repository) ListForProducts(ctx context.Context, productIDs []uuid.UUID) ([]ProductSupplierRow, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var rows []ProductSupplierRow
	if err := r.db.WithContext(ctx).Raw(productSuppliersQuery, productIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
