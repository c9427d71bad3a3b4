package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// Repository wires together inventory and history persistence helpers.
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

// CreateWithTx inserts an inventory row inside the caller's transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, inventory *models.Inventory) (*models.Inventory, error) {
	if inventory.ID == uuid.Nil {
		inventory.ID = uuid.New()
	}
	if err := tx.Create(inventory).Error; err != nil {
		return nil, err
	}
	return inventory, nil
}

// FindByProductAndWarehouse loads the single inventory row for the pair.
func (r *Repository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Inventory, error) {
	var inventory models.Inventory
	if err := r.db.WithContext(ctx).
		First(&inventory, "product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

// UpdateQuantityWithTx moves the quantity from expectedQuantity to newQuantity.
// The guard on the previous value makes concurrent adjustments lose cleanly
// instead of silently overwriting each other; callers check the returned
// count.
func (r *Repository) UpdateQuantityWithTx(tx *gorm.DB, id uuid.UUID, expectedQuantity, newQuantity int) (int64, error) {
	result := tx.Model(&models.Inventory{}).
		Where("id = ? AND quantity = ?", id, expectedQuantity).
		Update("quantity", newQuantity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// AppendHistoryWithTx writes one audit entry inside the caller's transaction.
// History rows are never updated or deleted.
func (r *Repository) AppendHistoryWithTx(tx *gorm.DB, entry *models.InventoryHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return tx.Create(entry).Error
}

// ListHistory returns the audit trail for an inventory row, newest first.
func (r *Repository) ListHistory(ctx context.Context, inventoryID uuid.UUID, limit int) ([]models.InventoryHistory, error) {
	query := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("changed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []models.InventoryHistory
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
