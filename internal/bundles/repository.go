package bundles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// Repository wires together bundle composition persistence helpers.
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

// Create inserts a bundle component edge.
func (r *Repository) Create(ctx context.Context, link *models.ProductBundle) (*models.ProductBundle, error) {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// ListComponents returns the direct components of a bundle.
func (r *Repository) ListComponents(ctx context.Context, bundleProductID uuid.UUID) ([]models.ProductBundle, error) {
	var links []models.ProductBundle
	if err := r.db.WithContext(ctx).
		Where("bundle_product_id = ?", bundleProductID).
		Order("created_at ASC").
		Find(&links).
		Error; err != nil {
		return nil, err
	}
	return links, nil
}

// ComponentIDs returns the direct component product ids for each of the given
// bundles. Used by the cycle walk.
func (r *Repository) ComponentIDs(ctx context.Context, bundleProductIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(bundleProductIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.ProductBundle{}).
		Where("bundle_product_id IN ?", bundleProductIDs).
		Pluck("component_product_id", &ids).
		Error; err != nil {
		return nil, err
	}
	return ids, nil
}
