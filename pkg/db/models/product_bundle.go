package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductBundle links a bundle product to one component product. The
// association graph must stay acyclic; internal/bundles validates that at
// insert time.
type ProductBundle struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BundleProductID    uuid.UUID `gorm:"column:bundle_product_id;type:uuid;not null;uniqueIndex:uq_product_bundles_pair;index:idx_product_bundles_bundle"`
	ComponentProductID uuid.UUID `gorm:"column:component_product_id;type:uuid;not null;uniqueIndex:uq_product_bundles_pair"`
	Quantity           int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}
