package bundles

import (
	"github.com/google/uuid"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// ComponentDTO is the API shape for one bundle component edge.
type ComponentDTO struct {
	ID                 uuid.UUID `json:"id"`
	BundleProductID    uuid.UUID `json:"bundle_product_id"`
	ComponentProductID uuid.UUID `json:"component_product_id"`
	Quantity           int       `json:"quantity"`
}

// NewComponentDTO maps the model to its API shape.
func NewComponentDTO(link *models.ProductBundle) *ComponentDTO {
	if link == nil {
		return nil
	}
	return &ComponentDTO{
		ID:                 link.ID,
		BundleProductID:    link.BundleProductID,
		ComponentProductID: link.ComponentProductID,
		Quantity:           link.Quantity,
	}
}
