package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
)

// CompanyDTO is the API shape for a company.
type CompanyDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCompanyDTO maps the model to its API shape.
func NewCompanyDTO(company *models.Company) *CompanyDTO {
	if company == nil {
		return nil
	}
	return &CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		Email:     company.Email,
		CreatedAt: company.CreatedAt,
	}
}
