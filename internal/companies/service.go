package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
)

// Service exposes company management operations.
type Service interface {
	CreateCompany(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*CompanyDTO, error)
}

// CreateCompanyInput holds the validated payload to create a company.
type CreateCompanyInput struct {
	Name  string
	Email *string
}

type service struct {
	repo *Repository
}

// NewService constructs a company service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCompany creates the tenant record.
func (s *service) CreateCompany(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name is required")
	}

	company := &models.Company{
		Name:  name,
		Email: input.Email,
	}
	created, err := s.repo.Create(ctx, company)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_companies_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "company email already registered").WithDetails(map[string]any{"email": input.Email})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert company")
	}
	return NewCompanyDTO(created), nil
}

// GetCompany loads a company by id.
func (s *service) GetCompany(ctx context.Context, id uuid.UUID) (*CompanyDTO, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load company")
	}
	return NewCompanyDTO(company), nil
}
