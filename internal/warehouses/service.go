package warehouses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
)

// Service exposes warehouse management operations.
type Service interface {
	CreateWarehouse(ctx context.Context, companyID uuid.UUID, input CreateWarehouseInput) (*WarehouseDTO, error)
	GetWarehouse(ctx context.Context, id uuid.UUID) (*WarehouseDTO, error)
	ListWarehouses(ctx context.Context, companyID uuid.UUID) ([]WarehouseDTO, error)
}

// CreateWarehouseInput holds the validated payload to create a warehouse.
type CreateWarehouseInput struct {
	Name     string
	Location *string
	Capacity *int
}

type companyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type service struct {
	repo        *Repository
	companyRepo companyLoader
}

// NewService constructs a warehouse service instance.
func NewService(repo *Repository, companyRepo companyLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warehouse repository required")
	}
	if companyRepo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	return &service{repo: repo, companyRepo: companyRepo}, nil
}

// CreateWarehouse creates a warehouse under the company.
func (s *service) CreateWarehouse(ctx context.Context, companyID uuid.UUID, input CreateWarehouseInput) (*WarehouseDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse name is required")
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity cannot be negative")
	}

	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load company")
	}

	warehouse := &models.Warehouse{
		CompanyID: companyID,
		Name:      name,
		Location:  input.Location,
		Capacity:  input.Capacity,
	}
	created, err := s.repo.Create(ctx, warehouse)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert warehouse")
	}
	return NewWarehouseDTO(created), nil
}

// GetWarehouse loads a warehouse by id.
func (s *service) GetWarehouse(ctx context.Context, id uuid.UUID) (*WarehouseDTO, error) {
	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load warehouse")
	}
	return NewWarehouseDTO(warehouse), nil
}

// ListWarehouses returns all warehouses for a company.
func (s *service) ListWarehouses(ctx context.Context, companyID uuid.UUID) ([]WarehouseDTO, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load company")
	}

	rows, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list warehouses")
	}
	dtos := make([]WarehouseDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewWarehouseDTO(&rows[i]))
	}
	return dtos, nil
}
