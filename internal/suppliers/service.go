package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
)

// Service exposes supplier management operations.
type Service interface {
	CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error)
	LinkProduct(ctx context.Context, supplierID, productID uuid.UUID, input LinkProductInput) (*SupplierLinkDTO, error)
}

// CreateSupplierInput holds the validated payload to create a supplier.
type CreateSupplierInput struct {
	Name         string
	ContactEmail *string
	ContactPhone *string
	Address      *string
}

// LinkProductInput holds the reorder terms for a supplier-product link.
type LinkProductInput struct {
	SupplierSKU          *string
	LeadTimeDays         int
	MinimumOrderQuantity int
	UnitCost             *decimal.Decimal
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo        *Repository
	productRepo productLoader
}

// NewService constructs a supplier service instance.
func NewService(repo *Repository, productRepo productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, productRepo: productRepo}, nil
}

// CreateSupplier creates a supplier contact record.
func (s *service) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	supplier := &models.Supplier{
		Name:         name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
	}
	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert supplier")
	}
	return NewSupplierDTO(created), nil
}

// LinkProduct attaches reorder terms between a supplier and a product.
func (s *service) LinkProduct(ctx context.Context, supplierID, productID uuid.UUID, input LinkProductInput) (*SupplierLinkDTO, error) {
	if input.LeadTimeDays < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead_time_days cannot be negative")
	}
	if input.MinimumOrderQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum_order_quantity cannot be negative")
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_cost cannot be negative")
	}

	if _, err := s.repo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load supplier")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	link := &models.SupplierProduct{
		SupplierID:           supplierID,
		ProductID:            productID,
		SupplierSKU:          input.SupplierSKU,
		LeadTimeDays:         input.LeadTimeDays,
		MinimumOrderQuantity: input.MinimumOrderQuantity,
		UnitCost:             input.UnitCost,
	}
	created, err := s.repo.LinkProduct(ctx, link)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_supplier_products_pair") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "supplier is already linked to this product").WithDetails(map[string]any{
				"supplier_id": supplierID,
				"product_id":  productID,
			})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert supplier link")
	}
	return NewSupplierLinkDTO(created), nil
}
