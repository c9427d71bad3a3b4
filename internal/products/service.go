package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service exposes product management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product together
// with its opening stock position.
type CreateProductInput struct {
	CompanyID         uuid.UUID
	WarehouseID       uuid.UUID
	SKU               string
	Name              string
	Description       *string
	Price             decimal.Decimal
	ProductType       enums.ProductType
	InitialQuantity   int
	LowStockThreshold *int
	CreatedBy         *string
}

type companyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type warehouseLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
}

type inventoryWriter interface {
	CreateWithTx(tx *gorm.DB, inventory *models.Inventory) (*models.Inventory, error)
	AppendHistoryWithTx(tx *gorm.DB, entry *models.InventoryHistory) error
}

type service struct {
	repo          *Repository
	dbClient      db.TxRunner
	companyRepo   companyLoader
	warehouseRepo warehouseLoader
	inventoryRepo inventoryWriter
	now           func() time.Time
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient db.TxRunner, companyRepo companyLoader, warehouseRepo warehouseLoader, inventoryRepo inventoryWriter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if companyRepo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	if warehouseRepo == nil {
		return nil, fmt.Errorf("warehouse repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{
		repo:          repo,
		dbClient:      dbClient,
		companyRepo:   companyRepo,
		warehouseRepo: warehouseRepo,
		inventoryRepo: inventoryRepo,
		now:           time.Now,
	}, nil
}

// CreateProduct creates the product, its opening inventory row, and the
// initial audit entry in one transaction. Nothing persists when any step
// fails.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	productType := input.ProductType
	if productType == "" {
		productType = enums.ProductTypeStandard
	}

	if _, err := s.companyRepo.FindByID(ctx, input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load company")
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, input.WarehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load warehouse")
	}
	if warehouse.CompanyID != input.CompanyID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse does not belong to company").WithDetails(map[string]any{
			"warehouse_id": input.WarehouseID,
			"company_id":   input.CompanyID,
		})
	}

	var (
		createdProduct   *models.Product
		createdInventory *models.Inventory
	)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			CompanyID:   input.CompanyID,
			SKU:         input.SKU,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			ProductType: productType,
			IsBundle:    productType == enums.ProductTypeBundle,
		}
		created, err := txRepo.Create(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "uq_products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists").WithDetails(map[string]any{"sku": input.SKU})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdProduct = created

		inventory := &models.Inventory{
			ProductID:         created.ID,
			WarehouseID:       input.WarehouseID,
			Quantity:          input.InitialQuantity,
			LowStockThreshold: input.LowStockThreshold,
		}
		createdInventory, err = s.inventoryRepo.CreateWithTx(tx, inventory)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory")
		}

		entry := &models.InventoryHistory{
			InventoryID:       createdInventory.ID,
			PreviousQuantity:  0,
			Delta:             input.InitialQuantity,
			ResultingQuantity: input.InitialQuantity,
			ChangeReason:      enums.ChangeReasonInitial,
			ChangedBy:         input.CreatedBy,
			ChangedAt:         s.now().UTC(),
		}
		if err := s.inventoryRepo.AppendHistoryWithTx(tx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append inventory history")
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return NewProductDTO(createdProduct, createdInventory), nil
}

// GetProduct loads a product by id.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(product, nil), nil
}

func validateCreateInput(input CreateProductInput) error {
	if input.SKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.ProductType != "" && !input.ProductType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product type").WithDetails(map[string]any{"product_type": string(input.ProductType)})
	}
	if input.InitialQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "initial quantity cannot be negative")
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "low stock threshold cannot be negative")
	}
	return nil
}
