package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
)

// Service exposes stock adjustment and audit trail operations.
type Service interface {
	Adjust(ctx context.Context, productID, warehouseID uuid.UUID, input AdjustInput) (*AdjustmentDTO, error)
	ListHistory(ctx context.Context, productID, warehouseID uuid.UUID, limit int) ([]HistoryEntryDTO, error)
}

// AdjustInput holds the validated payload for a stock adjustment.
type AdjustInput struct {
	Delta     int
	Reason    enums.ChangeReason
	ChangedBy *string
}

type service struct {
	repo     *Repository
	dbClient db.TxRunner
	now      func() time.Time
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient db.TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

// Adjust applies a signed quantity delta and writes the audit entry in the
// same transaction. Underflow is rejected before anything is written.
func (s *service) Adjust(ctx context.Context, productID, warehouseID uuid.UUID, input AdjustInput) (*AdjustmentDTO, error) {
	if input.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero")
	}
	if !input.Reason.IsValid() || input.Reason == enums.ChangeReasonInitial {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid change reason").WithDetails(map[string]any{"reason": string(input.Reason)})
	}

	inventory, err := s.repo.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory")
	}

	previous := inventory.Quantity
	next := previous + input.Delta
	if next < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment would drive stock negative").WithDetails(map[string]any{
			"quantity": previous,
			"delta":    input.Delta,
		})
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		affected, err := txRepo.UpdateQuantityWithTx(tx, inventory.ID, previous, next)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update quantity")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "inventory was modified concurrently, retry the adjustment")
		}

		entry := &models.InventoryHistory{
			InventoryID:       inventory.ID,
			PreviousQuantity:  previous,
			Delta:             input.Delta,
			ResultingQuantity: next,
			ChangeReason:      input.Reason,
			ChangedBy:         input.ChangedBy,
			ChangedAt:         s.now().UTC(),
		}
		if err := txRepo.AppendHistoryWithTx(tx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append inventory history")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust inventory")
	}

	return &AdjustmentDTO{
		InventoryID:      inventory.ID,
		ProductID:        productID,
		WarehouseID:      warehouseID,
		PreviousQuantity: previous,
		Delta:            input.Delta,
		Quantity:         next,
		ChangeReason:     input.Reason.String(),
	}, nil
}

// ListHistory returns the audit trail for a (product, warehouse) pair, newest
// first.
func (s *service) ListHistory(ctx context.Context, productID, warehouseID uuid.UUID, limit int) ([]HistoryEntryDTO, error) {
	inventory, err := s.repo.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory")
	}

	entries, err := s.repo.ListHistory(ctx, inventory.ID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory history")
	}
	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, *NewHistoryEntryDTO(&entries[i]))
	}
	return dtos, nil
}
