package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS inventories (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  warehouse_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  low_stock_threshold INTEGER,
  updated_at DATETIME,
  UNIQUE (product_id, warehouse_id)
);`,
		`CREATE TABLE IF NOT EXISTS inventory_history (
  id TEXT PRIMARY KEY,
  inventory_id TEXT NOT NULL,
  previous_quantity INTEGER NOT NULL,
  delta INTEGER NOT NULL,
  resulting_quantity INTEGER NOT NULL,
  change_reason TEXT NOT NULL,
  changed_by TEXT,
  changed_at DATETIME NOT NULL
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedInventory(t *testing.T, conn *gorm.DB, quantity int) *models.Inventory {
	t.Helper()

	inv := &models.Inventory{
		ID:          uuid.New(),
		ProductID:   uuid.New(),
		WarehouseID: uuid.New(),
		Quantity:    quantity,
	}
	require.NoError(t, conn.Create(inv).Error)
	return inv
}

func TestServiceAdjust(t *testing.T) {
	conn := setupInventoryTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	inv := seedInventory(t, conn, 50)
	actor := "picker-7"

	result, err := svc.Adjust(context.Background(), inv.ProductID, inv.WarehouseID, AdjustInput{
		Delta:     -8,
		Reason:    enums.ChangeReasonSale,
		ChangedBy: &actor,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, result.PreviousQuantity)
	assert.Equal(t, -8, result.Delta)
	assert.Equal(t, 42, result.Quantity)
	assert.Equal(t, enums.ChangeReasonSale.String(), result.ChangeReason)

	var reloaded models.Inventory
	require.NoError(t, conn.First(&reloaded, "id = ?", inv.ID).Error)
	assert.Equal(t, 42, reloaded.Quantity)

	entries, err := svc.ListHistory(context.Background(), inv.ProductID, inv.WarehouseID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].PreviousQuantity)
	assert.Equal(t, 42, entries[0].ResultingQuantity)
	require.NotNil(t, entries[0].ChangedBy)
	assert.Equal(t, actor, *entries[0].ChangedBy)
}

func TestServiceAdjust_underflow(t *testing.T) {
	conn := setupInventoryTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	inv := seedInventory(t, conn, 3)

	_, err = svc.Adjust(context.Background(), inv.ProductID, inv.WarehouseID, AdjustInput{
		Delta:  -4,
		Reason: enums.ChangeReasonSale,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// The rejected adjustment must leave no trace.
	var reloaded models.Inventory
	require.NoError(t, conn.First(&reloaded, "id = ?", inv.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)
	var count int64
	require.NoError(t, conn.Model(&models.InventoryHistory{}).Where("inventory_id = ?", inv.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServiceAdjust_invalidReason(t *testing.T) {
	conn := setupInventoryTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	inv := seedInventory(t, conn, 10)

	_, err = svc.Adjust(context.Background(), inv.ProductID, inv.WarehouseID, AdjustInput{
		Delta:  1,
		Reason: enums.ChangeReason("fire"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// The opening-stock reason is reserved for product creation.
	_, err = svc.Adjust(context.Background(), inv.ProductID, inv.WarehouseID, AdjustInput{
		Delta:  1,
		Reason: enums.ChangeReasonInitial,
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceAdjust_zeroDelta(t *testing.T) {
	conn := setupInventoryTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	_, err = svc.Adjust(context.Background(), uuid.New(), uuid.New(), AdjustInput{
		Delta:  0,
		Reason: enums.ChangeReasonRestock,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceAdjust_inventoryMissing(t *testing.T) {
	conn := setupInventoryTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	_, err = svc.Adjust(context.Background(), uuid.New(), uuid.New(), AdjustInput{
		Delta:  5,
		Reason: enums.ChangeReasonRestock,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRepositoryUpdateQuantityWithTx_staleGuard(t *testing.T) {
	conn := setupInventoryTestDB(t)
	repo := NewRepository(conn)

	inv := seedInventory(t, conn, 20)

	affected, err := repo.UpdateQuantityWithTx(conn, inv.ID, 20, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// A second writer that read the old quantity loses cleanly.
	affected, err = repo.UpdateQuantityWithTx(conn, inv.ID, 20, 18)
	require.NoError(t, err)
	assert.Zero(t, affected)

	var reloaded models.Inventory
	require.NoError(t, conn.First(&reloaded, "id = ?", inv.ID).Error)
	assert.Equal(t, 15, reloaded.Quantity)
}

func TestServiceListHistory_newestFirstWithLimit(t *testing.T) {
	conn := setupInventoryTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewWithConn(conn))
	require.NoError(t, err)

	inv := seedInventory(t, conn, 100)
	base := time.Now().UTC().Add(-time.Hour)
	reasons := []enums.ChangeReason{enums.ChangeReasonInitial, enums.ChangeReasonSale, enums.ChangeReasonRestock}
	for i, reason := range reasons {
		entry := &models.InventoryHistory{
			InventoryID:       inv.ID,
			PreviousQuantity:  i * 10,
			Delta:             10,
			ResultingQuantity: (i + 1) * 10,
			ChangeReason:      reason,
			ChangedAt:         base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.AppendHistoryWithTx(conn, entry))
	}

	entries, err := svc.ListHistory(context.Background(), inv.ProductID, inv.WarehouseID, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, enums.ChangeReasonRestock.String(), entries[0].ChangeReason)
	assert.Equal(t, enums.ChangeReasonSale.String(), entries[1].ChangeReason)

	all, err := svc.ListHistory(context.Background(), inv.ProductID, inv.WarehouseID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestServiceListHistory_inventoryMissing(t *testing.T) {
	conn := setupInventoryTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	_, err = svc.ListHistory(context.Background(), uuid.New(), uuid.New(), 10)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
