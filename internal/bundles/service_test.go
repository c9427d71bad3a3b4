package bundles

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/internal/products"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
)

func setupBundlesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  product_type TEXT NOT NULL DEFAULT 'standard',
  is_bundle INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS product_bundles (
  id TEXT PRIMARY KEY,
  bundle_product_id TEXT NOT NULL,
  component_product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  UNIQUE (bundle_product_id, component_product_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newBundlesService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func seedProduct(t *testing.T, conn *gorm.DB, companyID uuid.UUID, productType enums.ProductType) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		CompanyID:   companyID,
		SKU:         fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:        "Component",
		Price:       decimal.NewFromFloat(3.00),
		ProductType: productType,
		IsBundle:    productType == enums.ProductTypeBundle,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestServiceAddComponent(t *testing.T) {
	conn := setupBundlesTestDB(t)
	svc := newBundlesService(t, conn)

	companyID := uuid.New()
	bundle := seedProduct(t, conn, companyID, enums.ProductTypeBundle)
	componentA := seedProduct(t, conn, companyID, enums.ProductTypeStandard)
	componentB := seedProduct(t, conn, companyID, enums.ProductTypeStandard)

	first, err := svc.AddComponent(context.Background(), bundle.ID, componentA.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, bundle.ID, first.BundleProductID)
	assert.Equal(t, componentA.ID, first.ComponentProductID)
	assert.Equal(t, 2, first.Quantity)

	_, err = svc.AddComponent(context.Background(), bundle.ID, componentB.ID, 1)
	require.NoError(t, err)

	list, err := svc.ListComponents(context.Background(), bundle.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, componentA.ID, list[0].ComponentProductID)
	assert.Equal(t, componentB.ID, list[1].ComponentProductID)
}

func TestServiceAddComponent_validation(t *testing.T) {
	conn := setupBundlesTestDB(t)
	svc := newBundlesService(t, conn)

	companyID := uuid.New()
	bundle := seedProduct(t, conn, companyID, enums.ProductTypeBundle)
	plain := seedProduct(t, conn, companyID, enums.ProductTypeStandard)
	foreign := seedProduct(t, conn, uuid.New(), enums.ProductTypeStandard)

	_, err := svc.AddComponent(context.Background(), bundle.ID, plain.ID, 0)
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddComponent(context.Background(), bundle.ID, bundle.ID, 1)
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddComponent(context.Background(), plain.ID, bundle.ID, 1)
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddComponent(context.Background(), bundle.ID, foreign.ID, 1)
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddComponent(context.Background(), uuid.New(), plain.ID, 1)
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.AddComponent(context.Background(), bundle.ID, uuid.New(), 1)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceAddComponent_duplicate(t *testing.T) {
	conn := setupBundlesTestDB(t)
	svc := newBundlesService(t, conn)

	companyID := uuid.New()
	bundle := seedProduct(t, conn, companyID, enums.ProductTypeBundle)
	component := seedProduct(t, conn, companyID, enums.ProductTypeStandard)

	_, err := svc.AddComponent(context.Background(), bundle.ID, component.ID, 1)
	require.NoError(t, err)

	_, err = svc.AddComponent(context.Background(), bundle.ID, component.ID, 3)
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestServiceAddComponent_rejectsCycle(t *testing.T) {
	conn := setupBundlesTestDB(t)
	svc := newBundlesService(t, conn)

	companyID := uuid.New()
	outer := seedProduct(t, conn, companyID, enums.ProductTypeBundle)
	inner := seedProduct(t, conn, companyID, enums.ProductTypeBundle)

	_, err := svc.AddComponent(context.Background(), outer.ID, inner.ID, 1)
	require.NoError(t, err)

	// inner -> outer would close the loop outer -> inner -> outer.
	_, err = svc.AddComponent(context.Background(), inner.ID, outer.ID, 1)
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceAddComponent_rejectsTransitiveCycle(t *testing.T) {
	conn := setupBundlesTestDB(t)
	svc := newBundlesService(t, conn)

	companyID := uuid.New()
	a := seedProduct(t, conn, companyID, enums.ProductTypeBundle)
	b := seedProduct(t, conn, companyID, enums.ProductTypeBundle)
	c := seedProduct(t, conn, companyID, enums.ProductTypeBundle)

	_, err := svc.AddComponent(context.Background(), a.ID, b.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddComponent(context.Background(), b.ID, c.ID, 1)
	require.NoError(t, err)

	_, err = svc.AddComponent(context.Background(), c.ID, a.ID, 1)
	requireCode(t, err, pkgerrors.CodeValidation)

	// A diamond is fine; only cycles are rejected.
	shared := seedProduct(t, conn, companyID, enums.ProductTypeStandard)
	_, err = svc.AddComponent(context.Background(), a.ID, shared.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddComponent(context.Background(), b.ID, shared.ID, 1)
	require.NoError(t, err)
}

func TestServiceListComponents_bundleMissing(t *testing.T) {
	conn := setupBundlesTestDB(t)
	svc := newBundlesService(t, conn)

	_, err := svc.ListComponents(context.Background(), uuid.New())
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, code, typed.Code())
}
