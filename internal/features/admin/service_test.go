package admin

import (
	"context"
	"testing"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInquiryCounter struct {
	count int
}

func (s *stubInquiryCounter) Count(ctx context.Context) (int, error) {
	return s.count, nil
}

func newAdminService(t *testing.T) (*service, *order.Ledger) {
	t.Helper()

	store := kvstore.NewMemoryStore()
	ledger := order.NewLedger(store)

	return NewService(
		NewStore(store),
		ledger,
		&stubInquiryCounter{count: 2},
	), ledger
}

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	svc, ledger := newAdminService(t)

	require.NoError(t, ledger.Append(ctx, &order.Order{
		ID:     "ORD00000001",
		Amount: 70.48,
		Status: order.StatusCompleted,
	}))
	require.NoError(t, ledger.Append(ctx, &order.Order{
		ID:     "ORD00000002",
		Amount: 18.50,
		Status: order.StatusFailed,
	}))

	stats, err := svc.getDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalOrders, "failed attempts still count as orders")
	assert.Equal(t, 70.48, stats.TotalRevenue, "only completed orders earn revenue")
	assert.Equal(t, 2, stats.TotalInquiries)
	assert.Equal(t, 2, stats.TotalProducts, "empty store seeds from catalog defaults")
}

func TestCreateProduct_AssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdminService(t)

	created, err := svc.createProduct(ctx, &CreateProductRequest{
		Name:  "Mirror Finish Strip",
		Price: 42.99,
	})
	require.NoError(t, err)

	// two seeded defaults, so the new product gets id 3
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, catalog.CategoryStrip, created.Category)
	assert.Equal(t, "/meter", created.Unit)
	assert.Equal(t, 100, created.Stock)

	products, err := svc.getAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdminService(t)

	newPrice := 29.99
	require.NoError(t, svc.updateProduct(ctx, 1, &UpdateProductRequest{
		Price: &newPrice,
	}))

	products, err := svc.getAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 29.99, products[0].Price)
	assert.Equal(t, "Anodized Aluminium Strip", products[0].Name, "unset fields stay untouched")

	// absent ids are silent no-ops
	require.NoError(t, svc.updateProduct(ctx, 99, &UpdateProductRequest{
		Price: &newPrice,
	}))
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdminService(t)

	require.NoError(t, svc.deleteProduct(ctx, 1))

	products, err := svc.getAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].ID)

	// created after a deletion: id = currentCount + 1, which can collide
	// with a surviving product; that fragility is preserved on purpose
	created, err := svc.createProduct(ctx, &CreateProductRequest{
		Name:  "Industrial Grade Coil",
		Price: 15.25,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
}
