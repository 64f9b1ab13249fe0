package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/cart"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *kvstore.MemoryStore
	cart    *cart.Service
	ledger  *order.Ledger
	tlog    *order.TransactionLog
	service *service
}

func newFixture(t *testing.T, providers map[order.Method]Provider) *fixture {
	t.Helper()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	cartService := cart.NewService(ctx, store)
	ledger := order.NewLedger(store)
	tlog := order.NewTransactionLog(store)

	if providers == nil {
		providers = DefaultProviders(0)
	}

	return &fixture{
		store:  store,
		cart:   cartService,
		ledger: ledger,
		tlog:   tlog,
		service: NewService(&ServiceConfig{
			Cart:         cartService,
			Ledger:       ledger,
			Transactions: tlog,
			Providers:    providers,
		}),
	}
}

func (f *fixture) fillCartTo100(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, &catalog.Product{ID: 1, Name: "Strip", Price: 25.00}, 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, &catalog.Product{ID: 2, Name: "Coil", Price: 50.00}, 1)
	require.NoError(t, err)
}

type failingProvider struct{}

func (p *failingProvider) Settle(ctx context.Context, attempt *order.Order) (*Settlement, error) {
	return nil, errors.New("gateway rejected the charge")
}

func TestCheckout_AutomaticMethodsComplete(t *testing.T) {
	ctx := context.Background()

	for _, method := range []order.Method{order.MethodCard, order.MethodPayPal, order.MethodCOD} {
		t.Run(string(method), func(t *testing.T) {
			f := newFixture(t, nil)
			f.fillCartTo100(t)

			result, err := f.service.Checkout(ctx, method)
			require.NoError(t, err)
			require.NotNil(t, result.Order)
			assert.False(t, result.AwaitingConfirmation)

			assert.Equal(t, order.StatusCompleted, result.Order.Status)
			assert.Equal(t, 100.00, result.Order.Amount)
			assert.Len(t, result.Order.Items, 2)
			assert.True(
				t,
				strings.HasPrefix(result.Order.TransactionID, strings.ToUpper(string(method))+"_"),
				"transaction id should be METHOD_epochMillis, got %s",
				result.Order.TransactionID,
			)

			// exactly one completed order in the ledger and the cart is empty
			orders, err := f.ledger.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, order.StatusCompleted, orders[0].Status)
			assert.Zero(t, f.cart.ItemCount())

			// and one audit record
			records, err := f.tlog.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, records, 1)
		})
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.service.Checkout(ctx, order.MethodCard)
	assert.ErrorIs(t, err, servererrors.ErrEmptyCart)

	orders, err := f.ledger.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders, "empty-cart checkout must never append to the ledger")
}

func TestCheckout_UnknownMethodRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fillCartTo100(t)

	_, err := f.service.Checkout(ctx, "bitcoin")
	assert.ErrorIs(t, err, servererrors.ErrUnknownPaymentMethod)

	orders, err := f.ledger.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 3, f.cart.ItemCount(), "rejection must not mutate the cart")
}

func TestCheckout_DisabledMethodRejected(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	cartService := cart.NewService(ctx, store)
	ledger := order.NewLedger(store)
	tlog := order.NewTransactionLog(store)

	svc := NewService(&ServiceConfig{
		Cart:         cartService,
		Ledger:       ledger,
		Transactions: tlog,
		Providers:    DefaultProviders(0),
		Methods: []*MethodInfo{
			{ID: order.MethodCard, Name: "Credit/Debit Card", Enabled: false},
		},
	})

	_, err := cartService.AddItem(ctx, &catalog.Product{ID: 1, Price: 10}, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, order.MethodCard)
	assert.ErrorIs(t, err, servererrors.ErrPaymentMethodDisabled)

	orders, err := ledger.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_SettlementFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[order.Method]Provider{
		order.MethodCard: &failingProvider{},
	})
	f.fillCartTo100(t)

	_, err := f.service.Checkout(ctx, order.MethodCard)
	assert.ErrorIs(t, err, servererrors.ErrPaymentFailed)

	// the attempt is still recorded, as failed, and the cart survives
	orders, err := f.ledger.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusFailed, orders[0].Status)
	assert.Equal(t, 3, f.cart.ItemCount())

	records, err := f.tlog.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, order.StatusFailed, records[0].Status)
}

func TestCheckout_ManualConfirmationFlow(t *testing.T) {
	ctx := context.Background()

	for _, method := range []order.Method{order.MethodBank, order.MethodUPI} {
		t.Run(string(method), func(t *testing.T) {
			f := newFixture(t, nil)
			f.fillCartTo100(t)

			result, err := f.service.Checkout(ctx, method)
			require.NoError(t, err)
			require.True(t, result.AwaitingConfirmation)
			assert.Equal(t, order.StatusPending, result.Order.Status)
			assert.Equal(t, "100.00", result.Instructions["amount"])

			// until the user confirms: no ledger entry, cart untouched
			orders, err := f.ledger.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, orders)
			assert.Equal(t, 3, f.cart.ItemCount())
			assert.Equal(t, 1, f.service.pendingCount())

			confirmed, err := f.service.Confirm(ctx, result.Order.ID)
			require.NoError(t, err)
			assert.Equal(t, order.StatusCompleted, confirmed.Status)

			orders, err = f.ledger.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, order.StatusCompleted, orders[0].Status)
			assert.Zero(t, f.cart.ItemCount())
			assert.Zero(t, f.service.pendingCount())

			// confirming twice is a rejection
			_, err = f.service.Confirm(ctx, result.Order.ID)
			assert.ErrorIs(t, err, servererrors.ErrPendingOrderNotFound)
		})
	}
}

func TestCheckout_AbandonedManualConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fillCartTo100(t)

	_, err := f.service.Checkout(ctx, order.MethodBank)
	require.NoError(t, err)

	// the user never confirms: the ledger never sees a completed entry
	orders, err := f.ledger.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestConfirm_UnknownOrderID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.service.Confirm(ctx, "ORD99999999")
	assert.ErrorIs(t, err, servererrors.ErrPendingOrderNotFound)
}

func TestBankProvider_Instructions(t *testing.T) {
	p := &BankProvider{
		BankName:      "State Bank of India",
		AccountName:   "AluTech Industries",
		AccountNumber: "123456789012",
		IFSCCode:      "SBIN0001234",
		Branch:        "Hyderabad Main Branch",
	}

	attempt := &order.Order{ID: "ORD00000042", Amount: 70.48}

	settlement, err := p.Settle(context.Background(), attempt)
	require.NoError(t, err)
	assert.True(t, settlement.RequiresVerification)
	assert.Equal(t, "ORD00000042", settlement.Instructions["reference"])
	assert.Equal(t, "70.48", settlement.Instructions["amount"])
	assert.Equal(t, "State Bank of India", settlement.Instructions["bankName"])
}
