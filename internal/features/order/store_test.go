package order

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AppendAccumulates(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(kvstore.NewMemoryStore())

	first := &Order{
		ID:     NewOrderID(),
		Amount: 70.48,
		Method: MethodCard,
		Date:   time.Now().UTC(),
		Status: StatusCompleted,
	}
	second := &Order{
		ID:     NewOrderID(),
		Amount: 18.50,
		Method: MethodCOD,
		Date:   time.Now().UTC(),
		Status: StatusFailed,
	}

	require.NoError(t, ledger.Append(ctx, first))
	require.NoError(t, ledger.Append(ctx, second))

	orders, err := ledger.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, StatusFailed, orders[1].Status)
}

func TestLedger_MalformedStoredValue(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, kvstore.OrdersKey, "garbage"))

	ledger := NewLedger(store)

	orders, err := ledger.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	// appending over a malformed value starts a fresh list
	require.NoError(t, ledger.Append(ctx, &Order{ID: "ORD00000001"}))
	orders, err = ledger.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestTransactionLog_Append(t *testing.T) {
	ctx := context.Background()
	tlog := NewTransactionLog(kvstore.NewMemoryStore())

	finalized := &Order{
		ID:            NewOrderID(),
		Amount:        100,
		Method:        MethodPayPal,
		Status:        StatusCompleted,
		TransactionID: "PAYPAL_1700000000000",
	}
	require.NoError(t, tlog.Append(ctx, finalized))

	records, err := tlog.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, finalized.ID, records[0].ID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", records[0].RecordID.String())
}

func TestNewOrderID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewOrderID()
		require.True(t, strings.HasPrefix(id, "ORD"))
		require.Len(t, id, 11, "ORD plus 8 digits")
		assert.False(t, seen[id], "order ids must not collide under rapid successive orders")
		seen[id] = true
	}
}
