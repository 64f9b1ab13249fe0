package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
	"github.com/google/uuid"
)

// Ledger is the append-only order collection behind the orders store key.
// Appends are read-whole/push/write-whole; the mutex serializes them so
// concurrent checkouts cannot drop each other's writes. There is no update
// and no delete.
type Ledger struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewLedger(store kvstore.Store) *Ledger {
	return &Ledger{
		store: store,
	}
}

func (l *Ledger) Append(ctx context.Context, newOrder *Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.readAll(ctx)
	if err != nil {
		return err
	}

	orders = append(orders, newOrder)

	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to serialize orders: %w", err)
	}

	if err := l.store.Set(ctx, kvstore.OrdersKey, string(raw)); err != nil {
		return fmt.Errorf("failed to append order to ledger: %w", err)
	}

	return nil
}

func (l *Ledger) FindAll(ctx context.Context) ([]*Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.readAll(ctx)
}

// readAll must be called with the mutex held. Malformed stored JSON reads
// as an empty ledger rather than failing the caller.
func (l *Ledger) readAll(ctx context.Context) ([]*Order, error) {
	raw, err := l.store.Get(ctx, kvstore.OrdersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read order ledger: %w", err)
	}

	if raw == "" {
		return []*Order{}, nil
	}

	var orders []*Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		log.Printf("malformed stored orders, treating ledger as empty: %v", err)
		return []*Order{}, nil
	}

	return orders, nil
}

// TransactionLog is the audit log behind the transactions store key. Every
// finalized checkout attempt lands here, regardless of outcome.
type TransactionLog struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewTransactionLog(store kvstore.Store) *TransactionLog {
	return &TransactionLog{
		store: store,
	}
}

func (t *TransactionLog) Append(ctx context.Context, finalized *Order) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.readAll(ctx)
	if err != nil {
		return err
	}

	records = append(records, &TransactionRecord{
		RecordID: uuid.New(),
		Order:    *finalized,
	})

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize transactions: %w", err)
	}

	if err := t.store.Set(ctx, kvstore.TransactionsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to append transaction record: %w", err)
	}

	return nil
}

func (t *TransactionLog) FindAll(ctx context.Context) ([]*TransactionRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.readAll(ctx)
}

func (t *TransactionLog) readAll(ctx context.Context) ([]*TransactionRecord, error) {
	raw, err := t.store.Get(ctx, kvstore.TransactionsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction log: %w", err)
	}

	if raw == "" {
		return []*TransactionRecord{}, nil
	}

	var records []*TransactionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("malformed stored transactions, treating log as empty: %v", err)
		return []*TransactionRecord{}, nil
	}

	return records, nil
}
