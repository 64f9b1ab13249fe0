package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
)

// Service owns the active line-item collection. Exactly one instance exists
// per process and every consumer (cart routes, checkout, admin wiring) goes
// through it, so the store key has a single writer. A mutex guards the
// items because handlers run concurrently.
//
// Mutations on absent product ids are silent no-ops. That is a design
// contract, not an oversight: callers must not assume an error when
// referencing a nonexistent id.
type Service struct {
	mu    sync.Mutex
	store kvstore.Store
	items []*LineItem
}

// NewService restores the cart from the store. A missing or malformed
// stored value yields an empty cart rather than an error.
func NewService(ctx context.Context, store kvstore.Store) *Service {
	s := &Service{
		store: store,
	}

	raw, err := store.Get(ctx, kvstore.CartKey)
	if err != nil || raw == "" {
		if err != nil {
			log.Printf("failed to restore cart, starting empty: %v", err)
		}
		return s
	}

	var items []*LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("malformed stored cart, starting empty: %v", err)
		return s
	}

	s.items = items
	return s
}

// AddItem merges quantity into an existing line item for the product or
// appends a new one, then persists. Quantities below 1 default to 1.
// Returns the updated line-item sequence.
func (s *Service) AddItem(ctx context.Context, product *catalog.Product, quantity int) ([]*LineItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.find(product.ID); existing != nil {
		existing.Quantity += quantity
	} else {
		s.items = append(s.items, &LineItem{
			Product:  *product,
			Quantity: quantity,
			AddedAt:  time.Now().UTC(),
		})
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	return s.copyItems(), nil
}

// RemoveItem drops the line item with that product id and persists. Absent
// ids are a no-op.
func (s *Service) RemoveItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept

	return s.persist(ctx)
}

// UpdateQuantity sets the quantity for an existing line item. A quantity of
// zero or less removes the item entirely. Absent ids are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, productID int, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(productID)
	if item == nil {
		return nil
	}

	item.Quantity = quantity
	return s.persist(ctx)
}

// Total is the sum of price times quantity over the current line items.
// Computed on demand, never cached, no rounding; the display layer rounds
// to 2 decimals.
func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.LineTotal()
	}

	return total
}

// ItemCount is the sum of quantities, used to drive the cart badge.
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}

	return count
}

// Items returns a snapshot copy of the line items in insertion order.
func (s *Service) Items() []*LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyItems()
}

// Clear empties the cart and persists.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist(ctx)
}

// find must be called with the mutex held.
func (s *Service) find(productID int) *LineItem {
	for _, item := range s.items {
		if item.ID == productID {
			return item
		}
	}

	return nil
}

// copyItems must be called with the mutex held.
func (s *Service) copyItems() []*LineItem {
	items := make([]*LineItem, 0, len(s.items))
	for _, item := range s.items {
		copied := *item
		items = append(items, &copied)
	}

	return items
}

// persist mirrors the line items to the store. Must be called with the
// mutex held.
func (s *Service) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []*LineItem{} // store "[]", not "null"
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := s.store.Set(ctx, kvstore.CartKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}
