package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
)

// store keeps the admin-edited product list behind the adminProducts store
// key, independent from the catalog's own source. When the key is empty it
// seeds from the catalog defaults.
type store struct {
	mu sync.Mutex
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *store {
	return &store{
		kv: kv,
	}
}

func (s *store) findAll(ctx context.Context) ([]*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll(ctx)
}

// createOne assigns id = currentCount + 1. Ids are not collision-checked
// against deletions; that quirk is part of the dashboard's contract.
func (s *store) createOne(ctx context.Context, newProduct *catalog.Product) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	newProduct.ID = len(products) + 1
	products = append(products, newProduct)

	if err := s.writeAll(ctx, products); err != nil {
		return nil, err
	}

	return newProduct, nil
}

// updateOne merges the set fields into the product. Absent ids are a
// silent no-op.
func (s *store) updateOne(ctx context.Context, productID int, payload *UpdateProductRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	for _, product := range products {
		if product.ID != productID {
			continue
		}

		applyUpdate(product, payload)
		return s.writeAll(ctx, products)
	}

	return nil
}

// deleteOne drops the product. Absent ids are a silent no-op.
func (s *store) deleteOne(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, product := range products {
		if product.ID != productID {
			kept = append(kept, product)
		}
	}

	return s.writeAll(ctx, kept)
}

// readAll must be called with the mutex held.
func (s *store) readAll(ctx context.Context) ([]*catalog.Product, error) {
	raw, err := s.kv.Get(ctx, kvstore.AdminProductsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read admin products: %w", err)
	}

	if raw == "" {
		return catalog.DefaultProducts(), nil
	}

	var products []*catalog.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		log.Printf("malformed stored admin products, using defaults: %v", err)
		return catalog.DefaultProducts(), nil
	}

	return products, nil
}

// writeAll must be called with the mutex held.
func (s *store) writeAll(ctx context.Context, products []*catalog.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to serialize admin products: %w", err)
	}

	if err := s.kv.Set(ctx, kvstore.AdminProductsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist admin products: %w", err)
	}

	return nil
}

func applyUpdate(product *catalog.Product, payload *UpdateProductRequest) {
	if payload.Name != nil {
		product.Name = *payload.Name
	}
	if payload.Category != nil {
		product.Category = *payload.Category
	}
	if payload.Price != nil {
		product.Price = *payload.Price
	}
	if payload.Unit != nil {
		product.Unit = *payload.Unit
	}
	if payload.Stock != nil {
		product.Stock = *payload.Stock
	}
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	if payload.Features != nil {
		product.Features = *payload.Features
	}
	if payload.Image != nil {
		product.Image = *payload.Image
	}
}
