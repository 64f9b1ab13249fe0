package admin

import (
	"context"
	"log"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/cart"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"
)

type storer interface {
	findAll(ctx context.Context) ([]*catalog.Product, error)
	createOne(ctx context.Context, newProduct *catalog.Product) (*catalog.Product, error)
	updateOne(ctx context.Context, productID int, payload *UpdateProductRequest) error
	deleteOne(ctx context.Context, productID int) error
}

type ledgerReader interface {
	FindAll(ctx context.Context) ([]*order.Order, error)
}

type inquiryCounter interface {
	Count(ctx context.Context) (int, error)
}

type service struct {
	store     storer
	ledger    ledgerReader
	inquiries inquiryCounter
}

func NewService(adminStore storer, ledger ledgerReader, inquiries inquiryCounter) *service {
	return &service{
		store:     adminStore,
		ledger:    ledger,
		inquiries: inquiries,
	}
}

// getDashboardStats recomputes the dashboard aggregates from the ledger,
// the inquiry log and the admin product list. Revenue counts completed
// orders only; failed attempts sit in the ledger for audit but earn
// nothing.
func (s *service) getDashboardStats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.ledger.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var revenue float64
	for _, o := range orders {
		if o.Status == order.StatusCompleted {
			revenue += o.Amount
		}
	}

	inquiryCount, err := s.inquiries.Count(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.store.findAll(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalOrders:    len(orders),
		TotalRevenue:   cart.RoundAmount(revenue),
		TotalInquiries: inquiryCount,
		TotalProducts:  len(products),
	}, nil
}

// RefreshDashboard recomputes and logs the dashboard aggregates. Called by
// the event handler whenever a co-resident feature changes them.
func (s *service) RefreshDashboard(ctx context.Context) {
	stats, err := s.getDashboardStats(ctx)
	if err != nil {
		log.Printf("failed to refresh admin dashboard: %v", err)
		return
	}

	log.Printf(
		"admin dashboard refreshed: %d orders, $%.2f revenue, %d inquiries, %d products",
		stats.TotalOrders,
		stats.TotalRevenue,
		stats.TotalInquiries,
		stats.TotalProducts,
	)
}

func (s *service) getAllProducts(ctx context.Context) ([]*catalog.Product, error) {
	return s.store.findAll(ctx)
}

func (s *service) createProduct(ctx context.Context, payload *CreateProductRequest) (*catalog.Product, error) {
	newProduct := &catalog.Product{
		Name:        payload.Name,
		Category:    payload.Category,
		Price:       payload.Price,
		Unit:        payload.Unit,
		Stock:       payload.Stock,
		Description: payload.Description,
		Features:    payload.Features,
		Image:       payload.Image,
	}

	// same defaults the dashboard form applies
	if newProduct.Category == "" {
		newProduct.Category = catalog.CategoryStrip
	}
	if newProduct.Unit == "" {
		newProduct.Unit = "/meter"
	}
	if newProduct.Stock == 0 {
		newProduct.Stock = 100
	}
	if newProduct.Image == "" {
		newProduct.Image = "images/default-product.jpg"
	}

	return s.store.createOne(ctx, newProduct)
}

func (s *service) updateProduct(ctx context.Context, productID int, payload *UpdateProductRequest) error {
	return s.store.updateOne(ctx, productID, payload)
}

func (s *service) deleteProduct(ctx context.Context, productID int) error {
	return s.store.deleteOne(ctx, productID)
}
