package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
)

// FilterOpts narrows FindAll results. Zero values mean no filtering.
type FilterOpts struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// sourcePayload is the shape of the fetched catalog document.
type sourcePayload struct {
	Products []*Product `json:"products"`
}

type ServiceConfig struct {
	SourceURL    string
	FetchTimeout time.Duration
	HTTPClient   *http.Client
}

type service struct {
	products []*Product
}

// NewService fetches the product list from cfg.SourceURL and falls back to
// the built-in defaults when the source is unconfigured, unreachable or
// malformed. A failed fetch is never fatal to startup.
func NewService(cfg *ServiceConfig) *service {
	s := &service{}

	products, err := fetchProducts(cfg)
	if err != nil {
		log.Printf(
			"catalog source unavailable, using default products: %v",
			err,
		)
		products = DefaultProducts()
	}

	s.products = products
	return s
}

func fetchProducts(cfg *ServiceConfig) ([]*Product, error) {
	if cfg == nil || cfg.SourceURL == "" {
		return nil, fmt.Errorf("no catalog source configured")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	timeout := cfg.FetchTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(
		context.Background(),
		timeout,
	)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		cfg.SourceURL,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"catalog source responded with status %d",
			res.StatusCode,
		)
	}

	var payload sourcePayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog payload: %w", err)
	}

	if len(payload.Products) == 0 {
		return nil, fmt.Errorf("catalog payload contains no products")
	}

	return payload.Products, nil
}

// FindAll returns the products matching the filter, in catalog order.
func (s *service) FindAll(filter *FilterOpts) []*Product {
	if filter == nil || (filter.Category == "" && filter.Search == "") {
		return s.copyAll()
	}

	var matched []*Product
	for _, product := range s.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}

		if filter.Search != "" && !matchesSearch(product, filter.Search) {
			continue
		}

		copied := *product
		matched = append(matched, &copied)
	}

	return matched
}

// FindByID returns the product or servererrors.ErrProductNotFound.
func (s *service) FindByID(productID int) (*Product, error) {
	for _, product := range s.products {
		if product.ID == productID {
			copied := *product
			return &copied, nil
		}
	}

	return nil, servererrors.ErrProductNotFound
}

func (s *service) copyAll() []*Product {
	all := make([]*Product, 0, len(s.products))
	for _, product := range s.products {
		copied := *product
		all = append(all, &copied)
	}

	return all
}

func matchesSearch(product *Product, search string) bool {
	search = strings.ToLower(search)

	return strings.Contains(strings.ToLower(product.Name), search) ||
		strings.Contains(strings.ToLower(product.Description), search)
}
