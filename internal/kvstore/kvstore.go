// Package kvstore provides the persistent key-value store the storefront
// keeps all of its state in. Values are string-serialized JSON; there are no
// transactions and no atomicity across keys, so callers own their own
// read-modify-write discipline.
package kvstore

import "context"

// Store keys used across the service.
const (
	CartKey          = "cart"
	OrdersKey        = "orders"
	InquiriesKey     = "inquiries"
	TransactionsKey  = "transactions"
	AdminProductsKey = "adminProducts"
)

// Store is a string key-value store. A missing key is not an error: Get
// returns ("", nil) so callers can fall back to their zero collection.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}
