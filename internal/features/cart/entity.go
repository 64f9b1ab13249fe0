package cart

import (
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
)

// LineItem is one product entry in the cart. Product fields are flattened
// into the serialized form so the stored shape matches what the views
// render. Quantity is always >= 1; an item that would drop to zero is
// removed instead.
type LineItem struct {
	catalog.Product
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// LineTotal is price times quantity for this line, unrounded.
func (li *LineItem) LineTotal() float64 {
	return li.Price * float64(li.Quantity)
}
