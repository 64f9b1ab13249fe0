package catalog

// Product is a sellable catalog item. The catalog is read-only from the
// cart's perspective; admin-edited products live under their own store key.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Unit        string   `json:"unit"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Stock       int      `json:"stock,omitempty"`
}

// Known product categories. Unknown categories are tolerated on read and
// simply never match a category filter.
const (
	CategoryStrip  = "strip"
	CategoryCoil   = "coil"
	CategorySheet  = "sheet"
	CategoryCustom = "custom"
)
