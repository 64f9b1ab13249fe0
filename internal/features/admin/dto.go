package admin

// Requests

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=80,noAllRepeatingChars"`
	Category    string   `json:"category"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Unit        string   `json:"unit"`
	Stock       int      `json:"stock"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price"`
	Unit        *string   `json:"unit"`
	Stock       *int      `json:"stock"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
	Image       *string   `json:"image"`
}

// Responses

// DashboardStats are the aggregate numbers the dashboard header shows.
type DashboardStats struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalInquiries int     `json:"totalInquiries"`
	TotalProducts  int     `json:"totalProducts"`
}
