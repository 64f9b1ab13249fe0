package cart

// Requests

type AddItemRequest struct {
	ProductID int `json:"productId" validate:"required,min=1"`
	Quantity  int `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Responses

type CartResponse struct {
	Items     []*LineItem `json:"items"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
}
