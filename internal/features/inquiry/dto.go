package inquiry

// Requests

type CreateInquiryRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=80,noAllRepeatingChars"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Product string `json:"product"`
	Message string `json:"message" validate:"required,min=5,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=responded"`
}
