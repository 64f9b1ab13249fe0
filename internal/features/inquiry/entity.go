package inquiry

import "time"

type Status string

const (
	StatusNew       Status = "new"
	StatusResponded Status = "responded"
)

// Inquiry is one customer inquiry/quote/sample request. The log is
// append-only; status is the only mutable field and moves one way,
// new -> responded.
type Inquiry struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Company string    `json:"company"`
	Product string    `json:"product"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Status  Status    `json:"status"`
}
