package order

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/cart"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Method string

const (
	MethodCard   Method = "card"
	MethodPayPal Method = "paypal"
	MethodBank   Method = "bank"
	MethodUPI    Method = "upi"
	MethodCOD    Method = "cod"
)

// Order is one checkout attempt. Status only ever moves pending->completed
// or pending->failed, and each order is appended to the ledger exactly once
// with its final status.
type Order struct {
	ID            string           `json:"id"`
	Amount        float64          `json:"amount"`
	Method        Method           `json:"method"`
	Date          time.Time        `json:"date"`
	Status        Status           `json:"status"`
	Items         []*cart.LineItem `json:"items"`
	TransactionID string           `json:"transactionId,omitempty"`
}

// TransactionRecord is the audit-log entry written for every finalized
// checkout attempt, success or failure.
type TransactionRecord struct {
	RecordID uuid.UUID `json:"recordId"`
	Order
}

// orderCounter backs order id generation. Seeded from wall-clock millis so
// ids keep the original look, then strictly incremented so rapid successive
// orders can never collide within a process.
var orderCounter atomic.Int64

func init() {
	orderCounter.Store(time.Now().UnixMilli())
}

// NewOrderID returns "ORD" followed by the 8 trailing digits of a monotonic
// counter.
func NewOrderID() string {
	n := orderCounter.Add(1)
	return fmt.Sprintf("ORD%08d", n%100_000_000)
}
