package checkout

import "github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"

// Requests

type CheckoutRequest struct {
	Method string `json:"method" validate:"required"`
}

// Responses

// MethodInfo describes a selectable payment method.
type MethodInfo struct {
	ID      order.Method `json:"id"`
	Name    string       `json:"name"`
	Enabled bool         `json:"enabled"`
}

// CheckoutResult is what a checkout attempt produces. For card/paypal/cod
// the order is final. For bank/upi AwaitingConfirmation is true, the
// instructions tell the user what to do and the order is finalized only by
// a later confirm call.
type CheckoutResult struct {
	Order                *order.Order      `json:"order"`
	AwaitingConfirmation bool              `json:"awaitingConfirmation"`
	Instructions         map[string]string `json:"instructions,omitempty"`
}
