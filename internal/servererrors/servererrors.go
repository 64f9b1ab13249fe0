// Package servererrors defines the error type the centralized error-handler
// middleware unwraps to map service failures onto HTTP responses.
package servererrors

import "errors"

var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrProductNotFound       = errors.New("product not found")
	ErrEmptyCart             = errors.New("your cart is empty")
	ErrInvalidPaymentAmount  = errors.New("invalid payment amount")
	ErrPaymentMethodDisabled = errors.New("this payment method is currently unavailable")
	ErrUnknownPaymentMethod  = errors.New("invalid payment method")
	ErrPaymentFailed         = errors.New("payment failed")
	ErrPendingOrderNotFound  = errors.New("no pending order awaiting confirmation")
	ErrProductAlreadyExists  = errors.New("product already exists")
	ErrAdminProductNotFound  = errors.New("admin product not found")
)

type ServerError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Errors     any    `json:"errors,omitempty"`
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}
