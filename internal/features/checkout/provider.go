package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"
)

// Settlement is the outcome of attempting payment via a specific method.
// RequiresVerification marks the manual-confirmation methods (bank, upi):
// the settlement quote succeeded but the order must not be finalized until
// the user explicitly confirms.
type Settlement struct {
	TransactionID        string
	RequiresVerification bool
	Instructions         map[string]string
}

// Provider settles one payment method. Card, paypal and cod simulate a
// gateway round trip; bank and upi return transfer instructions and defer
// finalization to an explicit confirm.
type Provider interface {
	Settle(ctx context.Context, attempt *order.Order) (*Settlement, error)
}

// newTransactionID builds ids of the form METHOD_epochMillis.
func newTransactionID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixMilli())
}

// simulateDelay stands in for gateway latency and honors cancellation.
func simulateDelay(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type CardProvider struct {
	Delay time.Duration
}

func (p *CardProvider) Settle(ctx context.Context, attempt *order.Order) (*Settlement, error) {
	if err := simulateDelay(ctx, p.Delay); err != nil {
		return nil, err
	}

	return &Settlement{
		TransactionID: newTransactionID("CARD"),
	}, nil
}

type PayPalProvider struct {
	Delay time.Duration
}

func (p *PayPalProvider) Settle(ctx context.Context, attempt *order.Order) (*Settlement, error) {
	if err := simulateDelay(ctx, p.Delay); err != nil {
		return nil, err
	}

	return &Settlement{
		TransactionID: newTransactionID("PAYPAL"),
	}, nil
}

type CODProvider struct {
	Delay time.Duration
}

func (p *CODProvider) Settle(ctx context.Context, attempt *order.Order) (*Settlement, error) {
	if err := simulateDelay(ctx, p.Delay); err != nil {
		return nil, err
	}

	return &Settlement{
		TransactionID: newTransactionID("COD"),
	}, nil
}

// BankProvider quotes the transfer details the user must act on. The order
// stays pending until the user confirms the transfer was made.
type BankProvider struct {
	BankName      string
	AccountName   string
	AccountNumber string
	IFSCCode      string
	Branch        string
}

func (p *BankProvider) Settle(ctx context.Context, attempt *order.Order) (*Settlement, error) {
	return &Settlement{
		TransactionID:        newTransactionID("BANK"),
		RequiresVerification: true,
		Instructions: map[string]string{
			"bankName":      p.BankName,
			"accountName":   p.AccountName,
			"accountNumber": p.AccountNumber,
			"ifscCode":      p.IFSCCode,
			"branch":        p.Branch,
			"amount":        fmt.Sprintf("%.2f", attempt.Amount),
			"reference":     attempt.ID,
		},
	}, nil
}

// UPIProvider quotes the upi id and note for the transfer. Same two-phase
// protocol as BankProvider.
type UPIProvider struct {
	UPIID string
}

func (p *UPIProvider) Settle(ctx context.Context, attempt *order.Order) (*Settlement, error) {
	return &Settlement{
		TransactionID:        newTransactionID("UPI"),
		RequiresVerification: true,
		Instructions: map[string]string{
			"upiId":  p.UPIID,
			"amount": fmt.Sprintf("%.2f", attempt.Amount),
			"note":   attempt.ID,
		},
	}, nil
}

// DefaultProviders wires the standard provider set. COD settles in half the
// card/paypal delay.
func DefaultProviders(processingDelay time.Duration) map[order.Method]Provider {
	return map[order.Method]Provider{
		order.MethodCard:   &CardProvider{Delay: processingDelay},
		order.MethodPayPal: &PayPalProvider{Delay: processingDelay},
		order.MethodCOD:    &CODProvider{Delay: processingDelay / 2},
		order.MethodBank: &BankProvider{
			BankName:      "State Bank of India",
			AccountName:   "AluTech Industries",
			AccountNumber: "123456789012",
			IFSCCode:      "SBIN0001234",
			Branch:        "Hyderabad Main Branch",
		},
		order.MethodUPI: &UPIProvider{
			UPIID: "alutech@upi",
		},
	}
}
