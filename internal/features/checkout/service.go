package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine/event"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/cart"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
)

type cartEngine interface {
	Items() []*cart.LineItem
	Total() float64
	Clear(ctx context.Context) error
}

type ledgerAppender interface {
	Append(ctx context.Context, newOrder *order.Order) error
}

type transactionAppender interface {
	Append(ctx context.Context, finalized *order.Order) error
}

type ServiceConfig struct {
	Cart         cartEngine
	Ledger       ledgerAppender
	Transactions transactionAppender
	EventEngine  eventengine.RegisterPublisher
	Providers    map[order.Method]Provider
	// Methods overrides the selectable method set; nil means the default
	// five methods, all enabled.
	Methods []*MethodInfo
}

// service orchestrates one checkout attempt through its states:
//
//	Idle -> MethodSelected -> Processing -> {Completed | Failed}
//
// with AwaitingManualConfirmation between Processing and Completed for the
// bank/upi methods. Attempts parked there stay parked until the user
// confirms or abandons them; there is no timeout.
type service struct {
	*ServiceConfig

	mu      sync.Mutex
	pending map[string]*order.Order // orders awaiting manual confirmation, by order id
}

func NewService(cfg *ServiceConfig) *service {
	if cfg == nil {
		log.Fatalln("'serviceConfig' can not be nil")
	}

	if cfg.Cart == nil || cfg.Ledger == nil || cfg.Transactions == nil {
		log.Fatalln("either Cart, Ledger or Transactions is nil")
	}

	if cfg.Methods == nil {
		cfg.Methods = defaultMethods()
	}

	s := &service{
		ServiceConfig: cfg,
		pending:       make(map[string]*order.Order),
	}

	if s.EventEngine != nil {
		s.EventEngine.RegisterEvents(
			event.OrderCompletedEventName,
			event.OrderFailedEventName,
		)
	}

	return s
}

func defaultMethods() []*MethodInfo {
	return []*MethodInfo{
		{ID: order.MethodCard, Name: "Credit/Debit Card", Enabled: true},
		{ID: order.MethodPayPal, Name: "PayPal", Enabled: true},
		{ID: order.MethodBank, Name: "Bank Transfer", Enabled: true},
		{ID: order.MethodUPI, Name: "UPI", Enabled: true},
		{ID: order.MethodCOD, Name: "Cash on Delivery", Enabled: true},
	}
}

// Methods lists the selectable payment methods.
func (s *service) Methods() []*MethodInfo {
	return s.ServiceConfig.Methods
}

// Checkout runs one attempt for the given method against the current cart.
//
// Rejections (empty cart, non-positive total, unknown or disabled method)
// happen before any Order is constructed and mutate nothing. Once the
// pending Order exists the attempt always ends in the ledger: completed,
// failed, or parked awaiting manual confirmation (in which case the append
// is deferred to Confirm).
func (s *service) Checkout(ctx context.Context, method order.Method) (*CheckoutResult, error) {
	methodInfo := s.findMethod(method)
	if methodInfo == nil {
		return nil, servererrors.ErrUnknownPaymentMethod
	}

	if !methodInfo.Enabled {
		return nil, servererrors.ErrPaymentMethodDisabled
	}

	items := s.Cart.Items()
	if len(items) == 0 {
		return nil, servererrors.ErrEmptyCart
	}

	amount := cart.RoundAmount(s.Cart.Total())
	if amount <= 0 {
		return nil, servererrors.ErrInvalidPaymentAmount
	}

	// Processing: the pending order is constructed before settlement is
	// attempted, with the amount and items frozen at this instant.
	attempt := &order.Order{
		ID:     order.NewOrderID(),
		Amount: amount,
		Method: method,
		Date:   time.Now().UTC(),
		Status: order.StatusPending,
		Items:  items,
	}

	provider, ok := s.Providers[method]
	if !ok {
		// enabled method with no settlement routine wired
		err := fmt.Errorf(
			"%w: no settlement provider for method '%s'",
			servererrors.ErrUnknownPaymentMethod,
			method,
		)
		if finalizeErr := s.finalizeFailed(ctx, attempt); finalizeErr != nil {
			return nil, finalizeErr
		}
		return nil, err
	}

	settlement, err := provider.Settle(ctx, attempt)
	if err != nil {
		if finalizeErr := s.finalizeFailed(ctx, attempt); finalizeErr != nil {
			return nil, finalizeErr
		}
		return nil, fmt.Errorf("%w: %v", servererrors.ErrPaymentFailed, err)
	}

	attempt.TransactionID = settlement.TransactionID

	if settlement.RequiresVerification {
		// AwaitingManualConfirmation: nothing is appended and the cart is
		// untouched until the user confirms.
		s.mu.Lock()
		s.pending[attempt.ID] = attempt
		s.mu.Unlock()

		return &CheckoutResult{
			Order:                attempt,
			AwaitingConfirmation: true,
			Instructions:         settlement.Instructions,
		}, nil
	}

	if err := s.finalizeCompleted(ctx, attempt); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Order: attempt,
	}, nil
}

// Confirm finalizes an order parked by a bank/upi checkout. Unknown order
// ids are a user-input rejection.
func (s *service) Confirm(ctx context.Context, orderID string) (*order.Order, error) {
	s.mu.Lock()
	attempt, exists := s.pending[orderID]
	if exists {
		delete(s.pending, orderID)
	}
	s.mu.Unlock()

	if !exists {
		return nil, servererrors.ErrPendingOrderNotFound
	}

	if err := s.finalizeCompleted(ctx, attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

// finalizeCompleted runs the Completed effects in order: append to the
// ledger, clear the cart, notify subscribers, record the transaction.
func (s *service) finalizeCompleted(ctx context.Context, attempt *order.Order) error {
	attempt.Status = order.StatusCompleted

	if err := s.Ledger.Append(ctx, attempt); err != nil {
		return err
	}

	if err := s.Cart.Clear(ctx); err != nil {
		return err
	}

	s.publish(&event.Event{
		Name: event.OrderCompletedEventName,
		Payload: &event.OrderCompletedEvent{
			OrderPayload: event.OrderPayload{
				OrderID: attempt.ID,
				Amount:  attempt.Amount,
				Method:  string(attempt.Method),
			},
		},
	})

	if err := s.Transactions.Append(ctx, attempt); err != nil {
		return err
	}

	return nil
}

// finalizeFailed records the failed attempt; the cart is preserved so the
// user can retry.
func (s *service) finalizeFailed(ctx context.Context, attempt *order.Order) error {
	attempt.Status = order.StatusFailed

	if err := s.Ledger.Append(ctx, attempt); err != nil {
		return err
	}

	s.publish(&event.Event{
		Name: event.OrderFailedEventName,
		Payload: &event.OrderFailedEvent{
			OrderPayload: event.OrderPayload{
				OrderID: attempt.ID,
				Amount:  attempt.Amount,
				Method:  string(attempt.Method),
			},
		},
	})

	if err := s.Transactions.Append(ctx, attempt); err != nil {
		return err
	}

	return nil
}

func (s *service) publish(newEvent *event.Event) {
	if s.EventEngine == nil {
		return
	}

	if err := s.EventEngine.Publish(newEvent); err != nil {
		log.Printf("failed to publish %s: %v", newEvent.Name, err)
	}
}

func (s *service) findMethod(method order.Method) *MethodInfo {
	for _, methodInfo := range s.ServiceConfig.Methods {
		if methodInfo.ID == method {
			return methodInfo
		}
	}

	return nil
}

// pendingCount reports how many attempts are awaiting manual confirmation.
func (s *service) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}
