package inquiry

import (
	"context"
	"log"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine/event"
)

type storer interface {
	append(ctx context.Context, newInquiry *Inquiry) error
	findAll(ctx context.Context) ([]*Inquiry, error)
	updateStatus(ctx context.Context, index int, status Status) error
}

type service struct {
	store       storer
	eventEngine eventengine.RegisterPublisher
}

func NewService(inquiryStore storer, eventEngine eventengine.RegisterPublisher) *service {
	s := &service{
		store:       inquiryStore,
		eventEngine: eventEngine,
	}

	if s.eventEngine != nil {
		s.eventEngine.RegisterEvents(event.InquiryCreatedEventName)
	}

	return s
}

func (s *service) createInquiry(ctx context.Context, payload *CreateInquiryRequest) (*Inquiry, error) {
	newInquiry := &Inquiry{
		Name:    withDefault(payload.Name, "Not provided"),
		Email:   withDefault(payload.Email, "Not provided"),
		Phone:   withDefault(payload.Phone, "Not provided"),
		Company: withDefault(payload.Company, "Not provided"),
		Product: withDefault(payload.Product, "General"),
		Message: withDefault(payload.Message, "No message"),
		Date:    time.Now().UTC(),
		Status:  StatusNew,
	}

	if err := s.store.append(ctx, newInquiry); err != nil {
		return nil, err
	}

	if s.eventEngine != nil {
		err := s.eventEngine.Publish(&event.Event{
			Name: event.InquiryCreatedEventName,
			Payload: &event.InquiryCreatedEvent{
				Name:    newInquiry.Name,
				Email:   newInquiry.Email,
				Product: newInquiry.Product,
			},
		})
		if err != nil {
			log.Printf("failed to publish inquiry.created: %v", err)
		}
	}

	return newInquiry, nil
}

func (s *service) getAllInquiries(ctx context.Context) ([]*Inquiry, error) {
	return s.store.findAll(ctx)
}

func (s *service) respondToInquiry(ctx context.Context, index int) error {
	return s.store.updateStatus(ctx, index, StatusResponded)
}

// Count reports how many inquiries have been logged. Used by the admin
// dashboard stats.
func (s *service) Count(ctx context.Context) (int, error) {
	inquiries, err := s.store.findAll(ctx)
	if err != nil {
		return 0, err
	}

	return len(inquiries), nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
