package inquiry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
)

// store keeps the inquiry log behind the inquiries store key. Like the
// order ledger, writes are read-whole/modify/write-whole serialized by a
// mutex.
type store struct {
	mu sync.Mutex
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *store {
	return &store{
		kv: kv,
	}
}

func (s *store) append(ctx context.Context, newInquiry *Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiries, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	inquiries = append(inquiries, newInquiry)
	return s.writeAll(ctx, inquiries)
}

func (s *store) findAll(ctx context.Context) ([]*Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll(ctx)
}

// updateStatus moves the inquiry at index to responded. The transition is
// one-way and an out-of-range index is a silent no-op.
func (s *store) updateStatus(ctx context.Context, index int, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiries, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(inquiries) {
		return nil
	}

	if inquiries[index].Status == StatusResponded {
		return nil
	}

	inquiries[index].Status = status
	return s.writeAll(ctx, inquiries)
}

// readAll must be called with the mutex held.
func (s *store) readAll(ctx context.Context) ([]*Inquiry, error) {
	raw, err := s.kv.Get(ctx, kvstore.InquiriesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read inquiry log: %w", err)
	}

	if raw == "" {
		return []*Inquiry{}, nil
	}

	var inquiries []*Inquiry
	if err := json.Unmarshal([]byte(raw), &inquiries); err != nil {
		log.Printf("malformed stored inquiries, treating log as empty: %v", err)
		return []*Inquiry{}, nil
	}

	return inquiries, nil
}

// writeAll must be called with the mutex held.
func (s *store) writeAll(ctx context.Context, inquiries []*Inquiry) error {
	raw, err := json.Marshal(inquiries)
	if err != nil {
		return fmt.Errorf("failed to serialize inquiries: %w", err)
	}

	if err := s.kv.Set(ctx, kvstore.InquiriesKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist inquiries: %w", err)
	}

	return nil
}
