package memory

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// SecurityEventRepository is an append-only in-memory security event log
type SecurityEventRepository struct {
	mu     sync.RWMutex
	events []*domain.SecurityEvent
}

// NewSecurityEventRepository creates a new in-memory security event repository
func NewSecurityEventRepository() *SecurityEventRepository {
	return &SecurityEventRepository{}
}

// Add appends a copy of event
func (r *SecurityEventRepository) Add(_ context.Context, event *domain.SecurityEvent) error {
	if event == nil {
		return errors.New("security event is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, copyEvent(event))
	return nil
}

// ListByUser returns up to limit events for userID, newest first. limit <= 0 returns all.
func (r *SecurityEventRepository) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*domain.SecurityEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.SecurityEvent, 0)
	// Appended in arrival order, so walking backwards yields newest first
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if e.UserID == nil || *e.UserID != userID {
			continue
		}
		result = append(result, copyEvent(e))
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// Len returns the number of stored events
func (r *SecurityEventRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

func copyEvent(event *domain.SecurityEvent) *domain.SecurityEvent {
	c := *event
	if event.UserID != nil {
		id := *event.UserID
		c.UserID = &id
	}
	if event.Metadata != nil {
		c.Metadata = maps.Clone(event.Metadata)
	}
	return &c
}

var _ domain.SecurityEventRepository = (*SecurityEventRepository)(nil)
