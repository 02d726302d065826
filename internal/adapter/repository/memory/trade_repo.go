package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// ErrDuplicateID is returned when a record with the same ID is already stored
var ErrDuplicateID = errors.New("duplicate id")

// TradeRepository is an in-memory implementation of domain.TradeRepository
type TradeRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*domain.Trade
}

// NewTradeRepository creates a new in-memory trade repository
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{
		data: make(map[uuid.UUID]*domain.Trade),
	}
}

// Create stores a copy of trade. Returns ErrDuplicateID if the ID exists.
func (r *TradeRepository) Create(_ context.Context, trade *domain.Trade) error {
	if trade == nil || trade.ID == uuid.Nil {
		return errors.New("trade must have an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[trade.ID]; exists {
		return ErrDuplicateID
	}

	stored := *trade
	r.data[trade.ID] = &stored
	return nil
}

// GetByID retrieves a trade owned by userID
func (r *TradeRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*domain.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.data[id]
	if !exists || t.UserID != userID {
		return nil, domain.ErrTradeNotFound
	}

	result := *t
	return &result, nil
}

// List retrieves the user's trades in the filter range, ordered by filter.Order
func (r *TradeRepository) List(_ context.Context, filter domain.TradeFilter) ([]*domain.Trade, error) {
	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	oldestFirst := filter.Order == domain.OldestFirst
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date) == oldestFirst
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt) == oldestFirst
		}
		return a.ID.String() < b.ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*domain.Trade{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// Count returns the number of the user's trades in the filter range
func (r *TradeRepository) Count(_ context.Context, filter domain.TradeFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.match(filter)), nil
}

// Update replaces a stored trade owned by trade.UserID
func (r *TradeRepository) Update(_ context.Context, trade *domain.Trade) error {
	if trade == nil {
		return errors.New("trade is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.data[trade.ID]
	if !exists || existing.UserID != trade.UserID {
		return domain.ErrTradeNotFound
	}

	stored := *trade
	r.data[trade.ID] = &stored
	return nil
}

// Delete removes a trade owned by userID
func (r *TradeRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.data[id]
	if !exists || t.UserID != userID {
		return domain.ErrTradeNotFound
	}

	delete(r.data, id)
	return nil
}

// match copies the trades selected by filter; callers must hold the read lock
func (r *TradeRepository) match(filter domain.TradeFilter) []*domain.Trade {
	result := make([]*domain.Trade, 0)
	for _, t := range r.data {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Range != nil && !filter.Range.Contains(t.Date) {
			continue
		}
		c := *t
		result = append(result, &c)
	}
	return result
}

var _ domain.TradeRepository = (*TradeRepository)(nil)
