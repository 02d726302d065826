package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// JournalEntryRepository is an in-memory implementation of domain.JournalEntryRepository
type JournalEntryRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*domain.JournalEntry
}

// NewJournalEntryRepository creates a new in-memory journal entry repository
func NewJournalEntryRepository() *JournalEntryRepository {
	return &JournalEntryRepository{
		data: make(map[uuid.UUID]*domain.JournalEntry),
	}
}

// Create stores a copy of entry. Returns ErrDuplicateID if the ID exists.
func (r *JournalEntryRepository) Create(_ context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.ID == uuid.Nil {
		return errors.New("journal entry must have an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[entry.ID]; exists {
		return ErrDuplicateID
	}

	r.data[entry.ID] = copyEntry(entry)
	return nil
}

// GetByID retrieves an entry owned by userID
func (r *JournalEntryRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.data[id]
	if !exists || e.UserID != userID {
		return nil, domain.ErrEntryNotFound
	}
	return copyEntry(e), nil
}

// List retrieves the user's entries matching the filter, newest first
func (r *JournalEntryRepository) List(_ context.Context, filter domain.EntryFilter) ([]*domain.JournalEntry, error) {
	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*domain.JournalEntry{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// Count returns the number of the user's entries matching the filter
func (r *JournalEntryRepository) Count(_ context.Context, filter domain.EntryFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.match(filter)), nil
}

// Update replaces a stored entry owned by entry.UserID
func (r *JournalEntryRepository) Update(_ context.Context, entry *domain.JournalEntry) error {
	if entry == nil {
		return errors.New("journal entry is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.data[entry.ID]
	if !exists || existing.UserID != entry.UserID {
		return domain.ErrEntryNotFound
	}

	r.data[entry.ID] = copyEntry(entry)
	return nil
}

// Delete removes an entry owned by userID
func (r *JournalEntryRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.data[id]
	if !exists || e.UserID != userID {
		return domain.ErrEntryNotFound
	}

	delete(r.data, id)
	return nil
}

// match copies the entries selected by filter; callers must hold the read lock
func (r *JournalEntryRepository) match(filter domain.EntryFilter) []*domain.JournalEntry {
	query := strings.ToLower(filter.Query)

	result := make([]*domain.JournalEntry, 0)
	for _, e := range r.data {
		if e.UserID != filter.UserID {
			continue
		}
		if filter.Mood != domain.MoodNone && e.Mood != filter.Mood {
			continue
		}
		if filter.Tag != "" && !e.HasTag(filter.Tag) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Title), query) &&
			!strings.Contains(strings.ToLower(e.Content), query) {
			continue
		}
		result = append(result, copyEntry(e))
	}
	return result
}

func copyEntry(e *domain.JournalEntry) *domain.JournalEntry {
	c := *e
	c.Tags = slices.Clone(e.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

var _ domain.JournalEntryRepository = (*JournalEntryRepository)(nil)
