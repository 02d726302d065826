package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidPagination is returned when a page request has a non-positive or oversized limit,
// or a negative offset
var ErrInvalidPagination = errors.New("invalid pagination")

// SortOrder selects the direction trades are listed in
type SortOrder int

const (
	// NewestFirst orders by date, then creation time, both descending
	NewestFirst SortOrder = iota
	// OldestFirst orders by date, then creation time, both ascending
	OldestFirst
)

// TradeFilter scopes trade queries to one user and optionally to a date range
type TradeFilter struct {
	UserID uuid.UUID
	Range  *DateRange // nil means no date bounds
	Order  SortOrder
	Limit  int // 0 means no limit
	Offset int
}

// TradeRepository defines the interface for trade persistence operations
type TradeRepository interface {
	// Create stores a new trade
	Create(ctx context.Context, trade *Trade) error

	// GetByID retrieves a trade owned by userID
	// Returns ErrTradeNotFound if it does not exist for that user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Trade, error)

	// List retrieves the trades matching the filter in filter.Order; ties break on ID
	List(ctx context.Context, filter TradeFilter) ([]*Trade, error)

	// Count returns the number of trades matching the filter (Limit and Offset are ignored)
	Count(ctx context.Context, filter TradeFilter) (int, error)

	// Update replaces the stored fields of an existing trade owned by trade.UserID
	// Returns ErrTradeNotFound if it does not exist for that user
	Update(ctx context.Context, trade *Trade) error

	// Delete removes a trade owned by userID
	// Returns ErrTradeNotFound if it does not exist for that user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// EntryFilter scopes journal entry queries to one user. Empty criteria match everything.
type EntryFilter struct {
	UserID uuid.UUID
	Query  string // case-insensitive substring of title or content
	Mood   Mood
	Tag    string // exact tag membership
	Limit  int    // 0 means no limit
	Offset int
}

// JournalEntryRepository defines the interface for journal entry persistence operations
type JournalEntryRepository interface {
	// Create stores a new entry
	Create(ctx context.Context, entry *JournalEntry) error

	// GetByID retrieves an entry owned by userID
	// Returns ErrEntryNotFound if it does not exist for that user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*JournalEntry, error)

	// List retrieves the entries matching the filter, newest first
	List(ctx context.Context, filter EntryFilter) ([]*JournalEntry, error)

	// Count returns the number of entries matching the filter (Limit and Offset are ignored)
	Count(ctx context.Context, filter EntryFilter) (int, error)

	// Update replaces the stored fields of an existing entry owned by entry.UserID
	// Returns ErrEntryNotFound if it does not exist for that user
	Update(ctx context.Context, entry *JournalEntry) error

	// Delete removes an entry owned by userID
	// Returns ErrEntryNotFound if it does not exist for that user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SecurityEventRepository defines the interface for security event persistence operations
type SecurityEventRepository interface {
	// Add appends a security event
	Add(ctx context.Context, event *SecurityEvent) error

	// ListByUser retrieves the most recent events for a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*SecurityEvent, error)
}
