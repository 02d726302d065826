package notebook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/observability"
)

// MaxPageSize is the largest page ListEntries will return
const MaxPageSize = 200

// CreateEntryInput represents the input for writing a journal entry
type CreateEntryInput struct {
	UserID uuid.UUID
	Entry  domain.EntryInput
}

// UpdateEntryInput represents a partial edit of a journal entry
type UpdateEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
	Update  domain.EntryUpdate
}

// ListEntriesInput represents one page of a user's entries, optionally narrowed by
// a text search, a mood and a tag
type ListEntriesInput struct {
	UserID uuid.UUID
	Query  string
	Mood   string
	Tag    string
	Limit  int
	Offset int
}

// EntryPage is one page of entries plus the total number matching the request
type EntryPage struct {
	Entries    []*domain.JournalEntry
	TotalCount int
}

// NotebookService manages the free-form journal entries of a trader
type NotebookService struct {
	EntryRepo domain.JournalEntryRepository
	Metrics   *observability.Metrics
	Logger    *zap.Logger

	now func() time.Time
}

// NewNotebookService creates a new NotebookService instance
func NewNotebookService(
	entryRepo domain.JournalEntryRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NotebookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotebookService{
		EntryRepo: entryRepo,
		Metrics:   metrics,
		Logger:    logger,
		now:       time.Now,
	}
}

// CreateEntry validates and stores a new entry for the user
func (s *NotebookService) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.JournalEntry, error) {
	if input.UserID == uuid.Nil {
		return nil, errors.New("user id is required")
	}

	entry, err := domain.NewJournalEntry(input.UserID, input.Entry, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.EntryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	s.Metrics.RecordEntryWrite("create")
	s.Logger.Debug("journal entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("user_id", entry.UserID.String()),
	)

	return entry, nil
}

// GetEntry retrieves one of the user's entries
func (s *NotebookService) GetEntry(ctx context.Context, userID, id uuid.UUID) (*domain.JournalEntry, error) {
	return s.EntryRepo.GetByID(ctx, userID, id)
}

// UpdateEntry applies a partial edit to one of the user's entries
// Logic:
//  1. Load the entry (ErrEntryNotFound for other users' entries)
//  2. Merge the provided fields and re-validate the whole entry
//  3. Save with a fresh UpdatedAt; ID and CreatedAt never change
func (s *NotebookService) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.JournalEntry, error) {
	// 1. Load
	existing, err := s.EntryRepo.GetByID(ctx, input.UserID, input.EntryID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	// 2. Merge and validate
	updated, err := existing.Apply(input.Update, s.now().UTC())
	if err != nil {
		return nil, err
	}

	// 3. Save
	if err := s.EntryRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	s.Metrics.RecordEntryWrite("update")

	return updated, nil
}

// DeleteEntry removes one of the user's entries
func (s *NotebookService) DeleteEntry(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.EntryRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	s.Metrics.RecordEntryWrite("delete")
	return nil
}

// ListEntries returns one page of the user's entries, newest first
// Logic:
//   - Limit must be in [1, MaxPageSize] and Offset non-negative
//   - Query matches title or content case-insensitively; Mood must be a known mood; Tag is exact
//   - All given criteria must hold at once
func (s *NotebookService) ListEntries(ctx context.Context, input ListEntriesInput) (*EntryPage, error) {
	if input.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidPagination)
	}
	if input.Limit > MaxPageSize {
		return nil, fmt.Errorf("%w: limit must be at most %d", domain.ErrInvalidPagination, MaxPageSize)
	}
	if input.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", domain.ErrInvalidPagination)
	}

	mood := domain.Mood(strings.ToLower(strings.TrimSpace(input.Mood)))
	if !mood.Valid() {
		verr := &domain.ValidationError{Subject: "entry filter"}
		verr.Add("mood", "mood must be one of happy, neutral, sad, angry, anxious")
		return nil, verr
	}

	filter := domain.EntryFilter{
		UserID: input.UserID,
		Query:  strings.TrimSpace(input.Query),
		Mood:   mood,
		Tag:    strings.TrimSpace(input.Tag),
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	total, err := s.EntryRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count journal entries: %w", err)
	}

	entries, err := s.EntryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	return &EntryPage{Entries: entries, TotalCount: total}, nil
}
