package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

func newEntry(userID uuid.UUID, created time.Time, title, content string, mood domain.Mood, tags ...string) *domain.JournalEntry {
	if tags == nil {
		tags = []string{}
	}
	return &domain.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Mood:      mood,
		Tags:      tags,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestJournalEntryRepository_CRUD(t *testing.T) {
	repo := NewJournalEntryRepository()
	ctx := context.Background()
	userID := uuid.New()
	entry := newEntry(userID, time.Now(), "Monday", "Stayed flat through the news spike", domain.MoodNeutral, "news")

	require.NoError(t, repo.Create(ctx, entry))
	assert.ErrorIs(t, repo.Create(ctx, entry), ErrDuplicateID)

	got, err := repo.GetByID(ctx, userID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, *entry, *got)

	// Returned tags are a copy
	got.Tags[0] = "changed"
	again, err := repo.GetByID(ctx, userID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"news"}, again.Tags)

	updated := *entry
	updated.Mood = domain.MoodHappy
	require.NoError(t, repo.Update(ctx, &updated))
	got, err = repo.GetByID(ctx, userID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MoodHappy, got.Mood)

	stranger := uuid.New()
	_, err = repo.GetByID(ctx, stranger, entry.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	foreign := updated
	foreign.UserID = stranger
	assert.ErrorIs(t, repo.Update(ctx, &foreign), domain.ErrEntryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, stranger, entry.ID), domain.ErrEntryNotFound)

	require.NoError(t, repo.Delete(ctx, userID, entry.ID))
	_, err = repo.GetByID(ctx, userID, entry.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestJournalEntryRepository_ListFilters(t *testing.T) {
	repo := NewJournalEntryRepository()
	ctx := context.Background()
	userID := uuid.New()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	first := newEntry(userID, base, "Overtrading", "Took six trades before lunch", domain.MoodAngry, "discipline")
	second := newEntry(userID, base.Add(time.Hour), "", "Patience paid off on GBP/USD", domain.MoodHappy, "patience", "gbp")
	third := newEntry(userID, base.Add(2*time.Hour), "Plan", "Follow the PLAN, skip overtrading", domain.MoodNone, "discipline")
	other := newEntry(uuid.New(), base, "Overtrading", "Someone else's entry", domain.MoodAngry, "discipline")
	for _, e := range []*domain.JournalEntry{first, second, third, other} {
		require.NoError(t, repo.Create(ctx, e))
	}

	tests := []struct {
		name     string
		filter   domain.EntryFilter
		expected []uuid.UUID
	}{
		{
			name:     "No criteria returns all newest first",
			filter:   domain.EntryFilter{UserID: userID},
			expected: []uuid.UUID{third.ID, second.ID, first.ID},
		},
		{
			name:     "Query matches title or content case-insensitively",
			filter:   domain.EntryFilter{UserID: userID, Query: "OVERTRADING"},
			expected: []uuid.UUID{third.ID, first.ID},
		},
		{
			name:     "Mood filter",
			filter:   domain.EntryFilter{UserID: userID, Mood: domain.MoodHappy},
			expected: []uuid.UUID{second.ID},
		},
		{
			name:     "Tag filter",
			filter:   domain.EntryFilter{UserID: userID, Tag: "discipline"},
			expected: []uuid.UUID{third.ID, first.ID},
		},
		{
			name:     "Criteria combine",
			filter:   domain.EntryFilter{UserID: userID, Tag: "discipline", Mood: domain.MoodAngry},
			expected: []uuid.UUID{first.ID},
		},
		{
			name:     "Paging",
			filter:   domain.EntryFilter{UserID: userID, Limit: 1, Offset: 1},
			expected: []uuid.UUID{second.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]uuid.UUID, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	count, err := repo.Count(ctx, domain.EntryFilter{UserID: userID, Tag: "discipline", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
