//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

func TestSecurityEventRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSecurityEventRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Add(ctx, &domain.SecurityEvent{
			ID:        uuid.New(),
			EventType: domain.EventTradeCreated,
			UserID:    &userID,
			IPAddress: "192.0.2.1",
			UserAgent: "journal-web",
			Metadata:  map[string]any{"trade_id": uuid.NewString(), "seq": float64(i)},
			Severity:  domain.SeverityLow,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	// Anonymous events have a NULL user_id and no metadata
	require.NoError(t, repo.Add(ctx, &domain.SecurityEvent{
		ID:        uuid.New(),
		EventType: domain.EventUnauthorizedAccess,
		IPAddress: "unknown",
		UserAgent: "unknown",
		Severity:  domain.SeverityHigh,
		CreatedAt: base,
	}))

	events, err := repo.ListByUser(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, float64(2), events[0].Metadata["seq"])
	assert.Equal(t, float64(1), events[1].Metadata["seq"])
	require.NotNil(t, events[0].UserID)
	assert.Equal(t, userID, *events[0].UserID)
	assert.Equal(t, domain.EventTradeCreated, events[0].EventType)

	all, err := repo.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
