package dashboard

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/adapter/repository/memory"
	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/observability"
)

// MockTradeRepository is a mock implementation of TradeRepository for testing
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Trade, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) List(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) Count(ctx context.Context, filter domain.TradeFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockTradeRepository) Update(ctx context.Context, trade *domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func TestGetAnalytics_StandardFlow(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTradeRepository)
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	service := NewDashboardService(mockRepo, metrics, zap.NewNop())

	userID := uuid.New()
	rng, err := domain.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	trades := []*domain.Trade{
		{UserID: userID, Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Pair: "EUR/USD", PnL: 80, RR: 2},
		{UserID: userID, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Pair: "EUR/USD", PnL: -150, RR: 1},
		{UserID: userID, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Pair: "EUR/USD", PnL: 100, RR: 2},
	}
	mockRepo.On("List", ctx, domain.TradeFilter{UserID: userID, Range: rng, Order: domain.OldestFirst}).Return(trades, nil)

	snapshot, err := service.GetAnalytics(ctx, userID, rng)

	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.TotalTrades)
	assert.InDelta(t, 30.0, snapshot.TotalPnL, 1e-9)
	assert.InDelta(t, 150.0, snapshot.MaxDrawdown, 1e-9)
	require.NotNil(t, snapshot.Range)
	assert.Equal(t, *rng, *snapshot.Range)
	mockRepo.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SnapshotsComputed))
}

func TestGetAnalytics_NoTrades(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTradeRepository)
	service := NewDashboardService(mockRepo, nil, nil)
	userID := uuid.New()

	mockRepo.On("List", ctx, domain.TradeFilter{UserID: userID, Order: domain.OldestFirst}).Return([]*domain.Trade{}, nil)

	snapshot, err := service.GetAnalytics(ctx, userID, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.TotalTrades)
	assert.False(t, math.IsInf(snapshot.ProfitFactor, 0))
	assert.Empty(t, snapshot.MonthlyReturns)
	assert.Nil(t, snapshot.Range)
}

func TestGetAnalytics_StorageFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTradeRepository)
	service := NewDashboardService(mockRepo, nil, nil)
	userID := uuid.New()
	storageErr := errors.New("connection reset")

	mockRepo.On("List", ctx, mock.Anything).Return(nil, storageErr)

	snapshot, err := service.GetAnalytics(ctx, userID, nil)

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, storageErr)
}

func TestGetAnalytics_SameDayTradesWalkInCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTradeRepository()
	service := NewDashboardService(repo, nil, nil)
	userID := uuid.New()
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	created := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	// Day 2 records a loss and then a win: -50, -100, +50 reaches a trough of -150
	for i, tr := range []struct {
		date time.Time
		pnl  float64
	}{
		{date: day1, pnl: -50},
		{date: day2, pnl: -100},
		{date: day2, pnl: 50},
	} {
		require.NoError(t, repo.Create(ctx, &domain.Trade{
			ID:        uuid.New(),
			UserID:    userID,
			Date:      tr.date,
			Pair:      "EUR/USD",
			PnL:       tr.pnl,
			RR:        1,
			CreatedAt: created.Add(time.Duration(i) * time.Minute),
		}))
	}

	snapshot, err := service.GetAnalytics(ctx, userID, nil)

	require.NoError(t, err)
	assert.InDelta(t, 150.0, snapshot.MaxDrawdown, 1e-9)
}
