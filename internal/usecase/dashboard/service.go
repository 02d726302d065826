package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/observability"
	"github.com/simaogato/tradejournal-backend/internal/usecase/analytics"
)

// DashboardService handles the analytics read path
type DashboardService struct {
	TradeRepo domain.TradeRepository
	Metrics   *observability.Metrics
	Logger    *zap.Logger

	now func() time.Time
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	tradeRepo domain.TradeRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		TradeRepo: tradeRepo,
		Metrics:   metrics,
		Logger:    logger,
		now:       time.Now,
	}
}

// GetAnalytics computes the performance snapshot of a user's trades
// Logic:
//  1. Fetch every trade of the user inside rng (nil rng means all trades), oldest first;
//     storage does the filtering, and same-day trades arrive in creation order
//  2. Compute the snapshot over exactly that collection
//
// A storage failure is returned as-is and no partial snapshot is built.
func (s *DashboardService) GetAnalytics(ctx context.Context, userID uuid.UUID, rng *domain.DateRange) (*analytics.Snapshot, error) {
	start := s.now()

	// 1. Fetch trades
	trades, err := s.TradeRepo.List(ctx, domain.TradeFilter{
		UserID: userID,
		Range:  rng,
		Order:  domain.OldestFirst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	// 2. Compute
	snapshot := analytics.ComputeSnapshot(trades, rng)

	elapsed := s.now().Sub(start)
	s.Metrics.RecordSnapshot(len(trades), elapsed)
	s.Logger.Debug("analytics snapshot computed",
		zap.String("user_id", userID.String()),
		zap.Int("trades", len(trades)),
		zap.Duration("elapsed", elapsed),
	)

	return &snapshot, nil
}
