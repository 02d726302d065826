package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/observability"
	"github.com/simaogato/tradejournal-backend/internal/usecase/audit"
)

// MaxPageSize is the largest page ListTrades will return
const MaxPageSize = 200

// RecordTradeInput represents the input for recording a trade
type RecordTradeInput struct {
	UserID uuid.UUID
	Trade  domain.TradeInput
	Client domain.ClientInfo
}

// UpdateTradeInput represents a full replacement of a trade's submitted fields
type UpdateTradeInput struct {
	UserID  uuid.UUID
	TradeID uuid.UUID
	Trade   domain.TradeInput
	Client  domain.ClientInfo
}

// ListTradesInput represents one page request of a user's trades
type ListTradesInput struct {
	UserID uuid.UUID
	Range  *domain.DateRange // Optional
	Limit  int
	Offset int
}

// TradePage is one page of trades plus the total number matching the request
type TradePage struct {
	Trades     []*domain.Trade
	TotalCount int
}

// JournalService handles the write path of the trade journal
type JournalService struct {
	TradeRepo      domain.TradeRepository
	SecurityLogger *audit.SecurityLogger
	Metrics        *observability.Metrics
	Logger         *zap.Logger

	now func() time.Time
}

// NewJournalService creates a new JournalService instance
func NewJournalService(
	tradeRepo domain.TradeRepository,
	securityLogger *audit.SecurityLogger,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{
		TradeRepo:      tradeRepo,
		SecurityLogger: securityLogger,
		Metrics:        metrics,
		Logger:         logger,
		now:            time.Now,
	}
}

// RecordTrade validates and stores a trade for the user
// Logic:
//  1. Validate the raw input and derive PnL / RR (domain.NewTrade)
//  2. Save using TradeRepo.Create
//  3. Audit the creation; audit failures never fail the request
func (s *JournalService) RecordTrade(ctx context.Context, input RecordTradeInput) (*domain.Trade, error) {
	if input.UserID == uuid.Nil {
		return nil, errors.New("user id is required")
	}

	// 1. Validate
	trade, err := domain.NewTrade(input.UserID, input.Trade, s.now().UTC())
	if err != nil {
		s.Metrics.RecordTradeRejected()
		return nil, err
	}

	// 2. Save
	if err := s.TradeRepo.Create(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}
	s.Metrics.RecordTradeRecorded()
	s.Logger.Debug("trade recorded",
		zap.String("trade_id", trade.ID.String()),
		zap.String("user_id", trade.UserID.String()),
		zap.String("pair", trade.Pair),
		zap.Float64("pnl", trade.PnL),
	)

	// 3. Audit
	if s.SecurityLogger != nil {
		s.SecurityLogger.LogTradeAction(ctx, trade.UserID, domain.EventTradeCreated, trade.ID, input.Client)
	}

	return trade, nil
}

// ListTrades returns one page of the user's trades, newest first
// Logic:
//   - Limit must be in [1, MaxPageSize] and Offset non-negative
//   - TotalCount ignores paging so clients can paginate accurately
func (s *JournalService) ListTrades(ctx context.Context, input ListTradesInput) (*TradePage, error) {
	if input.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidPagination)
	}
	if input.Limit > MaxPageSize {
		return nil, fmt.Errorf("%w: limit must be at most %d", domain.ErrInvalidPagination, MaxPageSize)
	}
	if input.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", domain.ErrInvalidPagination)
	}

	filter := domain.TradeFilter{
		UserID: input.UserID,
		Range:  input.Range,
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	total, err := s.TradeRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count trades: %w", err)
	}

	trades, err := s.TradeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	return &TradePage{Trades: trades, TotalCount: total}, nil
}

// GetTrade retrieves one of the user's trades
func (s *JournalService) GetTrade(ctx context.Context, userID, id uuid.UUID) (*domain.Trade, error) {
	return s.TradeRepo.GetByID(ctx, userID, id)
}

// UpdateTrade replaces the submitted fields of one of the user's trades
// Logic:
//  1. Load the existing trade (ErrTradeNotFound for other users' trades)
//  2. Re-run full validation and derive PnL / RR from the new input
//  3. Keep ID, owner and CreatedAt; save using TradeRepo.Update
//  4. Audit the edit
func (s *JournalService) UpdateTrade(ctx context.Context, input UpdateTradeInput) (*domain.Trade, error) {
	// 1. Load
	existing, err := s.TradeRepo.GetByID(ctx, input.UserID, input.TradeID)
	if err != nil {
		if errors.Is(err, domain.ErrTradeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	// 2. Validate
	trade, err := domain.NewTrade(existing.UserID, input.Trade, existing.CreatedAt)
	if err != nil {
		s.Metrics.RecordTradeRejected()
		return nil, err
	}

	// 3. Save
	trade.ID = existing.ID
	if err := s.TradeRepo.Update(ctx, trade); err != nil {
		if errors.Is(err, domain.ErrTradeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}
	s.Metrics.RecordTradeUpdated()

	// 4. Audit
	if s.SecurityLogger != nil {
		s.SecurityLogger.LogTradeAction(ctx, trade.UserID, domain.EventTradeUpdated, trade.ID, input.Client)
	}

	return trade, nil
}

// DeleteTrade removes one of the user's trades and audits the deletion
func (s *JournalService) DeleteTrade(ctx context.Context, userID, id uuid.UUID, client domain.ClientInfo) error {
	if err := s.TradeRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrTradeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	s.Metrics.RecordTradeDeleted()

	if s.SecurityLogger != nil {
		s.SecurityLogger.LogTradeAction(ctx, userID, domain.EventTradeDeleted, id, client)
	}
	return nil
}
