package grpc

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/tradejournal-backend/internal/auth"
	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/analytics"
	"github.com/simaogato/tradejournal-backend/internal/usecase/dashboard"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
	"github.com/simaogato/tradejournal-backend/internal/usecase/notebook"
)

// Server implements the TradeJournalService gRPC server
type Server struct {
	JournalService   *journal.JournalService
	DashboardService *dashboard.DashboardService
	NotebookService  *notebook.NotebookService
}

// NewServer creates a new gRPC server instance
func NewServer(
	journalService *journal.JournalService,
	dashboardService *dashboard.DashboardService,
	notebookService *notebook.NotebookService,
) *Server {
	return &Server{
		JournalService:   journalService,
		DashboardService: dashboardService,
		NotebookService:  notebookService,
	}
}

var _ TradeJournalServiceServer = (*Server)(nil)

// RecordTrade handles the RecordTrade RPC
func (s *Server) RecordTrade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	input := journal.RecordTradeInput{
		UserID: userID,
		Trade:  tradeInput(req),
		Client: clientInfo(ctx),
	}

	trade, err := s.JournalService.RecordTrade(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"trade": tradeToMap(trade)})
}

// ListTrades handles the ListTrades RPC
func (s *Server) ListTrades(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	rng, err := domain.ParseDateRange(stringField(req, "from"), stringField(req, "to"))
	if err != nil {
		return nil, mapError(err)
	}

	limit, err := intField(req, "limit")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid limit: %v", err)
	}
	offset, err := intField(req, "offset")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid offset: %v", err)
	}

	page, err := s.JournalService.ListTrades(ctx, journal.ListTradesInput{
		UserID: userID,
		Range:  rng,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, mapError(err)
	}

	trades := make([]any, 0, len(page.Trades))
	for _, trade := range page.Trades {
		trades = append(trades, tradeToMap(trade))
	}

	return newStruct(map[string]any{
		"trades":      trades,
		"total_count": page.TotalCount,
	})
}

// GetTrade handles the GetTrade RPC
func (s *Server) GetTrade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(stringField(req, "id"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	trade, err := s.JournalService.GetTrade(ctx, userID, id)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"trade": tradeToMap(trade)})
}

// UpdateTrade handles the UpdateTrade RPC; every trade field is replaced
func (s *Server) UpdateTrade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(stringField(req, "id"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	trade, err := s.JournalService.UpdateTrade(ctx, journal.UpdateTradeInput{
		UserID:  userID,
		TradeID: id,
		Trade:   tradeInput(req),
		Client:  clientInfo(ctx),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"trade": tradeToMap(trade)})
}

// DeleteTrade handles the DeleteTrade RPC
func (s *Server) DeleteTrade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(stringField(req, "id"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	if err := s.JournalService.DeleteTrade(ctx, userID, id, clientInfo(ctx)); err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"id": id.String(), "deleted": true})
}

// GetAnalytics handles the GetAnalytics RPC
func (s *Server) GetAnalytics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	rng, err := domain.ParseDateRange(stringField(req, "from"), stringField(req, "to"))
	if err != nil {
		return nil, mapError(err)
	}

	snapshot, err := s.DashboardService.GetAnalytics(ctx, userID, rng)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"analytics": snapshotToMap(snapshot)})
}

func requireUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing user")
	}
	return userID, nil
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// stringField reads a field as text; numbers are formatted without loss
func stringField(req *structpb.Struct, key string) string {
	v, ok := req.GetFields()[key]
	if !ok {
		return ""
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
	default:
		return ""
	}
}

// intField reads an optional integer field given as a number or a numeric string
func intField(req *structpb.Struct, key string) (int, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != float64(int(n)) {
			return 0, errors.New("must be an integer")
		}
		return int(n), nil
	case *structpb.Value_StringValue:
		return strconv.Atoi(kind.StringValue)
	default:
		return 0, errors.New("must be a number")
	}
}

// tradeInput reads the trade fields of a request.
// Numeric fields may arrive as strings or numbers; validation parses them either way.
func tradeInput(req *structpb.Struct) domain.TradeInput {
	return domain.TradeInput{
		Date:         stringField(req, "date"),
		Pair:         stringField(req, "pair"),
		EntryPrice:   stringField(req, "entry_price"),
		ExitPrice:    stringField(req, "exit_price"),
		PositionSize: stringField(req, "position_size"),
		Risk:         stringField(req, "risk"),
		Reward:       stringField(req, "reward"),
		Notes:        stringField(req, "notes"),
	}
}

func tradeToMap(trade *domain.Trade) map[string]any {
	return map[string]any{
		"id":            trade.ID.String(),
		"user_id":       trade.UserID.String(),
		"date":          trade.Date.Format(time.RFC3339),
		"pair":          trade.Pair,
		"entry_price":   trade.EntryPrice,
		"exit_price":    trade.ExitPrice,
		"position_size": trade.PositionSize,
		"risk":          trade.Risk,
		"reward":        trade.Reward,
		"pnl":           trade.PnL,
		"rr":            trade.RR,
		"notes":         trade.Notes,
		"created_at":    trade.CreatedAt.Format(time.RFC3339Nano),
	}
}

// snapshotToMap encodes a snapshot; profit_factor may be +Inf, which the binary wire format carries as-is
func snapshotToMap(snapshot *analytics.Snapshot) map[string]any {
	monthly := make([]any, 0, len(snapshot.MonthlyReturns))
	for _, m := range snapshot.MonthlyReturns {
		monthly = append(monthly, map[string]any{"period": m.Period, "pnl": m.PnL})
	}

	pairs := make([]any, 0, len(snapshot.TradingPairs))
	for _, p := range snapshot.TradingPairs {
		pairs = append(pairs, map[string]any{"pair": p.Pair, "count": p.Count, "pnl": p.PnL})
	}

	out := map[string]any{
		"total_trades":    snapshot.TotalTrades,
		"win_rate":        snapshot.WinRate,
		"total_pnl":       snapshot.TotalPnL,
		"average_win":     snapshot.AverageWin,
		"average_loss":    snapshot.AverageLoss,
		"profit_factor":   snapshot.ProfitFactor,
		"max_drawdown":    snapshot.MaxDrawdown,
		"best_trade":      snapshot.BestTrade,
		"worst_trade":     snapshot.WorstTrade,
		"active_days":     snapshot.ActiveDays,
		"average_rr":      snapshot.AverageRR,
		"sharpe_ratio":    snapshot.SharpeRatio,
		"monthly_returns": monthly,
		"trading_pairs":   pairs,
	}
	if snapshot.Range != nil {
		out["range"] = map[string]any{
			"from": snapshot.Range.From.Format(time.RFC3339Nano),
			"to":   snapshot.Range.To.Format(time.RFC3339Nano),
		}
	}
	return out
}

// mapError maps domain and usecase errors to gRPC status codes.
// Validation failures carry a BadRequest detail listing every offending field.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		st := status.New(codes.InvalidArgument, verr.Error())
		violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field:       f.Field,
				Description: f.Message,
			})
		}
		if detailed, detailErr := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations}); detailErr == nil {
			return detailed.Err()
		}
		return st.Err()
	}

	switch {
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrInvalidPagination):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrTradeNotFound), errors.Is(err, domain.ErrEntryNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
