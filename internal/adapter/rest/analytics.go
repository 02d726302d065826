package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/analytics"
	"github.com/simaogato/tradejournal-backend/internal/usecase/dashboard"
)

type AnalyticsHandler struct {
	Dashboard *dashboard.DashboardService
	Logger    *zap.Logger
}

func (h *AnalyticsHandler) Register(g *gin.RouterGroup) {
	g.GET("/analytics", h.get)
}

type monthlyReturnResponse struct {
	Period string    `json:"period"`
	PnL    jsonFloat `json:"pnl"`
}

type pairResponse struct {
	Pair  string    `json:"pair"`
	Count int       `json:"count"`
	PnL   jsonFloat `json:"pnl"`
}

type rangeResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type snapshotResponse struct {
	TotalTrades    int                     `json:"total_trades"`
	WinRate        jsonFloat               `json:"win_rate"`
	TotalPnL       jsonFloat               `json:"total_pnl"`
	AverageWin     jsonFloat               `json:"average_win"`
	AverageLoss    jsonFloat               `json:"average_loss"`
	ProfitFactor   jsonFloat               `json:"profit_factor"`
	MaxDrawdown    jsonFloat               `json:"max_drawdown"`
	BestTrade      jsonFloat               `json:"best_trade"`
	WorstTrade     jsonFloat               `json:"worst_trade"`
	ActiveDays     int                     `json:"active_days"`
	AverageRR      jsonFloat               `json:"average_rr"`
	SharpeRatio    jsonFloat               `json:"sharpe_ratio"`
	MonthlyReturns []monthlyReturnResponse `json:"monthly_returns"`
	TradingPairs   []pairResponse          `json:"trading_pairs"`
	Range          *rangeResponse          `json:"range,omitempty"`
}

func toSnapshotResponse(s *analytics.Snapshot) snapshotResponse {
	monthly := make([]monthlyReturnResponse, 0, len(s.MonthlyReturns))
	for _, m := range s.MonthlyReturns {
		monthly = append(monthly, monthlyReturnResponse{Period: m.Period, PnL: jsonFloat(m.PnL)})
	}
	pairs := make([]pairResponse, 0, len(s.TradingPairs))
	for _, p := range s.TradingPairs {
		pairs = append(pairs, pairResponse{Pair: p.Pair, Count: p.Count, PnL: jsonFloat(p.PnL)})
	}

	resp := snapshotResponse{
		TotalTrades:    s.TotalTrades,
		WinRate:        jsonFloat(s.WinRate),
		TotalPnL:       jsonFloat(s.TotalPnL),
		AverageWin:     jsonFloat(s.AverageWin),
		AverageLoss:    jsonFloat(s.AverageLoss),
		ProfitFactor:   jsonFloat(s.ProfitFactor),
		MaxDrawdown:    jsonFloat(s.MaxDrawdown),
		BestTrade:      jsonFloat(s.BestTrade),
		WorstTrade:     jsonFloat(s.WorstTrade),
		ActiveDays:     s.ActiveDays,
		AverageRR:      jsonFloat(s.AverageRR),
		SharpeRatio:    jsonFloat(s.SharpeRatio),
		MonthlyReturns: monthly,
		TradingPairs:   pairs,
	}
	if s.Range != nil {
		resp.Range = &rangeResponse{From: s.Range.From, To: s.Range.To}
	}
	return resp
}

func (h *AnalyticsHandler) get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rng, err := domain.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	snapshot, err := h.Dashboard.GetAnalytics(c.Request.Context(), userID, rng)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Ok(c, toSnapshotResponse(snapshot), nil)
}
