package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
)

const defaultPageSize = 50

type TradeHandler struct {
	Journal *journal.JournalService
	Logger  *zap.Logger
}

func (h *TradeHandler) Register(g *gin.RouterGroup) {
	g.POST("/trades", h.create)
	g.GET("/trades", h.list)
	g.GET("/trades/:id", h.get)
	g.PUT("/trades/:id", h.update)
	g.DELETE("/trades/:id", h.delete)
}

type tradeRequest struct {
	Date         flexString `json:"date"`
	Pair         flexString `json:"pair"`
	EntryPrice   flexString `json:"entry_price"`
	ExitPrice    flexString `json:"exit_price"`
	PositionSize flexString `json:"position_size"`
	Risk         flexString `json:"risk"`
	Reward       flexString `json:"reward"`
	Notes        flexString `json:"notes"`
}

type tradeResponse struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Pair         string    `json:"pair"`
	EntryPrice   float64   `json:"entry_price"`
	ExitPrice    float64   `json:"exit_price"`
	PositionSize float64   `json:"position_size"`
	Risk         float64   `json:"risk"`
	Reward       float64   `json:"reward"`
	PnL          float64   `json:"pnl"`
	RR           float64   `json:"rr"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r tradeRequest) toInput() domain.TradeInput {
	return domain.TradeInput{
		Date:         string(r.Date),
		Pair:         string(r.Pair),
		EntryPrice:   string(r.EntryPrice),
		ExitPrice:    string(r.ExitPrice),
		PositionSize: string(r.PositionSize),
		Risk:         string(r.Risk),
		Reward:       string(r.Reward),
		Notes:        string(r.Notes),
	}
}

func toTradeResponse(t *domain.Trade) tradeResponse {
	return tradeResponse{
		ID:           t.ID.String(),
		Date:         t.Date.Format(time.RFC3339),
		Pair:         t.Pair,
		EntryPrice:   t.EntryPrice,
		ExitPrice:    t.ExitPrice,
		PositionSize: t.PositionSize,
		Risk:         t.Risk,
		Reward:       t.Reward,
		PnL:          t.PnL,
		RR:           t.RR,
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
	}
}

func (h *TradeHandler) create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	trade, err := h.Journal.RecordTrade(c.Request.Context(), journal.RecordTradeInput{
		UserID: userID,
		Trade:  req.toInput(),
		Client: clientInfo(c),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Created(c, toTradeResponse(trade))
}

func (h *TradeHandler) list(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rng, err := domain.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	limit, err := intQuery(c, "limit", defaultPageSize)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid limit", nil)
		return
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid offset", nil)
		return
	}

	page, err := h.Journal.ListTrades(c.Request.Context(), journal.ListTradesInput{
		UserID: userID,
		Range:  rng,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	items := make([]tradeResponse, 0, len(page.Trades))
	for _, t := range page.Trades {
		items = append(items, toTradeResponse(t))
	}

	Ok(c, items, map[string]any{
		"total":  page.TotalCount,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *TradeHandler) get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	trade, err := h.Journal.GetTrade(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Ok(c, toTradeResponse(trade), nil)
}

// update replaces every field of a trade; the body has the same shape as create
func (h *TradeHandler) update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	trade, err := h.Journal.UpdateTrade(c.Request.Context(), journal.UpdateTradeInput{
		UserID:  userID,
		TradeID: id,
		Trade:   req.toInput(),
		Client:  clientInfo(c),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Ok(c, toTradeResponse(trade), nil)
}

func (h *TradeHandler) delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	if err := h.Journal.DeleteTrade(c.Request.Context(), userID, id, clientInfo(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Ok(c, gin.H{"id": id.String(), "deleted": true}, nil)
}

// intQuery reads an optional integer query parameter; malformed values are an error
func intQuery(c *gin.Context, key string, def int) (int, error) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return def, nil
	}
	return strconv.Atoi(val)
}
