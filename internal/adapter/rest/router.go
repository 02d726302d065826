// Package rest exposes the journal, notebook and analytics use cases over HTTP with gin.
package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/observability"
	"github.com/simaogato/tradejournal-backend/internal/usecase/dashboard"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
	"github.com/simaogato/tradejournal-backend/internal/usecase/notebook"
)

// RouterConfig holds the dependencies of the HTTP API
type RouterConfig struct {
	Env           string
	Journal       *journal.JournalService
	Dashboard     *dashboard.DashboardService
	Notebook      *notebook.NotebookService
	Authenticator TokenAuthenticator
	OnReject      RejectFunc
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// NewRouter builds the gin engine: open infra endpoints plus the bearer-protected /api/v1 group
func NewRouter(cfg RouterConfig) *gin.Engine {
	if strings.EqualFold(cfg.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	api := engine.Group("/api/v1", RequireBearer(cfg.Authenticator, cfg.OnReject))

	trades := &TradeHandler{Journal: cfg.Journal, Logger: logger}
	trades.Register(api)
	analyticsHandler := &AnalyticsHandler{Dashboard: cfg.Dashboard, Logger: logger}
	analyticsHandler.Register(api)
	entries := &EntryHandler{Notebook: cfg.Notebook, Logger: logger}
	entries.Register(api)

	return engine
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
