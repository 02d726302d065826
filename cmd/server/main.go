package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/tradejournal-backend/internal/adapter/grpc"
	"github.com/simaogato/tradejournal-backend/internal/adapter/repository/memory"
	"github.com/simaogato/tradejournal-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/tradejournal-backend/internal/adapter/rest"
	"github.com/simaogato/tradejournal-backend/internal/auth"
	"github.com/simaogato/tradejournal-backend/internal/config"
	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/logger"
	"github.com/simaogato/tradejournal-backend/internal/observability"
	"github.com/simaogato/tradejournal-backend/internal/usecase/audit"
	"github.com/simaogato/tradejournal-backend/internal/usecase/dashboard"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
	"github.com/simaogato/tradejournal-backend/internal/usecase/notebook"
)

func main() {
	configPath := flag.String("config", os.Getenv("TJ_CONFIG"), "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// 1. Setup metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics("tradejournal", registry)

	// 2. Initialize Repositories
	repos, closeDB := setupRepositories(ctx, cfg.DB, log)
	defer closeDB()

	// 3. Initialize Services (Use Cases)
	securityLogger := audit.NewSecurityLogger(repos.events, log, metrics)
	journalService := journal.NewJournalService(repos.trades, securityLogger, metrics, log)
	dashboardService := dashboard.NewDashboardService(repos.trades, metrics, log)
	notebookService := notebook.NewNotebookService(repos.entries, metrics, log)
	tokens := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	// 4. Start gRPC Server
	var grpcServer *grpclib.Server
	if cfg.Server.GRPCAddr != "" {
		grpcServer = grpclib.NewServer(
			grpclib.UnaryInterceptor(grpcadapter.AuthInterceptor(tokens, securityLogger.LogUnauthorizedAccess)),
		)
		grpcadapter.RegisterTradeJournalServiceServer(grpcServer, grpcadapter.NewServer(journalService, dashboardService, notebookService))
		reflection.Register(grpcServer)

		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			log.Fatal("failed to listen", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
		}

		go func() {
			log.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCAddr))
			if err := grpcServer.Serve(lis); err != nil {
				log.Fatal("failed to serve gRPC server", zap.Error(err))
			}
		}()
	}

	// 5. Start HTTP Server
	var httpServer *http.Server
	if cfg.Server.HTTPAddr != "" {
		httpServer = &http.Server{
			Addr: cfg.Server.HTTPAddr,
			Handler: rest.NewRouter(rest.RouterConfig{
				Env:           cfg.App.Env,
				Journal:       journalService,
				Dashboard:     dashboardService,
				Notebook:      notebookService,
				Authenticator: tokens,
				OnReject:      securityLogger.LogUnauthorizedAccess,
				Metrics:       metrics,
				Logger:        log,
			}),
		}

		go func() {
			log.Info("HTTP server listening", zap.String("addr", cfg.Server.HTTPAddr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("failed to serve HTTP server", zap.Error(err))
			}
		}()
	}

	// Graceful shutdown
	waitForShutdown(cfg.Server, grpcServer, httpServer, log)
}

type repositories struct {
	trades  domain.TradeRepository
	entries domain.JournalEntryRepository
	events  domain.SecurityEventRepository
}

// setupRepositories picks the in-memory store or Postgres, migrating the latter before use
func setupRepositories(ctx context.Context, cfg config.DBConfig, log *zap.Logger) (repositories, func()) {
	if cfg.UseMemory {
		log.Warn("using in-memory repositories, data will not survive a restart")
		return repositories{
			trades:  memory.NewTradeRepository(),
			entries: memory.NewJournalEntryRepository(),
			events:  memory.NewSecurityEventRepository(),
		}, func() {}
	}

	db, err := postgres.NewDB(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	log.Info("database migrations applied")

	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
	return repositories{
		trades:  postgres.NewTradeRepository(db),
		entries: postgres.NewJournalEntryRepository(db),
		events:  postgres.NewSecurityEventRepository(db),
	}, closeDB
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(cfg config.ServerConfig, grpcServer *grpclib.Server, httpServer *http.Server, log *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("shutting down gracefully", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Warn("HTTP server shutdown", zap.Error(err))
		}
		log.Info("HTTP server stopped")
	}

	if grpcServer != nil {
		done := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			grpcServer.Stop()
		}
		log.Info("gRPC server stopped")
	}
}
