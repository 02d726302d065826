package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/observability"
)

const unknownClient = "unknown"

// SecurityLogger writes security events to the audit log.
// Writes are best effort: a storage failure is logged and counted but never returned,
// so auditing can not fail the operation being audited.
type SecurityLogger struct {
	EventRepo domain.SecurityEventRepository
	Logger    *zap.Logger
	Metrics   *observability.Metrics

	now func() time.Time
}

// NewSecurityLogger creates a new SecurityLogger instance
func NewSecurityLogger(eventRepo domain.SecurityEventRepository, logger *zap.Logger, metrics *observability.Metrics) *SecurityLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityLogger{
		EventRepo: eventRepo,
		Logger:    logger,
		Metrics:   metrics,
		now:       time.Now,
	}
}

// Log stores event after stamping its ID, creation time and client fields
// Logic:
//   - Missing ID and CreatedAt are filled in
//   - Missing client fields are recorded as "unknown"
//   - On storage failure the event is written to the application log instead
func (s *SecurityLogger) Log(ctx context.Context, event domain.SecurityEvent) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now().UTC()
	}
	if event.IPAddress == "" {
		event.IPAddress = unknownClient
	}
	if event.UserAgent == "" {
		event.UserAgent = unknownClient
	}
	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if err := s.EventRepo.Add(ctx, &event); err != nil {
		s.Metrics.RecordSecurityEventDropped()
		s.Logger.Warn("failed to store security event",
			zap.Error(err),
			zap.String("event_type", string(event.EventType)),
			zap.String("severity", string(event.Severity)),
			zap.Stringp("user_id", userIDString(event.UserID)),
			zap.String("ip_address", event.IPAddress),
			zap.Any("metadata", event.Metadata),
		)
		return
	}

	s.Metrics.RecordSecurityEvent(string(event.EventType))
}

// LogTradeAction records a create or delete of tradeID by userID
func (s *SecurityLogger) LogTradeAction(ctx context.Context, userID uuid.UUID, eventType domain.SecurityEventType, tradeID uuid.UUID, client domain.ClientInfo) {
	s.Log(ctx, domain.SecurityEvent{
		EventType: eventType,
		UserID:    &userID,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Metadata:  map[string]any{"trade_id": tradeID.String()},
		Severity:  domain.SeverityLow,
	})
}

// LogUnauthorizedAccess records a rejected request from an unauthenticated caller
func (s *SecurityLogger) LogUnauthorizedAccess(ctx context.Context, reason string, client domain.ClientInfo) {
	s.Log(ctx, domain.SecurityEvent{
		EventType: domain.EventUnauthorizedAccess,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Metadata:  map[string]any{"reason": reason},
		Severity:  domain.SeverityHigh,
	})
}

func userIDString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
