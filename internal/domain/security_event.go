package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecurityEventType identifies what happened
type SecurityEventType string

const (
	EventTradeCreated       SecurityEventType = "trade_created"
	EventTradeUpdated       SecurityEventType = "trade_updated"
	EventTradeDeleted       SecurityEventType = "trade_deleted"
	EventUnauthorizedAccess SecurityEventType = "unauthorized_access"
)

// Severity ranks security events
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ClientInfo describes the caller of an operation, as seen by the transport layer
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// SecurityEvent is an append-only audit record written by the write path
type SecurityEvent struct {
	ID        uuid.UUID
	EventType SecurityEventType
	UserID    *uuid.UUID // NULL for unauthenticated callers
	IPAddress string
	UserAgent string
	Metadata  map[string]any
	Severity  Severity
	CreatedAt time.Time
}
