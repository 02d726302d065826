package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// securityEventRepository implements domain.SecurityEventRepository on the security_logs table
type securityEventRepository struct {
	db *DB
}

// NewSecurityEventRepository creates a new security event repository
func NewSecurityEventRepository(db *DB) domain.SecurityEventRepository {
	return &securityEventRepository{db: db}
}

// Add inserts a security event
func (r *securityEventRepository) Add(ctx context.Context, event *domain.SecurityEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if event.Metadata == nil {
		metadata = []byte("{}")
	}

	var userID interface{}
	if event.UserID != nil {
		userID = *event.UserID
	}

	query := `
		INSERT INTO security_logs (id, event_type, user_id, ip_address, user_agent, metadata, severity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		string(event.EventType),
		userID,
		event.IPAddress,
		event.UserAgent,
		string(metadata),
		string(event.Severity),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert security event: %w", err)
	}

	return nil
}

// ListByUser retrieves the newest events of a user. limit <= 0 returns all.
func (r *securityEventRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.SecurityEvent, error) {
	query := `
		SELECT id, event_type, user_id, ip_address, user_agent, metadata, severity, created_at
		FROM security_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query security events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.SecurityEvent, 0)
	for rows.Next() {
		var event domain.SecurityEvent
		var eventUserID uuid.NullUUID
		var metadata []byte

		if err := rows.Scan(
			&event.ID,
			&event.EventType,
			&eventUserID,
			&event.IPAddress,
			&event.UserAgent,
			&metadata,
			&event.Severity,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan security event: %w", err)
		}

		if eventUserID.Valid {
			id := eventUserID.UUID
			event.UserID = &id
		}
		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}

		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security events: %w", err)
	}

	return events, nil
}
