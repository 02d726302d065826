package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

const tradeColumns = `id, user_id, date, pair, entry_price, exit_price, position_size, risk, reward, pnl, rr, notes, created_at`

// tradeRepository implements domain.TradeRepository.
// Trade dates are stored as TIMESTAMP (no zone) so the calendar fields a trade was
// submitted with survive the round trip.
type tradeRepository struct {
	db *DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *DB) domain.TradeRepository {
	return &tradeRepository{db: db}
}

// Create inserts a new trade
func (r *tradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	query := `
		INSERT INTO trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID,
		trade.UserID,
		trade.Date,
		trade.Pair,
		trade.EntryPrice,
		trade.ExitPrice,
		trade.PositionSize,
		trade.Risk,
		trade.Reward,
		trade.PnL,
		trade.RR,
		trade.Notes,
		trade.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	return nil
}

// GetByID retrieves a trade owned by userID
func (r *tradeRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE id = $1 AND user_id = $2
	`

	trade, err := scanTrade(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to get trade by ID: %w", err)
	}

	return trade, nil
}

// List retrieves the trades matching the filter in filter.Order
func (r *tradeRepository) List(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, error) {
	where, args := tradeWhere(filter)

	orderBy := ` ORDER BY date DESC, created_at DESC, id`
	if filter.Order == domain.OldestFirst {
		orderBy = ` ORDER BY date ASC, created_at ASC, id`
	}

	query := `SELECT ` + tradeColumns + ` FROM trades ` + where + orderBy
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// Count returns the number of trades matching the filter
func (r *tradeRepository) Count(ctx context.Context, filter domain.TradeFilter) (int, error) {
	where, args := tradeWhere(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}

	return count, nil
}

// Update overwrites the mutable fields of a trade owned by trade.UserID.
// ID, user and created_at are never changed.
func (r *tradeRepository) Update(ctx context.Context, trade *domain.Trade) error {
	query := `
		UPDATE trades
		SET date = $3, pair = $4, entry_price = $5, exit_price = $6, position_size = $7,
		    risk = $8, reward = $9, pnl = $10, rr = $11, notes = $12
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		trade.ID,
		trade.UserID,
		trade.Date,
		trade.Pair,
		trade.EntryPrice,
		trade.ExitPrice,
		trade.PositionSize,
		trade.Risk,
		trade.Reward,
		trade.PnL,
		trade.RR,
		trade.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrTradeNotFound
	}

	return nil
}

// Delete removes a trade owned by userID
func (r *tradeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrTradeNotFound
	}

	return nil
}

// tradeWhere builds the WHERE clause shared by List and Count
func tradeWhere(filter domain.TradeFilter) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{filter.UserID}

	if filter.Range != nil {
		args = append(args, filter.Range.From, filter.Range.To)
		conditions = append(conditions, fmt.Sprintf("date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (*domain.Trade, error) {
	var trade domain.Trade
	err := row.Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Date,
		&trade.Pair,
		&trade.EntryPrice,
		&trade.ExitPrice,
		&trade.PositionSize,
		&trade.Risk,
		&trade.Reward,
		&trade.PnL,
		&trade.RR,
		&trade.Notes,
		&trade.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &trade, nil
}
