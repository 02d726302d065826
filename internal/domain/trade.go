package domain

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxNotesLength is the maximum number of characters allowed in trade notes
const MaxNotesLength = 500

// Numeric trade fields must lie within [1e-30, 1e30) and carry at most maxScale fractional digits
const (
	maxMagnitude = 30
	maxScale     = 60
)

// pairPattern matches instrument identifiers such as EUR/USD
var pairPattern = regexp.MustCompile(`^[A-Z]{3}/[A-Z]{3}$`)

// ErrTradeNotFound is returned when a trade does not exist for the requesting user
var ErrTradeNotFound = errors.New("trade not found")

// Trade represents one closed trade in the domain layer.
// PnL and RR are derived once at creation time and are authoritative afterwards:
// they are never recomputed from the stored price fields.
type Trade struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Date         time.Time
	Pair         string // XXX/YYY
	EntryPrice   float64
	ExitPrice    float64
	PositionSize float64
	Risk         float64 // Planned loss in account currency
	Reward       float64 // Planned gain in account currency
	PnL          float64 // (ExitPrice - EntryPrice) * PositionSize
	RR           float64 // |Reward / Risk|
	Notes        string
	CreatedAt    time.Time
}

// TradeInput holds the raw field values of a trade as submitted by a client form.
// Numeric fields are strings so that parsing and range checks happen in one place.
type TradeInput struct {
	Date         string
	Pair         string
	EntryPrice   string
	ExitPrice    string
	PositionSize string
	Risk         string
	Reward       string
	Notes        string
}

// NewTrade validates the raw input and builds a normalized Trade owned by userID.
// Logic:
//  1. Check required fields, numeric parsing (> 0), pair format and notes length
//  2. Collect every failing field into a single ValidationError
//  3. Derive PnL = (exit - entry) * size and RR = |reward / risk| exactly once
//
// No Trade is returned when validation fails.
func NewTrade(userID uuid.UUID, input TradeInput, now time.Time) (*Trade, error) {
	verr := &ValidationError{Subject: "trade"}

	date, err := ParseTradeDate(input.Date)
	if err != nil {
		verr.Add("date", err.Error())
	}

	pair := strings.TrimSpace(input.Pair)
	switch {
	case pair == "":
		verr.Add("pair", "trading pair is required")
	case !pairPattern.MatchString(pair):
		verr.Add("pair", "invalid pair format (e.g., EUR/USD)")
	}

	entry := parsePositive(verr, "entry_price", input.EntryPrice)
	exit := parsePositive(verr, "exit_price", input.ExitPrice)
	size := parsePositive(verr, "position_size", input.PositionSize)
	risk := parsePositive(verr, "risk", input.Risk)
	reward := parsePositive(verr, "reward", input.Reward)

	if utf8.RuneCountInString(input.Notes) > MaxNotesLength {
		verr.Add("notes", "notes must be at most 500 characters")
	}

	if verr.HasErrors() {
		return nil, verr
	}

	rr, err := deriveRR(reward, risk)
	if err != nil {
		verr.Add("risk", err.Error())
		return nil, verr
	}

	pnl := derivePnL(entry, exit, size).InexactFloat64()
	rrValue := rr.InexactFloat64()
	if !isFinite(pnl) {
		verr.Add("position_size", "resulting pnl is out of range")
	}
	if !isFinite(rrValue) || rrValue <= 0 {
		verr.Add("risk", "resulting reward-to-risk ratio is out of range")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	return &Trade{
		ID:           uuid.New(),
		UserID:       userID,
		Date:         date,
		Pair:         pair,
		EntryPrice:   entry.InexactFloat64(),
		ExitPrice:    exit.InexactFloat64(),
		PositionSize: size.InexactFloat64(),
		Risk:         risk.InexactFloat64(),
		Reward:       reward.InexactFloat64(),
		PnL:          pnl,
		RR:           rrValue,
		Notes:        input.Notes,
		CreatedAt:    now,
	}, nil
}

// ParseTradeDate parses a trade date given either as a calendar date (2006-01-02)
// or as an RFC3339 timestamp
func ParseTradeDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("invalid date format (expected YYYY-MM-DD or RFC3339)")
}

// parsePositive parses a required decimal field and records a field error when it is
// missing, malformed, not strictly positive or outside the supported magnitude.
// The magnitude is checked on the exponent before any arithmetic, since decimal
// operations on extreme exponents allocate integers of that many digits.
func parsePositive(verr *ValidationError, field, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.Add(field, field+" is required")
		return decimal.Zero
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add(field, "must be a valid number")
		return decimal.Zero
	}

	if value.Sign() <= 0 {
		verr.Add(field, "must be a positive number")
		return decimal.Zero
	}

	// value lies in [10^magnitude, 10^(magnitude+1))
	exp := int(value.Exponent())
	magnitude := exp + value.NumDigits() - 1
	if exp < -maxScale || magnitude < -maxMagnitude || magnitude >= maxMagnitude {
		verr.Add(field, "must be between 1e-30 and 1e30")
		return decimal.Zero
	}

	f := value.InexactFloat64()
	if !isFinite(f) || f <= 0 {
		verr.Add(field, "must be between 1e-30 and 1e30")
		return decimal.Zero
	}

	return value
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// derivePnL computes the signed profit-and-loss of a trade
func derivePnL(entry, exit, size decimal.Decimal) decimal.Decimal {
	return exit.Sub(entry).Mul(size)
}

// deriveRR computes the reward-to-risk ratio.
// A zero risk is rejected here so that RR can never become Inf or NaN downstream.
func deriveRR(reward, risk decimal.Decimal) (decimal.Decimal, error) {
	if risk.IsZero() {
		return decimal.Zero, errors.New("risk must be non-zero")
	}
	return reward.Div(risk).Abs(), nil
}
