package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name     string
		trades   []*domain.Trade
		expected float64
	}{
		{
			name:     "Empty input has no drawdown",
			trades:   nil,
			expected: 0,
		},
		{
			name:     "Single losing trade equals the loss magnitude",
			trades:   []*domain.Trade{trade(day(2024, 1, 1), "EUR/USD", -75, 1)},
			expected: 75,
		},
		{
			name: "Monotonic gains have no drawdown",
			trades: []*domain.Trade{
				trade(day(2024, 1, 1), "EUR/USD", 10, 1),
				trade(day(2024, 1, 2), "EUR/USD", 20, 1),
			},
			expected: 0,
		},
		{
			name: "Recovery after a trough keeps the worst decline",
			trades: []*domain.Trade{
				trade(day(2024, 1, 1), "EUR/USD", 50, 1),
				trade(day(2024, 1, 2), "EUR/USD", -80, 1),
				trade(day(2024, 1, 3), "EUR/USD", 200, 1),
				trade(day(2024, 1, 4), "EUR/USD", -20, 1),
			},
			expected: 80,
		},
		{
			name: "Trades are ordered by date before walking",
			trades: []*domain.Trade{
				trade(day(2024, 1, 3), "EUR/USD", 100, 1),
				trade(day(2024, 1, 1), "EUR/USD", -40, 1),
				trade(day(2024, 1, 2), "EUR/USD", -60, 1),
			},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MaxDrawdown(tt.trades), 1e-9)
		})
	}
}

func TestSortedByDate_TiesKeepInputOrder(t *testing.T) {
	sameDay := day(2024, 5, 1)
	first := trade(sameDay, "EUR/USD", -100, 1)
	second := trade(sameDay, "EUR/USD", 100, 1)
	earlier := trade(day(2024, 4, 1), "EUR/USD", 50, 1)
	trades := []*domain.Trade{first, second, earlier}

	ordered := sortedByDate(trades)

	require.Len(t, ordered, 3)
	assert.Same(t, earlier, ordered[0])
	assert.Same(t, first, ordered[1])
	assert.Same(t, second, ordered[2])
	assert.Same(t, first, trades[0], "input slice must not be reordered")
}

func TestMaxDrawdown_SameDayTradesWalkInInputOrder(t *testing.T) {
	sameDay := day(2024, 5, 1)

	// +200, -50, -100: peak 200, trough 50
	gainFirst := []*domain.Trade{
		trade(sameDay, "EUR/USD", 200, 1),
		trade(sameDay, "EUR/USD", -50, 1),
		trade(sameDay, "EUR/USD", -100, 1),
	}
	// -50, -100, +200: peak stays 0, trough -150
	lossFirst := []*domain.Trade{gainFirst[1], gainFirst[2], gainFirst[0]}

	assert.Equal(t, 150.0, MaxDrawdown(gainFirst))
	assert.Equal(t, 150.0, MaxDrawdown(lossFirst))

	// -100, +200, -50: peak 100 after step 2, trough 50 -> 100 vs initial 100
	mixed := []*domain.Trade{gainFirst[2], gainFirst[0], gainFirst[1]}
	assert.Equal(t, 100.0, MaxDrawdown(mixed))
}

func TestMonthlyReturns_FirstEncounterOrder(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2024, 3, 5), "EUR/USD", 10, 1),
		trade(day(2023, 12, 31), "EUR/USD", 5, 1),
		trade(day(2024, 3, 20), "EUR/USD", -2.5, 1),
		trade(day(2024, 1, 1), "EUR/USD", 7, 1),
	}

	returns := MonthlyReturns(trades)

	require.Len(t, returns, 3)
	assert.Equal(t, MonthlyReturn{Period: "2024-03", PnL: 7.5}, returns[0])
	assert.Equal(t, MonthlyReturn{Period: "2023-12", PnL: 5}, returns[1])
	assert.Equal(t, MonthlyReturn{Period: "2024-01", PnL: 7}, returns[2])
}

func TestMonthlyReturns_UsesOwnCalendarFields(t *testing.T) {
	// 23:30 on Jan 31 in UTC-5 is Feb 1 in UTC; the trade's own calendar says January
	est := time.FixedZone("EST", -5*60*60)
	trades := []*domain.Trade{
		trade(time.Date(2024, 1, 31, 23, 30, 0, 0, est), "EUR/USD", 12, 1),
	}

	returns := MonthlyReturns(trades)

	require.Len(t, returns, 1)
	assert.Equal(t, "2024-01", returns[0].Period)
}

func TestMonthlyReturns_Empty(t *testing.T) {
	returns := MonthlyReturns(nil)

	assert.NotNil(t, returns)
	assert.Empty(t, returns)
}

func TestPairBreakdowns(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2024, 1, 1), "GBP/USD", 10, 1),
		trade(day(2024, 1, 2), "EUR/USD", -4, 1),
		trade(day(2024, 1, 3), "GBP/USD", 6, 1),
		trade(day(2024, 1, 4), "gbp/usd", 1, 1),
	}

	pairs := PairBreakdowns(trades)

	require.Len(t, pairs, 3)
	assert.Equal(t, PairBreakdown{Pair: "GBP/USD", Count: 2, PnL: 16}, pairs[0])
	assert.Equal(t, PairBreakdown{Pair: "EUR/USD", Count: 1, PnL: -4}, pairs[1])
	// Exact string grouping: no case folding
	assert.Equal(t, PairBreakdown{Pair: "gbp/usd", Count: 1, PnL: 1}, pairs[2])
}

func TestPairBreakdowns_Empty(t *testing.T) {
	pairs := PairBreakdowns([]*domain.Trade{})

	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
}
