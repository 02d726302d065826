package analytics

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func trade(date time.Time, pair string, pnl, rr float64) *domain.Trade {
	return &domain.Trade{Date: date, Pair: pair, PnL: pnl, RR: rr}
}

func TestComputeSnapshot_EmptyInput(t *testing.T) {
	snapshot := ComputeSnapshot([]*domain.Trade{}, nil)

	assert.Equal(t, 0, snapshot.TotalTrades)
	assert.Equal(t, 0.0, snapshot.WinRate)
	assert.Equal(t, 0.0, snapshot.TotalPnL)
	assert.Equal(t, 0.0, snapshot.AverageWin)
	assert.Equal(t, 0.0, snapshot.AverageLoss)
	assert.Equal(t, 0.0, snapshot.ProfitFactor)
	assert.Equal(t, 0.0, snapshot.MaxDrawdown)
	assert.Equal(t, 0.0, snapshot.BestTrade)
	assert.Equal(t, 0.0, snapshot.WorstTrade)
	assert.Equal(t, 0, snapshot.ActiveDays)
	assert.Equal(t, 0.0, snapshot.AverageRR)
	assert.Equal(t, 0.0, snapshot.SharpeRatio)
	assert.NotNil(t, snapshot.MonthlyReturns)
	assert.Empty(t, snapshot.MonthlyReturns)
	assert.NotNil(t, snapshot.TradingPairs)
	assert.Empty(t, snapshot.TradingPairs)
	assert.Nil(t, snapshot.Range)
}

func TestComputeSnapshot_ScenarioA(t *testing.T) {
	// Peak 100 on day 1, trough -50 on day 2 -> drawdown 150
	// Input deliberately out of date order
	trades := []*domain.Trade{
		trade(day(2024, 1, 3), "EUR/USD", 80, 2),
		trade(day(2024, 1, 1), "EUR/USD", 100, 2),
		trade(day(2024, 1, 2), "GBP/USD", -150, 1),
	}

	snapshot := ComputeSnapshot(trades, nil)

	assert.Equal(t, 3, snapshot.TotalTrades)
	assert.InDelta(t, 30.0, snapshot.TotalPnL, 1e-9)
	assert.InDelta(t, 150.0, snapshot.MaxDrawdown, 1e-9)
	assert.Equal(t, 100.0, snapshot.BestTrade)
	assert.Equal(t, -150.0, snapshot.WorstTrade)
	assert.InDelta(t, 200.0/3.0, snapshot.WinRate, 1e-9)
	assert.InDelta(t, 90.0, snapshot.AverageWin, 1e-9)
	assert.InDelta(t, 150.0, snapshot.AverageLoss, 1e-9)
	assert.InDelta(t, 180.0/150.0, snapshot.ProfitFactor, 1e-9)
	assert.Equal(t, 3, snapshot.ActiveDays)
	assert.InDelta(t, 5.0/3.0, snapshot.AverageRR, 1e-9)

	// One month only -> sample stddev is 0 -> Sharpe is 0
	require.Len(t, snapshot.MonthlyReturns, 1)
	assert.Equal(t, "2024-01", snapshot.MonthlyReturns[0].Period)
	assert.InDelta(t, 30.0, snapshot.MonthlyReturns[0].PnL, 1e-9)
	assert.Equal(t, 0.0, snapshot.SharpeRatio)

	require.Len(t, snapshot.TradingPairs, 2)
	assert.Equal(t, PairBreakdown{Pair: "EUR/USD", Count: 2, PnL: 180}, snapshot.TradingPairs[0])
	assert.Equal(t, PairBreakdown{Pair: "GBP/USD", Count: 1, PnL: -150}, snapshot.TradingPairs[1])
}

func TestComputeSnapshot_ScenarioB_AllWinning(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2024, 2, 1), "EUR/USD", 40, 2),
		trade(day(2024, 2, 2), "EUR/USD", 60, 3),
	}

	snapshot := ComputeSnapshot(trades, nil)

	assert.True(t, math.IsInf(snapshot.ProfitFactor, 1), "profit factor should be +Inf")
	assert.Equal(t, 0.0, snapshot.AverageLoss)
	assert.Equal(t, 100.0, snapshot.WinRate)
	assert.Equal(t, 0.0, snapshot.MaxDrawdown)
}

func TestComputeSnapshot_ScenarioD_TwoMonths(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2024, 1, 10), "EUR/USD", 60, 1),
		trade(day(2024, 1, 20), "EUR/USD", 40, 1),
		trade(day(2024, 2, 5), "EUR/USD", -40, 1),
	}

	snapshot := ComputeSnapshot(trades, nil)

	require.Len(t, snapshot.MonthlyReturns, 2)
	assert.Equal(t, MonthlyReturn{Period: "2024-01", PnL: 100}, snapshot.MonthlyReturns[0])
	assert.Equal(t, MonthlyReturn{Period: "2024-02", PnL: -40}, snapshot.MonthlyReturns[1])

	// mean = 30, sample variance = (70^2 + 70^2) / 1 = 9800
	expected := 30.0 / math.Sqrt(9800)
	assert.InDelta(t, expected, snapshot.SharpeRatio, 1e-12)
}

func TestComputeSnapshot_ZeroPnLCountsTowardNeither(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2024, 1, 1), "EUR/USD", 0, 1),
		trade(day(2024, 1, 1), "EUR/USD", 0, 1),
	}

	snapshot := ComputeSnapshot(trades, nil)

	assert.Equal(t, 0.0, snapshot.WinRate)
	assert.Equal(t, 0.0, snapshot.ProfitFactor)
	assert.Equal(t, 0.0, snapshot.AverageWin)
	assert.Equal(t, 0.0, snapshot.AverageLoss)
	assert.Equal(t, 0.0, snapshot.BestTrade)
	assert.Equal(t, 0.0, snapshot.WorstTrade)
	assert.Equal(t, 1, snapshot.ActiveDays)
}

func TestComputeSnapshot_AllLosing(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2024, 1, 1), "EUR/USD", -10, 1),
		trade(day(2024, 1, 2), "EUR/USD", -30, 1),
	}

	snapshot := ComputeSnapshot(trades, nil)

	assert.Equal(t, 0.0, snapshot.ProfitFactor)
	assert.Equal(t, 20.0, snapshot.AverageLoss)
	assert.Equal(t, 40.0, snapshot.MaxDrawdown)
	assert.Equal(t, -10.0, snapshot.BestTrade)
	assert.Equal(t, -30.0, snapshot.WorstTrade)
}

func TestComputeSnapshot_ActiveDaysIgnoresTimeOfDay(t *testing.T) {
	trades := []*domain.Trade{
		trade(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "EUR/USD", 5, 1),
		trade(time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC), "EUR/USD", 5, 1),
		trade(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), "EUR/USD", 5, 1),
	}

	assert.Equal(t, 2, ComputeSnapshot(trades, nil).ActiveDays)
}

func TestComputeSnapshot_EchoesRangeCopy(t *testing.T) {
	rng := &domain.DateRange{From: day(2024, 1, 1), To: day(2024, 1, 31)}

	snapshot := ComputeSnapshot(nil, rng)

	require.NotNil(t, snapshot.Range)
	assert.Equal(t, *rng, *snapshot.Range)
	assert.NotSame(t, rng, snapshot.Range)
}

func TestComputeSnapshot_Idempotent(t *testing.T) {
	trades := randomTrades(rand.New(rand.NewSource(7)), 200)

	first := ComputeSnapshot(trades, nil)
	second := ComputeSnapshot(trades, nil)

	assert.Equal(t, first, second)
}

func TestComputeSnapshot_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		trades := randomTrades(rng, rng.Intn(60))

		snapshot := ComputeSnapshot(trades, nil)

		assert.GreaterOrEqual(t, snapshot.WinRate, 0.0)
		assert.LessOrEqual(t, snapshot.WinRate, 100.0)
		assert.GreaterOrEqual(t, snapshot.MaxDrawdown, 0.0)

		sum := 0.0
		for _, tr := range trades {
			sum += tr.PnL
		}
		assert.InDelta(t, sum, snapshot.TotalPnL, 1e-6)

		// Scalar reducers do not depend on input order
		shuffled := make([]*domain.Trade, len(trades))
		copy(shuffled, trades)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		other := ComputeSnapshot(shuffled, nil)

		assert.InDelta(t, snapshot.TotalPnL, other.TotalPnL, 1e-6)
		assert.Equal(t, snapshot.WinRate, other.WinRate)
		assert.Equal(t, snapshot.BestTrade, other.BestTrade)
		assert.Equal(t, snapshot.WorstTrade, other.WorstTrade)
		assert.Equal(t, snapshot.ActiveDays, other.ActiveDays)
	}
}

func TestComputeSnapshot_DoesNotMutateInput(t *testing.T) {
	trades := []*domain.Trade{
		trade(day(2024, 3, 1), "EUR/USD", 10, 1),
		trade(day(2024, 1, 1), "EUR/USD", -5, 1),
	}
	before := []domain.Trade{*trades[0], *trades[1]}

	ComputeSnapshot(trades, nil)

	assert.Equal(t, before[0], *trades[0])
	assert.Equal(t, before[1], *trades[1])
	assert.Equal(t, day(2024, 3, 1), trades[0].Date, "input order must be preserved")
}

// randomTrades builds trades with whole-cent P&L spread over a year
func randomTrades(rng *rand.Rand, n int) []*domain.Trade {
	pairs := []string{"EUR/USD", "GBP/USD", "USD/JPY"}
	trades := make([]*domain.Trade, 0, n)
	for i := 0; i < n; i++ {
		trades = append(trades, &domain.Trade{
			Date: day(2024, time.Month(1+rng.Intn(12)), 1+rng.Intn(28)),
			Pair: pairs[rng.Intn(len(pairs))],
			PnL:  float64(rng.Intn(40001)-20000) / 100,
			RR:   float64(1+rng.Intn(500)) / 100,
		})
	}
	return trades
}
