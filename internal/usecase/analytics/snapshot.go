// Package analytics turns a user's trade collection into a performance snapshot.
// Every function here is pure: no I/O, no shared state, and inputs are never mutated,
// so the package is safe to call concurrently from independent requests.
package analytics

import (
	"math"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// Snapshot is the immutable result of one analytics query
type Snapshot struct {
	TotalTrades    int
	WinRate        float64 // Percentage in [0, 100]
	TotalPnL       float64
	AverageWin     float64
	AverageLoss    float64 // Positive magnitude
	ProfitFactor   float64 // +Inf when there are wins and no losses
	MaxDrawdown    float64
	BestTrade      float64
	WorstTrade     float64
	ActiveDays     int
	AverageRR      float64
	SharpeRatio    float64
	MonthlyReturns []MonthlyReturn
	TradingPairs   []PairBreakdown

	// Range echoes the bounds the caller already applied to the trades, if any
	Range *domain.DateRange
}

// ComputeSnapshot calculates every metric of a Snapshot from trades.
// The caller is responsible for restricting trades to rng; no filtering happens here.
// Logic:
//   - Winning trades have PnL > 0, losing trades PnL < 0; zero-PnL trades count toward neither
//   - Scalar metrics fall back to 0 on empty input
//   - MaxDrawdown, MonthlyReturns and TradingPairs are delegated to their aggregators
//   - SharpeRatio = mean(monthly P&L) / sample stddev(monthly P&L)
func ComputeSnapshot(trades []*domain.Trade, rng *domain.DateRange) Snapshot {
	snapshot := Snapshot{
		TotalTrades:    len(trades),
		MaxDrawdown:    MaxDrawdown(trades),
		MonthlyReturns: MonthlyReturns(trades),
		TradingPairs:   PairBreakdowns(trades),
	}
	if rng != nil {
		bounds := *rng
		snapshot.Range = &bounds
	}

	if len(trades) == 0 {
		return snapshot
	}

	wins := 0
	losses := 0
	totalWins := 0.0
	lossSum := 0.0
	rrSum := 0.0
	best := math.Inf(-1)
	worst := math.Inf(1)
	days := make(map[string]struct{})

	for _, t := range trades {
		snapshot.TotalPnL += t.PnL
		rrSum += t.RR

		switch {
		case t.PnL > 0:
			wins++
			totalWins += t.PnL
		case t.PnL < 0:
			losses++
			lossSum += t.PnL
		}

		if t.PnL > best {
			best = t.PnL
		}
		if t.PnL < worst {
			worst = t.PnL
		}

		days[dayKey(t.Date)] = struct{}{}
	}

	n := float64(len(trades))
	totalLosses := math.Abs(lossSum)

	snapshot.WinRate = 100 * float64(wins) / n
	if wins > 0 {
		snapshot.AverageWin = totalWins / float64(wins)
	}
	if losses > 0 {
		snapshot.AverageLoss = totalLosses / float64(losses)
	}
	snapshot.ProfitFactor = profitFactor(totalWins, totalLosses)
	snapshot.BestTrade = best
	snapshot.WorstTrade = worst
	snapshot.ActiveDays = len(days)
	snapshot.AverageRR = rrSum / n
	snapshot.SharpeRatio = sharpeRatio(snapshot.MonthlyReturns)

	return snapshot
}

// profitFactor divides total winning P&L by the magnitude of total losing P&L.
// Only wins yields +Inf; no wins and no losses yields 0.
func profitFactor(totalWins, totalLosses float64) float64 {
	if totalLosses > 0 {
		return totalWins / totalLosses
	}
	if totalWins > 0 {
		return math.Inf(1)
	}
	return 0
}

// sharpeRatio is a simplified, non-annualized ratio over monthly P&L
func sharpeRatio(monthly []MonthlyReturn) float64 {
	returns := make([]float64, len(monthly))
	for i, m := range monthly {
		returns[i] = m.PnL
	}

	avg := mean(returns)
	stdDev := sampleStddev(returns, avg)
	if stdDev > 0 {
		return avg / stdDev
	}
	return 0
}

// mean calculates the arithmetic mean, 0 for an empty series
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStddev uses the (n-1) denominator; fewer than two samples yield 0
func sampleStddev(values []float64, avg float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - avg
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}
