package analytics

import (
	"sort"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// MaxDrawdown calculates the worst peak-to-trough decline of cumulative P&L.
// Logic:
//  1. Sort a copy of the trades by Date ASC (stable: ties keep their input order)
//  2. Walk the trades accumulating P&L, tracking the running peak (starts at 0)
//  3. Drawdown at each step = peak - running P&L; keep the maximum
//
// The result is never negative since peak >= running P&L after every step.
func MaxDrawdown(trades []*domain.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	ordered := sortedByDate(trades)

	runningPnL := 0.0
	peak := 0.0
	maxDrawdown := 0.0

	for _, t := range ordered {
		runningPnL += t.PnL
		if runningPnL > peak {
			peak = runningPnL
		}
		drawdown := peak - runningPnL
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}

// sortedByDate returns a date-ordered copy, leaving the caller's slice untouched
func sortedByDate(trades []*domain.Trade) []*domain.Trade {
	ordered := make([]*domain.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}
