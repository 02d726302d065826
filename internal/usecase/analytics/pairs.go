package analytics

import "github.com/simaogato/tradejournal-backend/internal/domain"

// PairBreakdown summarizes the trades of one instrument
type PairBreakdown struct {
	Pair  string
	Count int
	PnL   float64
}

// PairBreakdowns groups trades by exact pair string (no case folding), in order of first appearance
func PairBreakdowns(trades []*domain.Trade) []PairBreakdown {
	result := make([]PairBreakdown, 0)
	index := make(map[string]int)

	for _, t := range trades {
		i, ok := index[t.Pair]
		if !ok {
			i = len(result)
			index[t.Pair] = i
			result = append(result, PairBreakdown{Pair: t.Pair})
		}
		result[i].Count++
		result[i].PnL += t.PnL
	}

	return result
}
