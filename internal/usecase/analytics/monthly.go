package analytics

import (
	"fmt"
	"time"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// MonthlyReturn is the summed P&L of one calendar month
type MonthlyReturn struct {
	Period string  // YYYY-MM
	PnL    float64
}

// MonthlyReturns groups trades into calendar-month buckets.
// Months appear in the order they are first encountered in the input, each exactly once.
// The bucket key uses the date's own calendar fields; no timezone conversion is applied.
func MonthlyReturns(trades []*domain.Trade) []MonthlyReturn {
	result := make([]MonthlyReturn, 0)
	index := make(map[string]int)

	for _, t := range trades {
		period := monthKey(t.Date)
		i, ok := index[period]
		if !ok {
			i = len(result)
			index[period] = i
			result = append(result, MonthlyReturn{Period: period})
		}
		result[i].PnL += t.PnL
	}

	return result
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

func dayKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}
