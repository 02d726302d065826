package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateRange is returned when query bounds are malformed or inverted
var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is an inclusive [From, To] bound on trade dates
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range, both ends inclusive
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ParseDateRange builds a DateRange from optional query values.
// Both empty means "no bounds" and returns nil. A calendar-date upper bound is
// extended to the last instant of that day so the whole day is included.
func ParseDateRange(from, to string) (*DateRange, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, errors.Join(ErrInvalidDateRange, errors.New("both from and to are required"))
	}

	start, err := ParseTradeDate(from)
	if err != nil {
		return nil, errors.Join(ErrInvalidDateRange, err)
	}

	end, err := ParseTradeDate(to)
	if err != nil {
		return nil, errors.Join(ErrInvalidDateRange, err)
	}
	if _, dateOnly := time.Parse(time.DateOnly, to); dateOnly == nil {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if start.After(end) {
		return nil, errors.Join(ErrInvalidDateRange, errors.New("from must not be after to"))
	}

	return &DateRange{From: start, To: end}, nil
}
