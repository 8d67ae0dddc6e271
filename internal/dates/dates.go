package dates

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// Resolution is the bucket size the metrics API aggregates values into.
type Resolution string

const (
	ResolutionDaily   Resolution = "1d"
	ResolutionWeekly  Resolution = "1w"
	ResolutionMonthly Resolution = "30d"
)

// ErrInvalidPeriod is returned when a period cannot be parsed or ends before it starts.
var ErrInvalidPeriod = errors.New("invalid period")

// Period is a closed time window expressed in UTC.
//
// Fields:
//   - From: start of the first day in the window.
//   - To: start of the last day in the window.
type Period struct {
	From time.Time `json:"from" example:"2025-09-01T00:00:00Z"`
	To   time.Time `json:"to" example:"2025-09-30T00:00:00Z"`
}

// Timestamps holds a period converted to epoch seconds, as expected by the metrics API.
type Timestamps struct {
	Start int64
	End   int64
}

// GetPeriod returns the window of the last n whole days, ending yesterday (UTC).
//
// Behavior:
//   - To is midnight at the start of yesterday; today is never included.
//   - From is (days-1) days before To, so the window covers `days` calendar days.
//   - days < 1 is treated as 1.
func GetPeriod(days int, now time.Time) Period {
	if days < 1 {
		days = 1
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := today.Add(-day)
	from := to.Add(-time.Duration(days-1) * day)
	return Period{From: from, To: to}
}

// ParsePeriod builds a Period from two RFC 3339 strings.
func ParsePeriod(from, to string) (Period, error) {
	f, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return Period{}, fmt.Errorf("%w: from: %v", ErrInvalidPeriod, err)
	}
	t, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return Period{}, fmt.Errorf("%w: to: %v", ErrInvalidPeriod, err)
	}
	if f.After(t) {
		return Period{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidPeriod, from, to)
	}
	return Period{From: f.UTC(), To: t.UTC()}, nil
}

// TimestampsFromPeriod converts both ends of the period to epoch seconds.
func TimestampsFromPeriod(p Period) Timestamps {
	return Timestamps{
		Start: p.From.Unix(),
		End:   p.To.Unix(),
	}
}

// ResolutionByPeriod picks the bucket size from the length of the period,
// counting partial days as whole ones.
func ResolutionByPeriod(p Period) Resolution {
	diff := p.To.Sub(p.From)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(float64(diff) / float64(day)))
	switch {
	case days < 60:
		return ResolutionDaily
	case days < 365:
		return ResolutionWeekly
	default:
		return ResolutionMonthly
	}
}
