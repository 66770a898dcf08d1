package cronexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRunCount = 5
	MaxRunCount     = 20
)

// ErrInvalidExpression covers both unsupported field counts and parse
// failures inside a field.
var ErrInvalidExpression = errors.New("invalid cron expression")

var (
	standardParser = cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)
	secondsParser = cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)
)

// NextRuns computes the next execution instants of a cron expression after
// from. The dialect is detected from the field count: five fields is the
// standard crontab form, six adds a leading seconds field.
func NextRuns(expr string, count int, from time.Time) ([]time.Time, error) {
	if count <= 0 {
		count = DefaultRunCount
	}
	if count > MaxRunCount {
		count = MaxRunCount
	}

	var schedule cron.Schedule
	var err error
	switch len(strings.Fields(expr)) {
	case 5:
		schedule, err = standardParser.Parse(expr)
	case 6:
		schedule, err = secondsParser.Parse(expr)
	default:
		return nil, fmt.Errorf("%w: expected 5 or 6 fields", ErrInvalidExpression)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	runs := make([]time.Time, 0, count)
	next := from
	for i := 0; i < count; i++ {
		next = schedule.Next(next)
		if next.IsZero() {
			break
		}
		runs = append(runs, next)
	}
	return runs, nil
}
