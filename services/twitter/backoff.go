package twitter

import (
	"context"
	"strconv"
	"time"
)

// Backoff bounds the wait applied when the API answers 429.
type Backoff struct {
	Min time.Duration
	Max time.Duration
}

var DefaultBackoff = Backoff{Min: 5 * time.Second, Max: 60 * time.Second}

// Delay is the time left until reset, clamped to [Min, Max].
func (b Backoff) Delay(reset, now time.Time) time.Duration {
	wait := reset.Sub(now)
	if wait < b.Min {
		return b.Min
	}
	if wait > b.Max {
		return b.Max
	}

	return wait
}

func (b Backoff) withDefaults() Backoff {
	if b.Min <= 0 {
		b.Min = DefaultBackoff.Min
	}
	if b.Max <= 0 {
		b.Max = DefaultBackoff.Max
	}
	if b.Max < b.Min {
		b.Max = b.Min
	}

	return b
}

// parseRateLimitReset parses the x-rate-limit-reset unix timestamp header.
// A missing or invalid header gives the zero time, so the minimum wait applies.
func parseRateLimitReset(v string) time.Time {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0)
	}

	return time.Time{}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
