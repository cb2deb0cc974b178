package twitter

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffDelay(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		reset    time.Time
		expected time.Duration
	}{
		{"below minimum", now.Add(3 * time.Second), 5 * time.Second},
		{"above maximum", now.Add(200 * time.Second), 60 * time.Second},
		{"within bounds", now.Add(42 * time.Second), 42 * time.Second},
		{"in the past", now.Add(-time.Minute), 5 * time.Second},
		{"unknown reset", time.Time{}, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultBackoff.Delay(tt.reset, now))
		})
	}
}

func TestBackoffWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultBackoff, Backoff{}.withDefaults())
	assert.Equal(t, Backoff{Min: time.Second, Max: 60 * time.Second}, Backoff{Min: time.Second}.withDefaults())
	assert.Equal(t, Backoff{Min: 10 * time.Second, Max: 10 * time.Second}, Backoff{Min: 10 * time.Second, Max: time.Second}.withDefaults())
}

func TestParseRateLimitReset(t *testing.T) {
	reset := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, parseRateLimitReset(strconv.FormatInt(reset.Unix(), 10)).Equal(reset))
	assert.True(t, parseRateLimitReset("").IsZero())
	assert.True(t, parseRateLimitReset("not-a-number").IsZero())
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
