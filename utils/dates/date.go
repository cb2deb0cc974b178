package dates

import (
	"cashtag-mentions/models/entities"
	"time"
)

const (
	// WireFormat is extended ISO-8601 with a literal Z, as expected by the Twitter API.
	WireFormat = "2006-01-02T15:04:05Z"

	DefaultWindow = 24 * time.Hour
)

// TrailingWindow returns the window of the given span ending at now, in UTC
// with second precision.
func TrailingWindow(now time.Time, span time.Duration) entities.TimeWindow {
	if span <= 0 {
		span = DefaultWindow
	}

	end := now.UTC().Truncate(time.Second)
	return entities.TimeWindow{Start: end.Add(-span), End: end}
}

// ToWireTimestamp converts any offset to UTC and drops fractional seconds.
func ToWireTimestamp(from time.Time) string {
	return from.UTC().Format(WireFormat)
}

func StringToDate(from string) (time.Time, error) {
	return time.Parse(time.RFC3339, from)
}
