package schedule

import (
	"fmt"
	"time"
)

// DefaultGranularity is used when a slot query does not ask for one.
const DefaultGranularity = 30 * time.Minute

var allowedGranularities = map[int]time.Duration{
	15: 15 * time.Minute,
	30: 30 * time.Minute,
	60: time.Hour,
}

// ParseGranularity maps a requested slot length in minutes onto the enumerated
// set {15, 30, 60}. Zero means "use the default".
func ParseGranularity(minutes int) (time.Duration, error) {
	if minutes == 0 {
		return DefaultGranularity, nil
	}
	d, ok := allowedGranularities[minutes]
	if !ok {
		return 0, fmt.Errorf("granularity must be 15, 30 or 60 minutes, got %d", minutes)
	}
	return d, nil
}
