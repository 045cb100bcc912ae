package engine

import "github.com/jonboulle/clockwork"

// NewTimeProvider returns the real system clock with monotonic readings
// Tests substitute clockwork.NewFakeClock
func NewTimeProvider() clockwork.Clock {
	return clockwork.NewRealClock()
}
