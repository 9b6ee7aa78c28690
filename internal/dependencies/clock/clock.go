package clock

import "time"

// Clock abstracts the wall clock. Services take a Clock so tests can pin
// session and join timestamps to known values.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// New returns a Clock backed by the system clock.
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
