package clock

import "time"

// Clock is the time source injected into services, so tests can pin
// match start, turn and resolution timestamps.
type Clock interface {
	Now() time.Time
}

// systemClock reads the wall clock.
type systemClock struct{}

// New returns a Clock backed by system time.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
