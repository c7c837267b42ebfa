package shortcut

import "time"

// Clock abstracts time.Now so insertions can be tested with a fixed instant.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
