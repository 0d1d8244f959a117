// Package clock makes "now" injectable so time-bound rules (past-slot
// filtering, start-time validation) stay deterministic in tests.
package clock

import "time"

type Clock func() time.Time

func System() Clock {
	return time.Now
}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
