package service

import "time"

// Clock supplies "now" to every deadline check so the lifecycle predicate is
// testable without wall-clock sleeps.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}
