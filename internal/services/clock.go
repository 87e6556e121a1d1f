package services

import "time"

// Clock supplies the current time. Services take one so due-date and
// interval math is deterministic under test; nil means time.Now.
type Clock func() time.Time

func orSystemClock(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
