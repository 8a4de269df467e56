package clock

import (
	"time"
)

// Interface is the time source of the notifier; outcomes are stamped with its Now.
type Interface interface {
	Now() time.Time
}

type Clock struct {
	now func() time.Time
}

func NewZonedClock(location *time.Location) *Clock {
	return &Clock{
		now: func() time.Time {
			return time.Now().In(location)
		},
	}
}

// NewFixedClock always reports t.
func NewFixedClock(t time.Time) *Clock {
	return &Clock{
		now: func() time.Time {
			return t
		},
	}
}

func (c *Clock) Now() time.Time {
	return c.now()
}
