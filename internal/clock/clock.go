// Package clock provides the reference "now" the time service is compared
// against.
package clock

import (
	"time"
)

// Clock is a source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the local wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

var _ Clock = System{}

// Offset is a clock shifted by a fixed duration from its base.
type Offset struct {
	Base   Clock
	Offset time.Duration
}

func (o *Offset) Now() time.Time {
	return o.Base.Now().Add(o.Offset)
}

var _ Clock = (*Offset)(nil)

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

var _ Clock = Fixed{}
