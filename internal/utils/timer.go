package utils

import (
	"fmt"
	"time"
)

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Timer measures the wall time between Start and Stop.
type Timer struct {
	clock     Clock
	startTime time.Time
	stopTime  time.Time
}

// NewTimer creates a started timer. A nil clock falls back to time.Now.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = time.Now
	}
	t := &Timer{clock: clock}
	return t.Start().Stop()
}

// Start resets the start time
func (t *Timer) Start() *Timer {
	t.startTime = t.clock()
	return t
}

// Stop records the stop time
func (t *Timer) Stop() *Timer {
	t.stopTime = t.clock()
	return t
}

// Total returns the elapsed time between the last Start and Stop
func (t *Timer) Total() time.Duration {
	return t.stopTime.Sub(t.startTime)
}

// Seconds returns the elapsed time in seconds with two decimals, e.g. "1.25"
func (t *Timer) Seconds() string {
	return fmt.Sprintf("%.2f", t.Total().Seconds())
}

// Timestamp formats a time as HH:MM:SS
func Timestamp(at time.Time) string {
	return at.Format("15:04:05")
}
