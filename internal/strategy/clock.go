package strategy

import "time"

// Clock is the time source shared by the driver (which stamps
// EngineSendNS) and the strategy loop (which stamps receipt time), so both
// sides of the latency measurement agree on an origin.
type Clock interface {
	NowNS() uint64
}

// MonotonicClock reports nanoseconds since the clock was created, using the
// runtime's monotonic clock reading.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock returns a Clock whose NowNS() is zero at creation time.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// NowNS returns nanoseconds elapsed since the clock was created.
func (c *MonotonicClock) NowNS() uint64 {
	return uint64(time.Since(c.start).Nanoseconds())
}
