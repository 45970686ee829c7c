package nativecore

import (
	"sync"
	"time"
)

// Clock measures elapsed time from the first query made against it.  The
// origin is captured lazily and never reset.
type Clock struct {
	once   sync.Once
	origin time.Time
}

func (c *Clock) elapsed() time.Duration {
	c.once.Do(func() { c.origin = time.Now() })
	return time.Since(c.origin)
}

// Millis returns milliseconds since the first query, truncated to 32 bits.
// Like the hardware counter it wraps after roughly 49.7 days.
func (c *Clock) Millis() uint32 {
	return uint32(c.elapsed().Milliseconds())
}

// Micros returns microseconds since the first query, truncated to 32 bits.
// It wraps after roughly 71.6 minutes.
func (c *Clock) Micros() uint32 {
	return uint32(c.elapsed().Microseconds())
}

// Delay blocks for at least ms milliseconds.
func (c *Clock) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// DelayMicroseconds blocks for at least us microseconds.  The host scheduler
// usually oversleeps short waits.
func (c *Clock) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
