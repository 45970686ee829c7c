package nativecore

// This file emulates the hardware serial port on top of the host console.

import (
	"fmt"
	"io"
	"sync"
)

// Console is the board's Serial port.  Output goes to an io.Writer (process
// stdout by default) and there is no inbound data path.  Each call is
// serialized by a mutex and issues exactly one write to the sink, so the bytes
// of a single Print or Println never interleave with another caller's.  A
// Print followed by a Println is two calls and is not atomic as a pair.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	baud uint32
}

// NewConsole returns a console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Begin accepts a baud rate.  Nothing is negotiated; the rate is only
// remembered so Baud can report it.
func (c *Console) Begin(baud uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baud = baud
}

// Baud returns the rate last passed to Begin.
func (c *Console) Baud() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baud
}

// Print writes the default textual form of v.
func (c *Console) Print(v any) {
	c.emit([]byte(fmt.Sprint(v)))
}

// Println writes the default textual form of each value, separated by
// spaces, followed by a newline.  With no arguments it writes just the
// newline.
func (c *Console) Println(v ...any) {
	c.emit([]byte(fmt.Sprintln(v...)))
}

// Write copies p verbatim to the console and reports len(p).  Host write
// failures are not detected, matching the hardware port which cannot report
// them either.
func (c *Console) Write(p []byte) (int, error) {
	c.emit(p)
	return len(p), nil
}

// Available reports the number of bytes waiting to be read, which is always 0.
func (c *Console) Available() int { return 0 }

// Read returns -1: no data is ever available.
func (c *Console) Read() int { return -1 }

// Flush is a no-op; writes are not buffered.
func (c *Console) Flush() {}

func (c *Console) emit(p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.w.Write(p)
}
