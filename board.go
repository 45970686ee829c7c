// Package nativecore runs Arduino-style sketches on a workstation: a Serial
// console on stdout, a millisecond clock, in-memory pin tables and the
// setup/loop driver.
package nativecore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Board owns everything a sketch talks to: the Serial console, the clock and
// the pin backend.  A program builds one board at start-up and closes it on
// the way out; sketches reach the board through the argument passed to Setup
// and Loop instead of through package globals.
type Board struct {
	Serial *Console

	clock  Clock
	pins   Pins
	log    *slog.Logger
	closer func() error

	closeOnce sync.Once
	closeErr  error

	state      atomic.Int32
	iterations atomic.Uint64
}

// NewBoard assembles a board writing Serial output to console and keeping pin
// state in pins.  A nil pins selects an in-memory table, a nil log discards
// diagnostics.
func NewBoard(console io.Writer, pins Pins, log *slog.Logger) *Board {
	if pins == nil {
		pins = NewMemoryPins()
	}
	if log == nil {
		log = discardLogger()
	}
	return &Board{
		Serial: NewConsole(console),
		pins:   pins,
		log:    log,
		closer: func() error { return nil },
	}
}

// OpenBoard builds a board from cfg.  It opens the console destination and
// initialises the pin backend the configuration names.
func OpenBoard(cfg Config, log *slog.Logger) (*Board, error) {
	if log == nil {
		log = discardLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	console, closeConsole, err := openOutput(cfg.Console, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("open console: %w", err)
	}

	var pins Pins
	switch strings.ToLower(cfg.Backend) {
	case BackendPeriph:
		pp, err := NewPeriphPins(log)
		if err != nil {
			_ = closeConsole()
			return nil, err
		}
		pins = pp
	default:
		pins = NewMemoryPins()
	}

	b := NewBoard(console, pins, log)
	b.closer = closeConsole
	b.Serial.Begin(cfg.Baud)
	log.Info("board opened", "backend", backendName(cfg.Backend), "console", consoleName(cfg.Console))
	return b, nil
}

func backendName(s string) string {
	if s == "" {
		return BackendMemory
	}
	return strings.ToLower(s)
}

func consoleName(s string) string {
	if s == "" {
		return "stdout"
	}
	return s
}

// Close releases the pin backend and the console destination.  Later calls
// return the result of the first.
func (b *Board) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = errors.Join(b.pins.Close(), b.closer())
	})
	return b.closeErr
}

// Logger returns the board's diagnostic logger.
func (b *Board) Logger() *slog.Logger { return b.log }

// Millis returns milliseconds since the board's clock was first queried,
// wrapping at 32 bits.
func (b *Board) Millis() uint32 { return b.clock.Millis() }

// Micros returns microseconds since the board's clock was first queried,
// wrapping at 32 bits.
func (b *Board) Micros() uint32 { return b.clock.Micros() }

// Delay blocks the calling goroutine for at least ms milliseconds.
func (b *Board) Delay(ms uint32) { b.clock.Delay(ms) }

// DelayMicroseconds blocks the calling goroutine for at least us microseconds.
func (b *Board) DelayMicroseconds(us uint32) { b.clock.DelayMicroseconds(us) }

// PinMode records mode for pin.
func (b *Board) PinMode(pin int, mode PinMode) {
	b.log.Debug("pin mode", "pin", pin, "mode", mode)
	b.pins.SetMode(pin, mode)
}

// DigitalWrite records HIGH for any non-zero value and LOW otherwise.
func (b *Board) DigitalWrite(pin int, value int) {
	l := levelOf(value)
	b.log.Debug("digital write", "pin", pin, "level", l)
	b.pins.WriteDigital(pin, l)
}

// DigitalRead returns the last level written to pin, or LOW if none was.
func (b *Board) DigitalRead(pin int) int {
	return levelValue(b.pins.ReadDigital(pin))
}

// AnalogRead returns the analog reading for pin.  Without an analog source
// this is always 0.
func (b *Board) AnalogRead(pin int) int {
	return b.pins.ReadAnalog(pin)
}

// AnalogWrite forwards value to the backend.  The in-memory backend ignores it.
func (b *Board) AnalogWrite(pin int, value int) {
	b.log.Debug("analog write", "pin", pin, "value", value)
	b.pins.WriteAnalog(pin, value)
}

// PinState reports what the backend has recorded for pin.
func (b *Board) PinState(pin int) PinState {
	return b.pins.State(pin)
}
