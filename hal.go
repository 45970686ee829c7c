package nativecore

// This file defines the pin hardware abstraction layer.  The default backend
// keeps pin state in memory so sketches run on a desktop machine with no
// hardware attached.  hal_periph.go provides a backend driving real GPIO.

import (
	"periph.io/x/conn/v3/gpio"
)

// Pins is the backend a Board forwards pin calls to.  None of the methods
// report errors: a sketch has no way to handle them, so backends absorb or log
// failures themselves.
type Pins interface {
	SetMode(pin int, mode PinMode)
	WriteDigital(pin int, level gpio.Level)
	ReadDigital(pin int) gpio.Level
	ReadAnalog(pin int) int
	WriteAnalog(pin int, value int)
	State(pin int) PinState
	Close() error
}

// MemoryPins records the last mode and level written to each pin.  Entries
// are created on first write and never removed; any integer is a valid pin.
// Reads of a pin that was never written return low.
//
// MemoryPins is not safe for concurrent use.  Sketches run on a single
// goroutine, as they would on the microcontroller.
type MemoryPins struct {
	modes  map[int]PinMode
	levels map[int]gpio.Level
}

// NewMemoryPins returns an empty pin table.
func NewMemoryPins() *MemoryPins {
	return &MemoryPins{
		modes:  make(map[int]PinMode),
		levels: make(map[int]gpio.Level),
	}
}

func (m *MemoryPins) SetMode(pin int, mode PinMode) {
	m.modes[pin] = mode
}

func (m *MemoryPins) WriteDigital(pin int, level gpio.Level) {
	m.levels[pin] = level
}

func (m *MemoryPins) ReadDigital(pin int) gpio.Level {
	return m.levels[pin]
}

// ReadAnalog always returns 0: there is no simulated analog source.
func (m *MemoryPins) ReadAnalog(pin int) int { return 0 }

// WriteAnalog is accepted and ignored.
func (m *MemoryPins) WriteAnalog(pin int, value int) {}

func (m *MemoryPins) State(pin int) PinState {
	mode, modeSet := m.modes[pin]
	level, written := m.levels[pin]
	return PinState{
		Pin:     pin,
		Mode:    mode,
		ModeSet: modeSet,
		Level:   levelValue(level),
		Written: written,
	}
}

func (m *MemoryPins) Close() error { return nil }
