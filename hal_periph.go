package nativecore

// This file provides a pin backend that drives real GPIO through periph.io.
// Pins are addressed by their GPIO numbers ("GPIO17" for pin 17).  Select it
// with `backend: periph` in the board configuration.

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// analogWriteFreq is the PWM carrier used for AnalogWrite, close to the
// default on most AVR boards.
const analogWriteFreq = 1000 * physic.Hertz

// analogWriteMax is the top of the AnalogWrite range.
const analogWriteMax = 255

// PeriphPins forwards pin calls to hardware.  Pin handles are resolved once
// and cached.  Hardware failures are logged and otherwise ignored; reads of a
// pin that cannot be resolved return low.
type PeriphPins struct {
	mu     sync.Mutex
	log    *slog.Logger
	lookup func(name string) gpio.PinIO
	pins   map[int]gpio.PinIO
	modes  map[int]PinMode
	levels map[int]gpio.Level
}

// NewPeriphPins initialises the periph host drivers and returns a backend
// resolving pins from the global registry.  host.Init is safe to call more
// than once.
func NewPeriphPins(log *slog.Logger) (*PeriphPins, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	return newPeriphPins(gpioreg.ByName, log), nil
}

func newPeriphPins(lookup func(string) gpio.PinIO, log *slog.Logger) *PeriphPins {
	return &PeriphPins{
		log:    log,
		lookup: lookup,
		pins:   make(map[int]gpio.PinIO),
		modes:  make(map[int]PinMode),
		levels: make(map[int]gpio.Level),
	}
}

// resolve returns the handle for pin, or nil if the host has no such pin.
// Callers hold p.mu.
func (p *PeriphPins) resolve(pin int) gpio.PinIO {
	if h, ok := p.pins[pin]; ok {
		return h
	}
	name := fmt.Sprintf("GPIO%d", pin)
	h := p.lookup(name)
	if h == nil {
		p.log.Warn("gpio pin not found", "pin", pin, "name", name)
		return nil
	}
	p.pins[pin] = h
	return h
}

func (p *PeriphPins) SetMode(pin int, mode PinMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modes[pin] = mode
	h := p.resolve(pin)
	if h == nil {
		return
	}
	var err error
	switch mode {
	case OUTPUT:
		// Switching direction keeps the output latch: a pin written high
		// before PinMode comes up high.
		err = h.Out(p.levels[pin])
	default:
		err = h.In(gpio.PullNoChange, gpio.NoEdge)
	}
	if err != nil {
		p.log.Warn("gpio set mode failed", "pin", pin, "mode", mode, "error", err)
	}
}

func (p *PeriphPins) WriteDigital(pin int, level gpio.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels[pin] = level
	h := p.resolve(pin)
	if h == nil {
		return
	}
	if err := h.Out(level); err != nil {
		p.log.Warn("gpio write failed", "pin", pin, "level", level, "error", err)
	}
}

func (p *PeriphPins) ReadDigital(pin int) gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	h := p.resolve(pin)
	if h == nil {
		return gpio.Low
	}
	return h.Read()
}

// ReadAnalog returns 0; GPIO pins carry no ADC.
func (p *PeriphPins) ReadAnalog(pin int) int { return 0 }

// WriteAnalog drives pin with a PWM duty cycle proportional to value over
// 0..255.  Values outside the range are clamped.
func (p *PeriphPins) WriteAnalog(pin int, value int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h := p.resolve(pin)
	if h == nil {
		return
	}
	if err := h.PWM(dutyOf(value), analogWriteFreq); err != nil {
		p.log.Warn("gpio pwm failed", "pin", pin, "value", value, "error", err)
	}
}

func dutyOf(value int) gpio.Duty {
	switch {
	case value < 0:
		value = 0
	case value > analogWriteMax:
		value = analogWriteMax
	}
	return gpio.Duty(int64(value) * int64(gpio.DutyMax) / analogWriteMax)
}

func (p *PeriphPins) State(pin int) PinState {
	p.mu.Lock()
	defer p.mu.Unlock()
	mode, modeSet := p.modes[pin]
	_, written := p.levels[pin]
	st := PinState{Pin: pin, Mode: mode, ModeSet: modeSet, Written: written}
	if h, ok := p.pins[pin]; ok {
		st.Level = levelValue(h.Read())
	}
	return st
}

// Close halts every pin the sketch touched.
func (p *PeriphPins) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for pin, h := range p.pins {
		if err := h.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt pin %d: %w", pin, err))
		}
	}
	p.pins = make(map[int]gpio.PinIO)
	return errors.Join(errs...)
}
