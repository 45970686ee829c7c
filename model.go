package nativecore

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Byte mirrors the 8-bit unsigned alias sketches expect from the core headers.
type Byte = uint8

// PinMode enumerates the directions a pin can be configured for.  The set is
// closed: INPUT and OUTPUT are the only modes the board records.
type PinMode int

const (
	INPUT  PinMode = 0
	OUTPUT PinMode = 1
)

func (m PinMode) String() string {
	switch m {
	case INPUT:
		return "input"
	case OUTPUT:
		return "output"
	default:
		return fmt.Sprintf("PinMode(%d)", int(m))
	}
}

// Logic levels as sketches pass them to DigitalWrite and get them back from
// DigitalRead.
const (
	LOW  = 0
	HIGH = 1
)

// levelOf coerces a sketch value to a logic level: any non-zero value is high.
func levelOf(value int) gpio.Level {
	return value != 0
}

// levelValue converts a logic level back to the integer sketches compare against.
func levelValue(l gpio.Level) int {
	if l == gpio.High {
		return HIGH
	}
	return LOW
}

// Sketch is the program logic a board drives.  Setup runs once, then Loop is
// called repeatedly for as long as the board runs.
type Sketch interface {
	Setup(b *Board)
	Loop(b *Board)
}

// SketchFuncs adapts a pair of plain functions to the Sketch interface.
// Either field may be nil.
type SketchFuncs struct {
	SetupFunc func(b *Board)
	LoopFunc  func(b *Board)
}

// Setup calls f.SetupFunc.
func (f SketchFuncs) Setup(b *Board) {
	if f.SetupFunc != nil {
		f.SetupFunc(b)
	}
}

// Loop calls f.LoopFunc.
func (f SketchFuncs) Loop(b *Board) {
	if f.LoopFunc != nil {
		f.LoopFunc(b)
	}
}

// PinState is a snapshot of what the board has recorded for one pin.
type PinState struct {
	Pin     int     `json:"pin" yaml:"pin"`
	Mode    PinMode `json:"mode" yaml:"mode"`
	ModeSet bool    `json:"mode_set" yaml:"mode_set"`
	Level   int     `json:"level" yaml:"level"`
	Written bool    `json:"written" yaml:"written"`
}
