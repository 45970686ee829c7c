package nativecore

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBoardMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Console = filepath.Join(dir, "serial.out")
	cfg.Baud = 57600

	b, err := OpenBoard(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryPins{}, b.pins)
	assert.Equal(t, uint32(57600), b.Serial.Baud())

	b.Serial.Println("hello")
	require.NoError(t, b.Close())
	assert.NoError(t, b.Close(), "second close is a no-op")

	data, err := os.ReadFile(cfg.Console)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestOpenBoardRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "bogus"
	_, err := OpenBoard(cfg, nil)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestOpenBoardBadConsole(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Console = filepath.Join(t.TempDir(), "no", "such", "dir")
	_, err := OpenBoard(cfg, nil)
	assert.ErrorContains(t, err, "open console")
}

func TestBoardTracesPinCalls(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := NewBoard(&bytes.Buffer{}, nil, log)

	b.PinMode(13, OUTPUT)
	b.DigitalWrite(13, 1)
	b.AnalogWrite(3, 64)

	out := logs.String()
	assert.Contains(t, out, "pin mode")
	assert.Contains(t, out, "mode=output")
	assert.Contains(t, out, "digital write")
	assert.Contains(t, out, "analog write")
	assert.Same(t, log, b.Logger())
}

func TestBoardSerialIsSeparateFromLogs(t *testing.T) {
	var console, logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := NewBoard(&console, nil, log)

	b.DigitalWrite(1, 1)
	b.Serial.Print("x")
	assert.Equal(t, "x", console.String())
	assert.NotContains(t, logs.String(), "x\n")
}

func TestBoardClockHelpers(t *testing.T) {
	b, _ := newTestBoard()
	first := b.Millis()
	b.Delay(5)
	b.DelayMicroseconds(100)
	assert.GreaterOrEqual(t, b.Millis(), first+5)
	assert.GreaterOrEqual(t, b.Micros(), uint32(5000))
}
