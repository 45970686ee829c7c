package nativecore

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trickleWriter hands every byte to the buffer separately and yields between
// them, so an unserialized caller would interleave with another one.
type trickleWriter struct {
	buf bytes.Buffer
}

func (w *trickleWriter) Write(p []byte) (int, error) {
	for _, c := range p {
		w.buf.WriteByte(c)
		runtime.Gosched()
	}
	return len(p), nil
}

func TestConsoleWriteVerbatim(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	payload := []byte{0x00, 'a', '\n', 0xff, 'b'}
	n, err := c.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, out.Bytes())
}

func TestConsoleWriteEmpty(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	n, err := c.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
}

func TestConsolePrint(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	c.Print("value=")
	c.Print(42)
	c.Println()
	c.Println(3.5)
	c.Println("done")
	c.Println(uint32(7), 8)
	c.Println("a", "b")

	assert.Equal(t, "value=42\n3.5\ndone\n7 8\na b\n", out.String())
}

func TestConsoleInputSentinels(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})
	assert.Equal(t, 0, c.Available())
	assert.Equal(t, -1, c.Read())
}

func TestConsoleBegin(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	assert.Zero(t, c.Baud())
	c.Begin(115200)
	assert.Equal(t, uint32(115200), c.Baud())
	c.Flush()
	assert.Zero(t, out.Len(), "begin and flush write nothing")
}

func TestConsoleConcurrentPrintlnDoesNotInterleave(t *testing.T) {
	w := &trickleWriter{}
	c := NewConsole(w)

	const perWriter = 50
	lineA := strings.Repeat("A", 40)
	lineB := strings.Repeat("B", 40)

	var wg sync.WaitGroup
	for _, line := range []string{lineA, lineB} {
		wg.Add(1)
		go func(line string) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				c.Println(line)
			}
		}(line)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(w.buf.String(), "\n"), "\n")
	require.Len(t, lines, 2*perWriter)
	counts := map[string]int{}
	for i, l := range lines {
		require.Truef(t, l == lineA || l == lineB, "line %d is mixed: %q", i, l)
		counts[l]++
	}
	assert.Equal(t, perWriter, counts[lineA])
	assert.Equal(t, perWriter, counts[lineB])
}

func ExampleConsole() {
	var out bytes.Buffer
	serial := NewConsole(&out)
	serial.Begin(9600)
	serial.Print("t=")
	serial.Println(10)
	fmt.Print(out.String())
	// Output: t=10
}
