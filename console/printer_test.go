package console

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"srcon-go/rcon"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func TestPrinterTranscript(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{Clock: fixedClock})

	p.Response("listplayers", &rcon.Response{Body: "No players"})

	assert.Equal(t, "2026-03-04 05:06:07 - Command: listplayers\nResponse: No players\n", out.String())
}

func TestPrinterKeepsTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{Clock: fixedClock})

	p.Response("status", &rcon.Response{Body: "line one\nline two\n"})

	assert.Equal(t, "2026-03-04 05:06:07 - Command: status\nResponse: line one\nline two\n", out.String())
}

func TestPrinterStripsCodesAndControl(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{Clock: fixedClock})

	p.Response("list", &rcon.Response{Body: "§aThere are §c0§r players\x1b]0;x\x07"})

	assert.Equal(t, "2026-03-04 05:06:07 - Command: list\nResponse: There are 0 players]0;x\n", out.String())
}

func TestPrinterColors(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{Clock: fixedClock, Colors: true})

	p.Response("list", &rcon.Response{Body: "§aok"})

	assert.Contains(t, out.String(), paint(ansiCyan, "Command:"))
	assert.Contains(t, out.String(), "\033[0;1;32mok"+ansiReset)
}

func TestPrinterRaw(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{Raw: true})

	p.Response("list", &rcon.Response{Body: "§aok"})
	p.Response("dump", &rcon.Response{Binary: true, Raw: []byte{0xff, 0x00}})

	assert.Equal(t, "§aok\xff\x00", out.String())
}

func TestPrinterSilent(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{Silent: true})

	p.Response("list", &rcon.Response{Body: "ok"})
	assert.Empty(t, out.String())
}

func TestPrinterBinary(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{Clock: fixedClock})

	p.Response("dump", &rcon.Response{Binary: true, Raw: []byte{0xff, 0xfe}})

	assert.Contains(t, out.String(), "Response: (binary, 2 bytes)\n")
	assert.Contains(t, out.String(), "ff fe")
}

func TestPrinterError(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, Options{})

	p.Error(&out, "status", errors.New("command: receive: timed out"))
	assert.Equal(t, "Error: status: command: receive: timed out\n", out.String())
}
