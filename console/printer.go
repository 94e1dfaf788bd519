// Package console renders RCON command/response pairs and drives the
// interactive and batch front ends.
package console

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"srcon-go/rcon"
)

// TimeLayout is the transcript timestamp format.
const TimeLayout = "2006-01-02 15:04:05"

// Clock returns the current time.
type Clock func() time.Time

// Options selects how responses are printed.
type Options struct {
	// Colors enables ANSI output and format code conversion.
	Colors bool
	// Raw prints response bodies untouched, without the transcript line.
	Raw bool
	// Silent suppresses all response output.
	Silent bool
	// Clock defaults to time.Now.
	Clock Clock
}

// Printer writes the command/response transcript.
type Printer struct {
	out  io.Writer
	opts Options
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer, opts Options) *Printer {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Printer{out: out, opts: opts}
}

// Response prints one command and the server's answer.
func (p *Printer) Response(command string, response *rcon.Response) {
	if p.opts.Silent || response == nil {
		return
	}

	if p.opts.Raw {
		if response.Binary {
			p.out.Write(response.Raw)
			return
		}
		fmt.Fprint(p.out, response.Body)
		return
	}

	stamp := p.opts.Clock().Format(TimeLayout)
	if p.opts.Colors {
		fmt.Fprintf(p.out, "%s - %s %s\n%s ",
			paint(ansiDGrey, stamp), paint(ansiCyan, "Command:"), command, paint(ansiCyan, "Response:"))
	} else {
		fmt.Fprintf(p.out, "%s - Command: %s\nResponse: ", stamp, command)
	}

	if response.Binary {
		fmt.Fprintf(p.out, "(binary, %d bytes)\n%s", len(response.Raw), hex.Dump(response.Raw))
		return
	}

	text := p.render(response.Body)
	fmt.Fprint(p.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.out)
	}
}

// Error prints a failed command.
func (p *Printer) Error(w io.Writer, command string, err error) {
	if p.opts.Colors {
		fmt.Fprintf(w, "%s %s: %v\n", paint(ansiLRed, "Error:"), command, err)
		return
	}
	fmt.Fprintf(w, "Error: %s: %v\n", command, err)
}

func (p *Printer) render(body string) string {
	body = stripControl(body)
	if p.opts.Colors {
		return convertFormatCodes(body)
	}
	return stripFormatCodes(body)
}
