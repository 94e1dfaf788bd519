package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"srcon-go/rcon"
)

// Executor runs one command on an authenticated session.
type Executor interface {
	Command(text string) (*rcon.Response, error)
}

// Runner sends commands through an Executor and prints the results.
type Runner struct {
	exec    Executor
	printer *Printer
	errOut  io.Writer

	// Wait is slept between batch commands.
	Wait  time.Duration
	sleep func(time.Duration)

	notify func(chan<- os.Signal)
	exit   func(int)
}

// NewRunner returns a Runner that prints through printer and reports
// failures to errOut.
func NewRunner(exec Executor, printer *Printer, errOut io.Writer) *Runner {
	return &Runner{
		exec:    exec,
		printer: printer,
		errOut:  errOut,
		sleep:   time.Sleep,
		notify: func(c chan<- os.Signal) {
			signal.Notify(c, syscall.SIGTERM)
		},
		exit: os.Exit,
	}
}

// RunCommands executes commands in order, stopping at the first failure.
// It returns the process exit code.
func (r *Runner) RunCommands(commands []string) int {
	for i, command := range commands {
		if err := r.run(command); err != nil {
			return 1
		}

		if i < len(commands)-1 && r.Wait > 0 {
			r.sleep(r.Wait)
		}
	}
	return 0
}

// TerminalConfig wires the interactive prompt to its streams. Nil streams
// fall back to the process terminal.
type TerminalConfig struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// RunTerminal reads commands from a prompt until Q, Ctrl-C, Ctrl-D or the
// stop command. History is kept in memory only.
func (r *Runner) RunTerminal(cfg TerminalConfig) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		HistoryLimit:    500,
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		Stderr:          cfg.Stderr,
	})
	if err != nil {
		fmt.Fprintf(r.errOut, "Input error: %v\n", err)
		return 1
	}
	defer rl.Close()

	// The line editor owns Ctrl-C; on SIGTERM restore the terminal first.
	sigChan := make(chan os.Signal, 1)
	r.notify(sigChan)
	defer signal.Stop(sigChan)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigChan:
			rl.Close()
			fmt.Fprintln(r.errOut, "Disconnecting...")
			r.exit(0)
		case <-done:
		}
	}()

	fmt.Fprintln(rl.Stdout(), "Logged in.")
	fmt.Fprintln(rl.Stdout(), "Type 'Q' or press Ctrl-D / Ctrl-C to disconnect.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(r.errOut, "Input error: %v\n", err)
			return 1
		}

		if r.handleLine(line) {
			return 0
		}
	}
}

// handleLine runs one terminal line and reports whether the loop should end.
func (r *Runner) handleLine(line string) bool {
	command := strings.TrimSpace(line)
	if command == "" {
		return false
	}
	if strings.EqualFold(command, "q") {
		return true
	}

	r.run(command)

	// Servers drop the connection after stop; leave before the next read fails.
	return strings.EqualFold(command, "stop")
}

func (r *Runner) run(command string) error {
	response, err := r.exec.Command(command)
	if err != nil {
		r.printer.Error(r.errOut, command, err)
		return err
	}
	r.printer.Response(command, response)
	return nil
}
