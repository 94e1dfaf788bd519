package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try 'srcon-go -h' for help.")
		os.Exit(1)
	}

	os.Exit(a.exitCode)
}

// setupSignalHandler exits on SIGINT/SIGTERM in batch mode; process exit
// releases the socket. Terminal mode leaves signals to the line editor.
func setupSignalHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nDisconnecting...")
		os.Exit(0)
	}()
}
