package rcon

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// Error kinds. Every error returned by this package is an *OpError whose
// Kind is one of these, so callers can branch with errors.Is.
var (
	ErrConnection      = errors.New("connection failed")
	ErrTimeout         = errors.New("timed out")
	ErrAuth            = errors.New("authentication rejected")
	ErrMalformedPacket = errors.New("malformed packet")
	ErrTransport       = errors.New("transport failure")

	ErrNotAuthenticated = errors.New("session not authenticated")
	ErrClosed           = errors.New("session closed")
	ErrInvalidBody      = errors.New("body is not valid UTF-8")
	ErrCommandTooLong   = errors.New("command too long")
)

// OpError records the operation that failed, its kind and the underlying cause.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Timeout reports whether the operation failed because no data arrived in time.
func (e *OpError) Timeout() bool {
	return e.Kind == ErrTimeout
}

func opError(op string, kind, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// dialCause turns a dial error into a short human-readable cause.
func dialCause(err error) error {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("server is not reachable, connection refused: %w", err)
	case isTimeout(err):
		return fmt.Errorf("no answer before timeout: %w", err)
	default:
		return fmt.Errorf("socket error: %w", err)
	}
}
