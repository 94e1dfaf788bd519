package rcon

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// Transport owns a single TCP connection to an RCON server. It is not safe
// for concurrent use.
type Transport struct {
	conn    net.Conn
	addr    string
	timeout time.Duration
}

// Dial opens a TCP connection to host:port. The timeout bounds the connect
// and every later read and write.
func Dial(host, port string, timeout time.Duration) (*Transport, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, opError("connect "+address, ErrConnection, dialCause(err))
	}

	// Disable Nagle's algorithm, packets are small and latency bound
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetNoDelay(true)
	}

	return &Transport{
		conn:    conn,
		addr:    address,
		timeout: timeout,
	}, nil
}

// Addr returns the remote address the transport was dialed with.
func (t *Transport) Addr() string {
	return t.addr
}

// Send writes the whole frame or returns an error.
func (t *Transport) Send(frame []byte) error {
	if t == nil || t.conn == nil {
		return opError("send", ErrTransport, net.ErrClosed)
	}

	t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	defer t.conn.SetWriteDeadline(time.Time{})

	// net.Conn.Write returns a non-nil error on a short write
	n, err := t.conn.Write(frame)
	if err != nil {
		if isTimeout(err) {
			return opError("send", ErrTimeout, fmt.Errorf("wrote %d of %d bytes: %w", n, len(frame), err))
		}
		return opError("send", ErrTransport, fmt.Errorf("wrote %d of %d bytes: %w", n, len(frame), err))
	}
	return nil
}

// ReceiveOne performs a single bounded read of at most maxBytes. It does
// not loop to assemble a frame split across TCP segments.
func (t *Transport) ReceiveOne(maxBytes int) ([]byte, error) {
	if t == nil || t.conn == nil {
		return nil, opError("receive", ErrTransport, net.ErrClosed)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultReadSize
	}

	t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	defer t.conn.SetReadDeadline(time.Time{})

	buf := make([]byte, maxBytes)
	n, err := t.conn.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}

	switch {
	case err == nil:
		return nil, opError("receive", ErrTransport, io.ErrNoProgress)
	case isTimeout(err):
		return nil, opError("receive", ErrTimeout, fmt.Errorf("no response within %s", t.timeout))
	case errors.Is(err, io.EOF):
		return nil, opError("receive", ErrTransport, fmt.Errorf("connection closed by server: %w", err))
	default:
		return nil, opError("receive", ErrTransport, err)
	}
}

// Close releases the connection. It is safe to call more than once and on
// a nil Transport.
func (t *Transport) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
