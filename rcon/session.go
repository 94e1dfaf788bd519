package rcon

import (
	"errors"
	"fmt"
	"math"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is an authenticated RCON connection. A Session is owned by one
// caller and must not be shared between goroutines; open several sessions
// to run commands concurrently.
type Session struct {
	config    Config
	transport *Transport
	requestID int32
	state     State
	log       zerolog.Logger
}

// NewSession creates an unconnected session. Call Connect and Authenticate,
// or use Open to do both.
func NewSession(config Config) *Session {
	config = config.withDefaults()
	return &Session{
		config: config,
		state:  StateUnauthenticated,
		log: config.logger().With().
			Str("session", uuid.NewString()).
			Str("addr", net.JoinHostPort(config.Host, config.Port)).
			Logger(),
	}
}

// Open connects and authenticates. On any failure the connection is closed
// before the error is returned.
func Open(config Config) (*Session, error) {
	s := NewSession(config)
	if err := s.Connect(); err != nil {
		return nil, err
	}
	if err := s.Authenticate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// WithSession opens a session, runs fn and always closes the session
// afterwards, also when fn returns an error or panics.
func WithSession(config Config, fn func(*Session) error) (err error) {
	s, err := Open(config)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// Connect opens the TCP connection.
func (s *Session) Connect() error {
	switch s.state {
	case StateClosed:
		return opError("connect", ErrClosed, nil)
	case StateFailed:
		return opError("connect", ErrNotAuthenticated, errors.New("authentication failed, open a new session"))
	}
	if s.transport != nil {
		return nil
	}

	s.log.Debug().Dur("timeout", s.config.Timeout).Msg("connecting")
	t, err := Dial(s.config.Host, s.config.Port, s.config.Timeout)
	if err != nil {
		s.log.Debug().Err(err).Msg("connect failed")
		return err
	}
	s.transport = t
	s.log.Info().Str("remote", t.Addr()).Msg("connection established")
	return nil
}

// Authenticate performs the login exchange. It may only run once per
// session; a rejected or failed session must be discarded.
func (s *Session) Authenticate() error {
	switch {
	case s.state == StateClosed:
		return opError("authenticate", ErrClosed, nil)
	case s.state != StateUnauthenticated:
		return opError("authenticate", ErrNotAuthenticated,
			fmt.Errorf("authentication already attempted, state is %s", s.state))
	case s.transport == nil:
		return opError("authenticate", ErrTransport, errors.New("not connected"))
	}

	s.state = StateAuthenticating
	id := s.nextRequestID()

	response, ok, err := authenticate(s.transport, id, s.config.Password, s.config.ReadSize)
	if err != nil {
		s.state = StateFailed
		s.closeTransport()
		return wrapOp("authenticate", err)
	}
	if !ok {
		s.state = StateFailed
		s.closeTransport()
		s.log.Warn().Msg("authentication failed: incorrect password")
		return opError("authenticate", ErrAuth, errors.New("incorrect password"))
	}

	s.state = StateAuthenticated
	s.log.Info().
		Int32("request_id", id).
		Int32("response_id", response.ID).
		Msg("authentication successful")
	return nil
}

// Command sends text as an exec-command packet and returns the decoded
// response from a single read. The response id is not checked against
// the request id, so a reply that arrives after a timeout is read by the
// next command. Large responses split across segments come back Truncated.
func (s *Session) Command(text string) (*Response, error) {
	if s == nil {
		return nil, opError("command", ErrNotAuthenticated, nil)
	}
	switch s.state {
	case StateAuthenticated:
	case StateClosed:
		return nil, opError("command", ErrClosed, nil)
	default:
		return nil, opError("command", ErrNotAuthenticated, fmt.Errorf("state is %s", s.state))
	}

	if len(text) > MaxCommandLength {
		return nil, opError("command", ErrCommandTooLong,
			fmt.Errorf("%d bytes, maximum is %d", len(text), MaxCommandLength))
	}

	packet := &Packet{
		ID:   s.nextRequestID(),
		Type: TypeExecCommand,
		Body: text,
	}

	frame, err := packet.Encode()
	if err != nil {
		return nil, wrapOp("command", err)
	}

	if err := s.transport.Send(frame); err != nil {
		return nil, wrapOp("command", fmt.Errorf("failed to send command: %w", err))
	}
	s.log.Debug().Int32("request_id", packet.ID).Str("command", text).Msg("command sent")

	raw, err := s.transport.ReceiveOne(s.config.ReadSize)
	if err != nil {
		return nil, wrapOp("command", fmt.Errorf("failed to receive response: %w", err))
	}

	response, err := Decode(raw)
	if err != nil {
		return nil, wrapOp("command", err)
	}

	s.log.Debug().
		Int32("response_id", response.ID).
		Int32("type", response.Type).
		Int32("size", response.Size).
		Bool("truncated", response.Truncated).
		Bool("binary", response.Binary).
		Msg("response received")
	return response, nil
}

// Exec runs a command and returns its body as text.
func (s *Session) Exec(text string) (string, error) {
	response, err := s.Command(text)
	if err != nil {
		return "", err
	}
	return response.Text(), nil
}

// State reports the session's authentication state.
func (s *Session) State() State {
	if s == nil {
		return StateClosed
	}
	return s.state
}

// Close releases the connection. It is safe on a nil, never-connected or
// already closed session.
func (s *Session) Close() error {
	if s == nil || s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	if err := s.closeTransport(); err != nil {
		return opError("close", ErrTransport, err)
	}
	return nil
}

func (s *Session) closeTransport() error {
	if s.transport == nil {
		return nil
	}
	err := s.transport.Close()
	s.transport = nil
	s.log.Info().Msg("connection closed")
	return err
}

// nextRequestID returns the next id of this session's counter. The first
// request uses 1; the counter never produces the auth failure id.
func (s *Session) nextRequestID() int32 {
	if s.requestID == math.MaxInt32 {
		s.requestID = 0
	}
	s.requestID++
	return s.requestID
}

// wrapOp names the outer operation. The *OpError underneath keeps its kind.
func wrapOp(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
