package rcon

import "fmt"

// State is the authentication state of a Session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// authenticate sends one auth packet and reads one response. The server
// rejects by answering with id -1; any other id counts as success, even one
// that does not match the request.
func authenticate(t *Transport, id int32, password string, readSize int) (*Response, bool, error) {
	packet := &Packet{
		ID:   id,
		Type: TypeAuth,
		Body: password,
	}

	frame, err := packet.Encode()
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode auth packet: %w", err)
	}

	if err := t.Send(frame); err != nil {
		return nil, false, fmt.Errorf("failed to send auth packet: %w", err)
	}

	raw, err := t.ReceiveOne(readSize)
	if err != nil {
		return nil, false, fmt.Errorf("failed to receive auth response: %w", err)
	}

	response, err := Decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode auth response: %w", err)
	}

	return response, response.ID != authFailureID, nil
}
