package rcon

import (
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubServer accepts connections on loopback and hands each one to handle.
type stubServer struct {
	host string
	port string
	// done receives once per finished handler.
	done chan struct{}
}

func startStub(t *testing.T, handle func(conn net.Conn)) *stubServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	s := &stubServer{host: host, port: port, done: make(chan struct{}, 8)}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				defer func() { s.done <- struct{}{} }()
				conn.SetDeadline(time.Now().Add(10 * time.Second))
				handle(conn)
			}()
		}
	}()
	return s
}

func (s *stubServer) config(password string) Config {
	return Config{Host: s.host, Port: s.port, Password: password, Timeout: 2 * time.Second}
}

func (s *stubServer) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatal("stub handler did not finish")
	}
}

type stubPacket struct {
	ID   int32
	Type int32
	Body string
}

// readStubPacket reads one complete frame as a server would.
func readStubPacket(conn net.Conn) (stubPacket, error) {
	var size int32
	if err := binary.Read(conn, binary.LittleEndian, &size); err != nil {
		return stubPacket{}, err
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(conn, payload); err != nil {
		return stubPacket{}, err
	}
	return stubPacket{
		ID:   int32(binary.LittleEndian.Uint32(payload[0:4])),
		Type: int32(binary.LittleEndian.Uint32(payload[4:8])),
		Body: string(payload[8 : size-2]),
	}, nil
}

func writeStubPacket(t *testing.T, conn net.Conn, id, ptype int32, body string) {
	buf, err := Encode(id, ptype, body)
	if !assert.NoError(t, err) {
		return
	}
	_, err = conn.Write(buf)
	assert.NoError(t, err)
}

// acceptAuth answers the login with replyID and returns the request.
func acceptAuth(t *testing.T, conn net.Conn, replyID int32) stubPacket {
	req, err := readStubPacket(conn)
	if !assert.NoError(t, err) {
		return req
	}
	writeStubPacket(t, conn, replyID, TypeAuthResponse, "")
	return req
}

// waitForClose blocks until the peer closes the connection.
func waitForClose(conn net.Conn) error {
	buf := make([]byte, 64)
	for {
		if _, err := conn.Read(buf); err != nil {
			return err
		}
	}
}
