package rcon

import (
	"net"
	"testing"
	"time"

	gorcon "github.com/gorcon/rcon"
	"github.com/gorcon/rcon/rcontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleAuthResponse answers the login with one packet, since Session reads
// the handshake reply with a single receive.
func singleAuthResponse(c *rcontest.Context) {
	id := c.Request().ID
	if c.Request().Body() != c.Server().Settings.Password {
		id = -1
	}
	gorcon.NewPacket(gorcon.SERVERDATA_AUTH_RESPONSE, id, "").WriteTo(c.Conn())
}

func newInteropServer(t *testing.T) (host, port string) {
	t.Helper()

	server := rcontest.NewServer(
		rcontest.SetSettings(rcontest.Settings{Password: "12345"}),
		rcontest.SetAuthHandler(singleAuthResponse),
		rcontest.SetCommandHandler(func(c *rcontest.Context) {
			switch c.Request().Body() {
			case "listplayers":
				gorcon.NewPacket(gorcon.SERVERDATA_RESPONSE_VALUE, c.Request().ID, "No players").WriteTo(c.Conn())
			default:
				gorcon.NewPacket(gorcon.SERVERDATA_RESPONSE_VALUE, c.Request().ID, "unknown command").WriteTo(c.Conn())
			}
		}),
	)
	t.Cleanup(func() { server.Close() })

	host, port, err := net.SplitHostPort(server.Addr())
	require.NoError(t, err)
	return host, port
}

func TestInteropWithReferenceServer(t *testing.T) {
	host, port := newInteropServer(t)

	err := WithSession(Config{Host: host, Port: port, Password: "12345", Timeout: 2 * time.Second}, func(s *Session) error {
		resp, err := s.Command("listplayers")
		if err != nil {
			return err
		}
		assert.Equal(t, "No players", resp.Body)
		assert.Equal(t, int32(gorcon.SERVERDATA_RESPONSE_VALUE), resp.Type)
		assert.Equal(t, int32(2), resp.ID)

		body, err := s.Exec("help")
		if err != nil {
			return err
		}
		assert.Equal(t, "unknown command", body)
		return nil
	})
	require.NoError(t, err)
}

func TestInteropRejectedPassword(t *testing.T) {
	host, port := newInteropServer(t)

	_, err := Open(Config{Host: host, Port: port, Password: "wrong", Timeout: 2 * time.Second})
	assert.ErrorIs(t, err, ErrAuth)
}
