package testutil

import (
	"net"
	"testing"
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
	"github.com/stretchr/testify/require"
)

// Client is an in-test LIFX client talking to a running emulator over a
// loopback UDP socket.
type Client struct {
	t      *testing.T
	conn   *net.UDPConn
	server *net.UDPAddr
}

// NewClient binds a client socket pointed at the emulator's address.
func NewClient(t *testing.T, serverPort int) *Client {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &Client{
		t:      t,
		conn:   conn,
		server: &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: serverPort},
	}
}

// Send marshals and transmits a message to the emulator.
func (c *Client) Send(msg *protocol.Message) {
	c.t.Helper()

	data, err := msg.MarshalBinary()
	require.NoError(c.t, err)

	_, err = c.conn.WriteToUDP(data, c.server)
	require.NoError(c.t, err)
}

// SendRaw transmits raw bytes, for datagrams no well-formed message can
// express.
func (c *Client) SendRaw(data []byte) {
	c.t.Helper()
	_, err := c.conn.WriteToUDP(data, c.server)
	require.NoError(c.t, err)
}

// Receive reads one response message, failing the test on timeout.
func (c *Client) Receive(timeout time.Duration) *protocol.Message {
	c.t.Helper()

	msg, ok := c.TryReceive(timeout)
	require.True(c.t, ok, "timed out waiting for a response")
	return msg
}

// TryReceive reads one response message, reporting false on timeout.
func (c *Client) TryReceive(timeout time.Duration) (*protocol.Message, bool) {
	c.t.Helper()

	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(timeout)))

	buf := make([]byte, 2048)
	n, _, err := c.conn.ReadFromUDP(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, false
		}
		require.NoError(c.t, err)
	}

	var msg protocol.Message
	require.NoError(c.t, msg.UnmarshalBinary(buf[:n]))
	return &msg, true
}

// ReceiveAll drains responses until the wire stays quiet for timeout.
func (c *Client) ReceiveAll(timeout time.Duration) []*protocol.Message {
	c.t.Helper()

	var msgs []*protocol.Message
	for {
		msg, ok := c.TryReceive(timeout)
		if !ok {
			return msgs
		}
		msgs = append(msgs, msg)
	}
}
