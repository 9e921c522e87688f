package cli

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"seabattle/internal/protocol"
)

// Client sends one newline-framed request per invocation and reads the
// single reply frame back.
type Client struct {
	addr    string
	timeout time.Duration
}

// NewClient creates a client for the given server address
func NewClient(addr string) *Client {
	return &Client{
		addr:    addr,
		timeout: 30 * time.Second,
	}
}

// Exchange sends one request and returns the decoded reply batch. The first
// message is the direct reply, the rest are queued notifications the server
// piggy-backed onto it.
func (c *Client) Exchange(msg protocol.Message) ([]protocol.Message, error) {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", c.addr, err)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if _, err := conn.Write([]byte(msg.Encode() + "\n")); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	line = line[:len(line)-1]

	parts := protocol.SplitBatch(line)
	replies := make([]protocol.Message, 0, len(parts))
	for _, part := range parts {
		replies = append(replies, protocol.Decode(part))
	}

	if len(replies) > 0 && replies[0].Op == protocol.OpFailure {
		return replies, fmt.Errorf("server rejected the request")
	}
	return replies, nil
}
