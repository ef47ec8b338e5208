// Package i3ipc talks to a running i3 over its unix-socket IPC protocol.
package i3ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"
)

// DefaultTimeout bounds connecting to i3 and each request.
const DefaultTimeout = 5 * time.Second

// CommandResult is i3's per-command outcome of a RUN_COMMAND message.
type CommandResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CommandError reports a command i3 refused.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("i3 command %q failed", e.Command)
	}
	return fmt.Sprintf("i3 command %q failed: %s", e.Command, e.Message)
}

// Client sends messages to i3. Each request uses its own connection.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient returns a client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: DefaultTimeout}
}

// SocketPath returns the socket the client connects to.
func (c *Client) SocketPath() string { return c.socketPath }

// WithTimeout returns a copy of c using timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	cp := *c
	cp.timeout = timeout
	return &cp
}

func (c *Client) roundTrip(ctx context.Context, msg Message) (Message, error) {
	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return Message{}, fmt.Errorf("failed to connect to i3 at %s: %w", c.socketPath, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetDeadline(deadline)

	if err := WriteMessage(conn, msg); err != nil {
		return Message{}, err
	}
	reply, err := ReadMessage(conn)
	if err != nil {
		return Message{}, err
	}
	if reply.Type != msg.Type {
		return Message{}, fmt.Errorf("unexpected i3 reply type %d for request type %d", reply.Type, msg.Type)
	}
	return reply, nil
}

// RunCommand sends a RUN_COMMAND message and returns i3's results.
func (c *Client) RunCommand(ctx context.Context, command string) ([]CommandResult, error) {
	reply, err := c.roundTrip(ctx, Message{Type: MessageRunCommand, Payload: []byte(command)})
	if err != nil {
		return nil, err
	}
	var results []CommandResult
	if err := json.Unmarshal(reply.Payload, &results); err != nil {
		return nil, fmt.Errorf("failed to parse i3 reply: %w", err)
	}
	return results, nil
}

// Command runs command and fails unless i3 reports success for all of it.
func (c *Client) Command(ctx context.Context, command string) error {
	results, err := c.RunCommand(ctx, command)
	if err != nil {
		return err
	}
	var failures []string
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r.Error)
		}
	}
	if len(failures) > 0 {
		return &CommandError{Command: command, Message: strings.Join(failures, "; ")}
	}
	return nil
}

// Version holds the reply to GET_VERSION.
type Version struct {
	Major         int    `json:"major"`
	Minor         int    `json:"minor"`
	Patch         int    `json:"patch"`
	HumanReadable string `json:"human_readable"`
}

// Version asks i3 for its version. It doubles as a connectivity check.
func (c *Client) Version(ctx context.Context) (*Version, error) {
	reply, err := c.roundTrip(ctx, Message{Type: MessageGetVersion})
	if err != nil {
		return nil, err
	}
	var v Version
	if err := json.Unmarshal(reply.Payload, &v); err != nil {
		return nil, fmt.Errorf("failed to parse i3 version: %w", err)
	}
	return &v, nil
}
