package i3ipc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrSocketNotFound is returned when no i3 socket path could be determined.
var ErrSocketNotFound = errors.New("could not determine the i3 ipc socket path")

// Locator finds the i3 IPC socket. Sources are tried in order: Explicit,
// $I3SOCK, the I3_SOCKET_PATH property on the X root window, and finally
// `i3 --get-socketpath`.
type Locator struct {
	Explicit string
	// RootProperty reads I3_SOCKET_PATH from the X root window. Nil skips
	// the lookup.
	RootProperty func() (string, error)
	// Binary is the i3 executable; empty means "i3".
	Binary string
}

// SocketPath returns the first socket path found.
func (l Locator) SocketPath(ctx context.Context) (string, error) {
	if l.Explicit != "" {
		return l.Explicit, nil
	}
	if env := strings.TrimSpace(os.Getenv("I3SOCK")); env != "" {
		return env, nil
	}

	var errs []error
	if l.RootProperty != nil {
		path, err := l.RootProperty()
		if err == nil && strings.TrimSpace(path) != "" {
			return strings.TrimSpace(path), nil
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("x11: %w", err))
		}
	}

	bin := l.Binary
	if bin == "" {
		bin = "i3"
	}
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--get-socketpath")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		errs = append(errs, fmt.Errorf("%s --get-socketpath: %w", bin, err))
	} else if path := strings.TrimSpace(stdout.String()); path != "" {
		return path, nil
	}

	if len(errs) == 0 {
		return "", ErrSocketNotFound
	}
	return "", fmt.Errorf("%w: %w", ErrSocketNotFound, errors.Join(errs...))
}

// Connect locates the socket and returns a client for it.
func (l Locator) Connect(ctx context.Context) (*Client, error) {
	path, err := l.SocketPath(ctx)
	if err != nil {
		return nil, err
	}
	return NewClient(path), nil
}
