// Package x11 reads the X root window properties wmproj needs.
package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
)

// I3SocketProperty is the root window property i3 stores its socket in.
const I3SocketProperty = "I3_SOCKET_PATH"

// Connection wraps an X connection and its root window.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the display named by $DISPLAY.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	return &Connection{XUtil: xu, Root: xu.RootWin()}, nil
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// RootProperty returns a string property of the root window.
func (c *Connection) RootProperty(name string) (string, error) {
	value, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.Root, name))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return strings.TrimRight(value, "\x00"), nil
}

// I3SocketPath connects, reads I3_SOCKET_PATH and disconnects.
func I3SocketPath() (string, error) {
	c, err := NewConnection()
	if err != nil {
		return "", err
	}
	defer c.Close()
	return c.RootProperty(I3SocketProperty)
}
