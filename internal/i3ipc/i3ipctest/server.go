// Package i3ipctest provides an in-process stand-in for i3's IPC socket.
package i3ipctest

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/1broseidon/wmproj/internal/i3ipc"
)

// Server records RUN_COMMAND payloads and answers them.
type Server struct {
	// Fail decides whether a command is refused; the returned string is
	// i3's error message. Nil accepts everything.
	Fail func(command string) (string, bool)

	listener net.Listener
	path     string

	mu       sync.Mutex
	commands []string
	wg       sync.WaitGroup
}

// NewServer listens on a socket in a temporary directory and stops when the
// test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	// Unix socket paths are length limited, so avoid t.TempDir's long names.
	dir, err := os.MkdirTemp("", "i3ipc")
	if err != nil {
		t.Fatalf("i3ipctest: %v", err)
	}
	path := filepath.Join(dir, "sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("i3ipctest: listen: %v", err)
	}

	s := &Server{listener: ln, path: path}
	s.wg.Add(1)
	go s.acceptLoop()

	t.Cleanup(func() {
		ln.Close()
		s.wg.Wait()
		os.RemoveAll(dir)
	})
	return s
}

// SocketPath is the path clients should dial.
func (s *Server) SocketPath() string { return s.path }

// Commands returns the commands received so far, in order.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	for {
		msg, err := i3ipc.ReadMessage(conn)
		if err != nil {
			return
		}
		reply := i3ipc.Message{Type: msg.Type}
		switch msg.Type {
		case i3ipc.MessageRunCommand:
			reply.Payload = s.runCommand(string(msg.Payload))
		case i3ipc.MessageGetVersion:
			reply.Payload, _ = json.Marshal(i3ipc.Version{Major: 4, Minor: 23, HumanReadable: "4.23 (i3ipctest)"})
		default:
			reply.Payload = []byte(`{"success":false,"error":"unsupported message type"}`)
		}
		if err := i3ipc.WriteMessage(conn, reply); err != nil {
			return
		}
	}
}

func (s *Server) runCommand(command string) []byte {
	s.mu.Lock()
	s.commands = append(s.commands, command)
	s.mu.Unlock()

	result := i3ipc.CommandResult{Success: true}
	if s.Fail != nil {
		if msg, failed := s.Fail(command); failed {
			result = i3ipc.CommandResult{Success: false, Error: msg}
		}
	}
	data, _ := json.Marshal([]i3ipc.CommandResult{result})
	return data
}
