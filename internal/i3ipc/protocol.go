package i3ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic starts every i3 IPC message.
const Magic = "i3-ipc"

// MessageType is the i3 IPC message type.
type MessageType uint32

const (
	MessageRunCommand MessageType = 0
	MessageGetVersion MessageType = 7
)

const headerLen = len(Magic) + 8

// maxPayload bounds replies so a misbehaving peer cannot exhaust memory.
const maxPayload = 64 << 20

// ErrBadMagic is returned for frames that do not start with Magic.
var ErrBadMagic = errors.New("invalid i3 ipc magic")

// Message is one framed i3 IPC message.
type Message struct {
	Type    MessageType
	Payload []byte
}

// WriteMessage frames and writes msg. i3 uses the host byte order.
func WriteMessage(w io.Writer, msg Message) error {
	buf := make([]byte, headerLen+len(msg.Payload))
	copy(buf, Magic)
	binary.NativeEndian.PutUint32(buf[len(Magic):], uint32(len(msg.Payload)))
	binary.NativeEndian.PutUint32(buf[len(Magic)+4:], uint32(msg.Type))
	copy(buf[headerLen:], msg.Payload)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to send i3 message: %w", err)
	}
	return nil
}

// ReadMessage reads one framed message.
func ReadMessage(r io.Reader) (Message, error) {
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return Message{}, fmt.Errorf("failed to read i3 message header: %w", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return Message{}, ErrBadMagic
	}
	n := binary.NativeEndian.Uint32(header[len(Magic):])
	if n > maxPayload {
		return Message{}, fmt.Errorf("i3 message too large: %d bytes", n)
	}
	typ := MessageType(binary.NativeEndian.Uint32(header[len(Magic)+4:]))

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Message{}, fmt.Errorf("failed to read i3 message payload: %w", err)
	}
	return Message{Type: typ, Payload: payload}, nil
}
