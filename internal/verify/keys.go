package verify

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalKeyReader reads one key at a time from a file. When the file is a
// terminal it is switched to raw mode for the duration of each read.
type TerminalKeyReader struct {
	File *os.File
}

// NewTerminalKeyReader reads from stdin.
func NewTerminalKeyReader() *TerminalKeyReader {
	return &TerminalKeyReader{File: os.Stdin}
}

// ReadKey reads a single byte.
func (r *TerminalKeyReader) ReadKey() (rune, error) {
	fd := int(r.File.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return 0, fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(fd, old)
	}

	buf := make([]byte, 1)
	if _, err := io.ReadFull(r.File, buf); err != nil {
		return 0, fmt.Errorf("failed to read key: %w", err)
	}
	return rune(buf[0]), nil
}
