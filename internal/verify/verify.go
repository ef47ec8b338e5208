// Package verify runs the interactive check that follows creating or editing
// a project or layout: on failure the user either reopens the file to fix it
// or accepts it as is.
package verify

import (
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/1broseidon/wmproj/internal/configfile"
)

// ErrInterrupted is returned when the user aborts the prompt.
var ErrInterrupted = errors.New("interrupted")

// State is a step of the verify loop.
type State int

const (
	StateVerifying State = iota
	StateFailedAwaitingChoice
	StateRetried
	StateAccepted
)

func (s State) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateFailedAwaitingChoice:
		return "failed"
	case StateRetried:
		return "retried"
	case StateAccepted:
		return "accepted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// KeyReader returns single key presses without waiting for a newline.
type KeyReader interface {
	ReadKey() (rune, error)
}

// ReopenFunc lets the user fix e (usually in an editor) and returns a fresh
// handle to verify next.
type ReopenFunc func(e configfile.Entity) (configfile.Entity, error)

// Loop drives the verify state machine.
type Loop struct {
	Keys   KeyReader
	Out    io.Writer
	Reopen ReopenFunc
	// OnTransition, if set, observes every state change.
	OnTransition func(from, to State, e configfile.Entity)
}

// Run verifies e until it passes or the user accepts it. It returns nil in
// both cases; errors come from reading keys or reopening.
func (l *Loop) Run(e configfile.Entity) error {
	state := StateVerifying
	var verifyErr error

	set := func(next State) {
		if l.OnTransition != nil {
			l.OnTransition(state, next, e)
		}
		state = next
	}

	for {
		switch state {
		case StateVerifying:
			verifyErr = e.Verify()
			if verifyErr == nil {
				return nil
			}
			set(StateFailedAwaitingChoice)

		case StateFailedAwaitingChoice:
			fmt.Fprintf(l.Out, "\nVerification of '%s' failed:\n  %v\n\n", e.Name(), verifyErr)
			key, err := l.choose()
			if err != nil {
				return err
			}
			if key == 'a' {
				set(StateAccepted)
			} else {
				set(StateRetried)
			}

		case StateRetried:
			fresh, err := l.Reopen(e)
			if err != nil {
				return err
			}
			e = fresh
			set(StateVerifying)

		case StateAccepted:
			return nil
		}
	}
}

// choose prompts until the user presses r or a.
func (l *Loop) choose() (rune, error) {
	for {
		fmt.Fprint(l.Out, "Press 'r' to reopen the file or 'a' to accept it anyway: ")
		key, err := l.Keys.ReadKey()
		if err != nil {
			fmt.Fprintln(l.Out)
			return 0, err
		}
		if key == 3 { // ctrl-c in raw mode
			fmt.Fprintln(l.Out)
			return 0, ErrInterrupted
		}
		key = unicode.ToLower(key)
		fmt.Fprintf(l.Out, "%c\n", key)
		if key == 'r' || key == 'a' {
			return key, nil
		}
	}
}
