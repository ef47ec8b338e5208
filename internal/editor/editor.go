// Package editor opens files in the user's editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrEditorNotFound is returned when neither $VISUAL nor $EDITOR is set.
var ErrEditorNotFound = errors.New("cannot find an editor: neither $VISUAL nor $EDITOR is set")

// Command returns the editor command line from $VISUAL, then $EDITOR. The
// value is split like a shell would, so "code --wait" works.
func Command() ([]string, error) {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		value := strings.TrimSpace(os.Getenv(env))
		if value == "" {
			continue
		}
		words, err := shellquote.Split(value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse $%s: %w", env, err)
		}
		if len(words) > 0 {
			return words, nil
		}
	}
	return nil, ErrEditorNotFound
}

// Open runs the editor on paths attached to the current terminal and waits
// for it to exit.
func Open(paths ...string) error {
	words, err := Command()
	if err != nil {
		return err
	}

	cmd := exec.Command(words[0], append(words[1:], paths...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
