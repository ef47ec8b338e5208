package verify

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/1broseidon/wmproj/internal/configfile"
	"github.com/google/go-cmp/cmp"
)

type scriptedKeys struct {
	keys []rune
}

func (s *scriptedKeys) ReadKey() (rune, error) {
	if len(s.keys) == 0 {
		return 0, errors.New("no more keys")
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

type fakeEntity struct {
	name string
	errs []error
	n    *int
}

func (f fakeEntity) Name() string { return f.name }
func (f fakeEntity) Path() string { return "/tmp/" + f.name }
func (f fakeEntity) Verify() error {
	i := *f.n
	*f.n++
	if i < len(f.errs) {
		return f.errs[i]
	}
	return nil
}

func TestLoop_PassesFirstTime(t *testing.T) {
	calls := 0
	var out bytes.Buffer
	l := &Loop{Keys: &scriptedKeys{}, Out: &out, Reopen: func(e configfile.Entity) (configfile.Entity, error) {
		t.Fatal("Reopen called for a valid entity")
		return e, nil
	}}

	if err := l.Run(fakeEntity{name: "ok", n: &calls}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLoop_AcceptAfterFailure(t *testing.T) {
	calls := 0
	var out bytes.Buffer
	var transitions []State
	l := &Loop{
		Keys: &scriptedKeys{keys: []rune{'x', '\n', 'A'}},
		Out:  &out,
		Reopen: func(e configfile.Entity) (configfile.Entity, error) {
			t.Fatal("Reopen called after accept")
			return e, nil
		},
		OnTransition: func(_, to State, _ configfile.Entity) { transitions = append(transitions, to) },
	}

	err := l.Run(fakeEntity{name: "web", errs: []error{errors.New("path doesn't exist")}, n: &calls})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Verify() calls = %d, want 1", calls)
	}
	if diff := cmp.Diff([]State{StateFailedAwaitingChoice, StateAccepted}, transitions); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Count(out.String(), "Press 'r'"); got != 3 {
		t.Fatalf("prompt shown %d times, want 3:\n%s", got, out.String())
	}
	if !strings.Contains(out.String(), "path doesn't exist") {
		t.Fatalf("failure not reported:\n%s", out.String())
	}
}

func TestLoop_RetryUntilValid(t *testing.T) {
	calls := 0
	reopened := 0
	var transitions []State
	l := &Loop{
		Keys: &scriptedKeys{keys: []rune{'r', 'R'}},
		Out:  &bytes.Buffer{},
		Reopen: func(e configfile.Entity) (configfile.Entity, error) {
			reopened++
			return e, nil
		},
		OnTransition: func(_, to State, _ configfile.Entity) { transitions = append(transitions, to) },
	}

	errs := []error{errors.New("one"), errors.New("two")}
	if err := l.Run(fakeEntity{name: "web", errs: errs, n: &calls}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if calls != 3 || reopened != 2 {
		t.Fatalf("Verify() calls = %d, reopens = %d; want 3 and 2", calls, reopened)
	}
	want := []State{
		StateFailedAwaitingChoice, StateRetried, StateVerifying,
		StateFailedAwaitingChoice, StateRetried, StateVerifying,
	}
	if diff := cmp.Diff(want, transitions); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestLoop_Errors(t *testing.T) {
	calls := 0
	failing := fakeEntity{name: "web", errs: []error{errors.New("bad")}, n: &calls}

	l := &Loop{Keys: &scriptedKeys{keys: []rune{3}}, Out: &bytes.Buffer{}}
	if err := l.Run(failing); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("ctrl-c: error = %v, want ErrInterrupted", err)
	}

	calls = 0
	l = &Loop{Keys: &scriptedKeys{}, Out: &bytes.Buffer{}}
	if err := l.Run(failing); err == nil {
		t.Fatal("exhausted keys: expected error")
	}

	calls = 0
	editorErr := errors.New("editor not found")
	l = &Loop{Keys: &scriptedKeys{keys: []rune{'r'}}, Out: &bytes.Buffer{}, Reopen: func(configfile.Entity) (configfile.Entity, error) {
		return nil, editorErr
	}}
	if err := l.Run(failing); !errors.Is(err, editorErr) {
		t.Fatalf("reopen failure: error = %v, want %v", err, editorErr)
	}
}

func TestTerminalKeyReader_NonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe() error: %v", err)
	}
	defer r.Close()
	w.WriteString("ra")
	w.Close()

	keys := &TerminalKeyReader{File: r}
	for _, want := range []rune{'r', 'a'} {
		got, err := keys.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey() error: %v", err)
		}
		if got != want {
			t.Fatalf("ReadKey() = %q, want %q", got, want)
		}
	}
	if _, err := keys.ReadKey(); err == nil {
		t.Fatal("ReadKey() at EOF expected error")
	}
}
