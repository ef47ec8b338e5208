//go:build !windows

package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/wmproj/internal/actionlog"
	"github.com/1broseidon/wmproj/internal/config"
	"github.com/1broseidon/wmproj/internal/i3ipc"
	"github.com/1broseidon/wmproj/internal/i3ipc/i3ipctest"
	"github.com/1broseidon/wmproj/internal/input"
	"github.com/1broseidon/wmproj/internal/layout"
	"github.com/1broseidon/wmproj/internal/project"
)

type scriptedKeys struct {
	keys []rune
}

func (s *scriptedKeys) ReadKey() (rune, error) {
	if len(s.keys) == 0 {
		return 0, io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

type testEnv struct {
	app       *app
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	keys      *scriptedKeys
	i3        *i3ipctest.Server
	edits     []string
	onEdit    func(n int, path string)
	actionLog string
	xdoLog    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		keys:   &scriptedKeys{},
		i3:     i3ipctest.NewServer(t),
	}

	stateDir := t.TempDir()
	env.actionLog = filepath.Join(stateDir, "actions.log")
	actions, err := actionlog.Open(actionlog.Config{
		Enabled:   true,
		Level:     actionlog.LevelDebug,
		FilePath:  env.actionLog,
		MaxSizeMB: 1,
		MaxFiles:  1,
	})
	if err != nil {
		t.Fatalf("actionlog.Open() error: %v", err)
	}
	t.Cleanup(func() { actions.Close() })

	xdotool := setupStubXdotool(t)
	env.xdoLog = xdotool + ".log"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := filepath.Join(configHome, "wmproj")
	layouts := layout.NewStore(base)

	env.app = &app{
		settings: config.DefaultConfig(),
		projects: project.NewStore(base, layouts, time.Second),
		layouts:  layouts,
		logger:   logger,
		actions:  actions,
		stdin:    os.Stdin,
		stdout:   env.stdout,
		stderr:   env.stderr,
		keys:     env.keys,
		edit: func(paths ...string) error {
			for _, p := range paths {
				env.edits = append(env.edits, p)
				if env.onEdit != nil {
					env.onEdit(len(env.edits), p)
				}
			}
			return nil
		},
		connect: func(context.Context) (project.Commander, error) {
			return i3ipc.NewClient(env.i3.SocketPath()), nil
		},
		input:       input.NewDriver(xdotool, logger),
		interactive: func() bool { return false },
	}
	return env
}

// setupStubXdotool installs a fake xdotool next to its log file. When
// XDOTOOL_STUB_HANG_ON matches an argument the stub hangs.
func setupStubXdotool(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	binary := filepath.Join(dir, "xdotool")
	script := `#!/bin/sh
printf '%s\n' "$*" >> "` + binary + `.log"
if [ -n "${XDOTOOL_STUB_HANG_ON:-}" ]; then
  for arg in "$@"; do
    if [ "$arg" = "$XDOTOOL_STUB_HANG_ON" ]; then
      exec sleep 30
    fi
  done
fi
exit 0
`
	if err := os.WriteFile(binary, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write xdotool stub: %v", err)
	}
	return binary
}

func (env *testEnv) projects() projectKind { return projectKind{store: env.app.projects} }

func (env *testEnv) layoutKind() layoutKind { return layoutKind{store: env.app.layouts} }

func (env *testEnv) writeProject(t *testing.T, name, body string) string {
	t.Helper()
	p, err := env.app.projects.CreateFromTemplate(name, []byte(body))
	if err != nil {
		t.Fatalf("CreateFromTemplate(%q) error: %v", name, err)
	}
	return p.Path()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error: %v", path, err)
	}
	return string(data)
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", path)
}

func TestParseFlags_Interspersed(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	noEdit := fs.Bool("no-edit", false, "")
	dir := fs.String("d", "", "")

	positional, code, ok := parseFlags(fs, []string{"first", "--no-edit", "second", "-d", "/tmp"})
	if !ok || code != 0 {
		t.Fatalf("parseFlags() = (%v, %d, %v), want ok", positional, code, ok)
	}
	if diff := cmp.Diff([]string{"first", "second"}, positional); diff != "" {
		t.Fatalf("positional mismatch (-want +got):\n%s", diff)
	}
	if !*noEdit || *dir != "/tmp" {
		t.Fatalf("flags = no-edit:%v d:%q, want true and /tmp", *noEdit, *dir)
	}

	if _, code, ok := parseFlags(fs, []string{"--bogus"}); ok || code != 2 {
		t.Fatalf("parseFlags(--bogus) = (%d, %v), want (2, false)", code, ok)
	}
	if _, code, ok := parseFlags(fs, []string{"-h"}); ok || code != 0 {
		t.Fatalf("parseFlags(-h) = (%d, %v), want (0, false)", code, ok)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	env := newTestEnv(t)
	if rc := env.app.dispatch([]string{"frobnicate"}); rc != 2 {
		t.Fatalf("dispatch(frobnicate) rc=%d, want 2", rc)
	}
	if !strings.Contains(env.stderr.String(), "Unknown command: frobnicate") {
		t.Fatalf("stderr = %q, want unknown command message", env.stderr.String())
	}
}

func TestNew_TemplateFailsVerifyThenAccept(t *testing.T) {
	env := newTestEnv(t)
	env.keys.keys = []rune{'x', 'A'}

	if rc := env.app.runNew(env.projects(), []string{"demo"}); rc != 0 {
		t.Fatalf("runNew rc=%d, want 0; stderr=%s", rc, env.stderr.String())
	}

	out := env.stdout.String()
	for _, want := range []string{
		"Created project 'demo'",
		"Verification of 'demo' failed",
		"Press 'r' to reopen the file or 'a' to accept it anyway: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "Press 'r'"); n != 2 {
		t.Errorf("prompt shown %d times, want 2 (one invalid key)", n)
	}

	path := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "wmproj", "projects", "demo.toml")
	if diff := cmp.Diff([]string{path}, env.edits); diff != "" {
		t.Fatalf("edited files mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, path); got != string(project.Template()) {
		t.Fatalf("project file does not hold the template:\n%s", got)
	}
	if log := readFile(t, env.actionLog); !strings.Contains(log, "VERIFY") || !strings.Contains(log, "accepted") {
		t.Fatalf("action log missing accepted VERIFY record:\n%s", log)
	}
}

func TestNew_RetryUntilValid(t *testing.T) {
	env := newTestEnv(t)
	env.keys.keys = []rune{'r'}
	layoutFile := filepath.Join(t.TempDir(), "layout.json")
	if err := os.WriteFile(layoutFile, []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	env.onEdit = func(n int, path string) {
		if n != 2 {
			return
		}
		body := "[general]\nlayout = \"" + layoutFile + "\"\n\n[[applications]]\ncommand = \"true\"\n"
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Errorf("WriteFile() error: %v", err)
		}
	}

	if rc := env.app.runNew(env.projects(), []string{"demo"}); rc != 0 {
		t.Fatalf("runNew rc=%d, want 0; stderr=%s", rc, env.stderr.String())
	}
	if len(env.edits) != 2 {
		t.Fatalf("editor opened %d times, want 2", len(env.edits))
	}
	if strings.Count(env.stdout.String(), "Verification of 'demo' failed") != 1 {
		t.Fatalf("stdout = %q, want exactly one failure report", env.stdout.String())
	}
}

func TestNew_InterruptedVerify(t *testing.T) {
	env := newTestEnv(t)
	env.keys.keys = []rune{3}

	if rc := env.app.runNew(env.projects(), []string{"demo"}); rc != 1 {
		t.Fatalf("runNew rc=%d, want 1", rc)
	}
	if !strings.Contains(env.stderr.String(), "interrupted") {
		t.Fatalf("stderr = %q, want interrupted", env.stderr.String())
	}
}

func TestNew_NoEditAndExisting(t *testing.T) {
	env := newTestEnv(t)

	if rc := env.app.runNew(env.projects(), []string{"demo", "--no-edit"}); rc != 0 {
		t.Fatalf("runNew --no-edit rc=%d, want 0", rc)
	}
	if len(env.edits) != 0 {
		t.Fatalf("editor opened %v, want no edits", env.edits)
	}

	if rc := env.app.runNew(env.projects(), []string{"demo", "--no-edit"}); rc != 1 {
		t.Fatalf("runNew on existing rc=%d, want 1", rc)
	}
	if !strings.Contains(env.stderr.String(), "already exists") {
		t.Fatalf("stderr = %q, want already exists error", env.stderr.String())
	}

	if rc := env.app.runNew(env.projects(), nil); rc != 2 {
		t.Fatalf("runNew without name rc=%d, want 2", rc)
	}
}

func TestNew_LayoutTemplateFromStdin(t *testing.T) {
	env := newTestEnv(t)
	stdin, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("CreateTemp() error: %v", err)
	}
	if _, err := stdin.WriteString(`{"layout": "splith"}`); err != nil {
		t.Fatalf("WriteString() error: %v", err)
	}
	if _, err := stdin.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error: %v", err)
	}
	defer stdin.Close()
	env.app.stdin = stdin

	if rc := env.app.runLayout(env.layoutKind(), []string{"new", "dev", "-t", "-", "--no-edit"}); rc != 0 {
		t.Fatalf("layout new rc=%d, want 0; stderr=%s", rc, env.stderr.String())
	}
	l, err := env.app.layouts.Open("dev")
	if err != nil {
		t.Fatalf("Open(dev) error: %v", err)
	}
	if got := readFile(t, l.Path()); got != `{"layout": "splith"}` {
		t.Fatalf("layout contents = %q", got)
	}
	if filepath.Ext(l.Path()) != ".json" {
		t.Fatalf("layout path = %q, want .json extension", l.Path())
	}
}

func TestStart_PathLayoutNoWorkspace(t *testing.T) {
	env := newTestEnv(t)
	env.writeProject(t, "web", `
[general]
layout = "/tmp/x.json"

[[applications]]
command = "echo hi"
`)

	if rc := env.app.runStart([]string{"web"}); rc != 0 {
		t.Fatalf("runStart rc=%d, want 0; stderr=%s", rc, env.stderr.String())
	}
	if diff := cmp.Diff([]string{"append_layout /tmp/x.json"}, env.i3.Commands()); diff != "" {
		t.Fatalf("i3 commands mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(env.stdout.String(), "Started project 'web'") {
		t.Fatalf("stdout = %q, want started message", env.stdout.String())
	}
}

func TestStart_OverridesWorkspaceAndDirectory(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	env.writeProject(t, "web", `
[general]
workspace = "1"
working_directory = "/nonexistent"
layout = "/tmp/x.json"

[[applications]]
command = ["touch", "marker"]
`)

	if rc := env.app.runStart([]string{"web", "-w", "9: web", "--working-directory", dir}); rc != 0 {
		t.Fatalf("runStart rc=%d, want 0; stderr=%s", rc, env.stderr.String())
	}
	want := []string{`workspace "9: web"`, "append_layout /tmp/x.json"}
	if diff := cmp.Diff(want, env.i3.Commands()); diff != "" {
		t.Fatalf("i3 commands mismatch (-want +got):\n%s", diff)
	}
	waitForFile(t, filepath.Join(dir, "marker"))
}

func TestStart_HangingInputToolIsScopedToItsApplication(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("XDOTOOL_STUB_HANG_ON", "key")
	marker := filepath.Join(t.TempDir(), "second-started")
	env.writeProject(t, "web", `
[general]
layout = "/tmp/x.json"

[[applications]]
command = "true"
exec = { commands = ["ctrl+c"], exec_type = "keys", timeout = 1 }

[[applications]]
command = ["touch", "`+marker+`"]
`)

	start := time.Now()
	if rc := env.app.runStart([]string{"web"}); rc != 0 {
		t.Fatalf("runStart rc=%d, want 0; stderr=%s", rc, env.stderr.String())
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("start took %v, want the hanging tool to be cut off", elapsed)
	}

	waitForFile(t, marker)
	if log := readFile(t, env.xdoLog); !strings.Contains(log, "key --window %1 ctrl+c") {
		t.Fatalf("xdotool log = %q, want keys invocation", log)
	}
	if log := readFile(t, env.actionLog); !strings.Contains(log, "EXEC-FAILED") {
		t.Fatalf("action log missing EXEC-FAILED:\n%s", log)
	}
}

func TestStart_I3Failure(t *testing.T) {
	env := newTestEnv(t)
	env.i3.Fail = func(command string) (string, bool) {
		return "Could not parse layout", strings.HasPrefix(command, "append_layout")
	}
	env.writeProject(t, "web", "[general]\nlayout = \"/tmp/x.json\"\n[[applications]]\ncommand = \"true\"\n")

	if rc := env.app.runStart([]string{"web"}); rc != 1 {
		t.Fatalf("runStart rc=%d, want 1", rc)
	}
	if !strings.Contains(env.stderr.String(), "Could not parse layout") {
		t.Fatalf("stderr = %q, want i3 error", env.stderr.String())
	}
}

func TestStart_SpawnFailureListsRunning(t *testing.T) {
	env := newTestEnv(t)
	env.writeProject(t, "web", "[general]\nlayout = \"/tmp/x.json\"\n"+
		"[[applications]]\ncommand = \"true\"\n"+
		"[[applications]]\ncommand = \"/nonexistent/wmproj-test-program\"\n")

	if rc := env.app.runStart([]string{"web"}); rc != 1 {
		t.Fatalf("runStart rc=%d, want 1", rc)
	}
	stderr := env.stderr.String()
	if !strings.Contains(stderr, "failed to start project 'web'") {
		t.Fatalf("stderr = %q, want start failure", stderr)
	}
	if !strings.Contains(stderr, "already running: true (pid ") {
		t.Fatalf("stderr = %q, want the already running application listed", stderr)
	}
	if strings.Contains(env.stdout.String(), "Started project") {
		t.Fatalf("stdout = %q, want no success message", env.stdout.String())
	}
}

func TestStart_Usage(t *testing.T) {
	env := newTestEnv(t)
	if rc := env.app.runStart(nil); rc != 2 {
		t.Fatalf("runStart without name on a non-terminal rc=%d, want 2", rc)
	}
	if rc := env.app.runStart([]string{"missing"}); rc != 1 {
		t.Fatalf("runStart(missing) rc=%d, want 1", rc)
	}
}

func TestLocal(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "wmproj.toml")
	body := "[general]\nworkspace = \"5\"\nlayout = \"/tmp/x.json\"\n[[applications]]\ncommand = \"true\"\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if rc := env.app.runLocal([]string{"-f", path}); rc != 0 {
		t.Fatalf("runLocal rc=%d, want 0; stderr=%s", rc, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Started project 'local'") {
		t.Fatalf("stdout = %q, want local project started", env.stdout.String())
	}
	if diff := cmp.Diff([]string{"workspace 5", "append_layout /tmp/x.json"}, env.i3.Commands()); diff != "" {
		t.Fatalf("i3 commands mismatch (-want +got):\n%s", diff)
	}

	if rc := env.app.runLocal([]string{"-f", filepath.Join(t.TempDir(), "nope.toml")}); rc != 1 {
		t.Fatalf("runLocal on missing file rc=%d, want 1", rc)
	}
}

func TestListCopyRenameDelete(t *testing.T) {
	env := newTestEnv(t)
	k := env.projects()

	if rc := env.app.runList(k, nil); rc != 0 || !strings.Contains(env.stdout.String(), "No projects") {
		t.Fatalf("runList on empty store rc=%d stdout=%q", rc, env.stdout.String())
	}

	env.writeProject(t, "web", "[general]\nlayout = \"/tmp/x.json\"\n")
	if rc := env.app.runCopy(k, []string{"web", "api", "--no-edit"}); rc != 0 {
		t.Fatalf("runCopy rc=%d; stderr=%s", rc, env.stderr.String())
	}
	if rc := env.app.runRename(k, []string{"web", "site"}); rc != 0 {
		t.Fatalf("runRename rc=%d; stderr=%s", rc, env.stderr.String())
	}
	if len(env.edits) != 0 {
		t.Fatalf("edits = %v, want none without --edit", env.edits)
	}

	env.stdout.Reset()
	if rc := env.app.runList(k, []string{"-q"}); rc != 0 {
		t.Fatalf("runList -q rc=%d", rc)
	}
	if got := env.stdout.String(); got != "api\nsite\n" {
		t.Fatalf("list -q = %q, want %q", got, "api\nsite\n")
	}

	if rc := env.app.runDelete(k, []string{"api", "missing"}); rc != 1 {
		t.Fatalf("runDelete with unknown name rc=%d, want 1", rc)
	}
	if names, _ := env.app.projects.List(); len(names) != 2 {
		t.Fatalf("projects after failed delete = %v, want both kept", names)
	}

	if rc := env.app.runDelete(k, []string{"api", "site"}); rc != 0 {
		t.Fatalf("runDelete rc=%d; stderr=%s", rc, env.stderr.String())
	}
	if names, _ := env.app.projects.List(); len(names) != 0 {
		t.Fatalf("projects after delete = %v, want none", names)
	}
}

func TestRename_EditVerifies(t *testing.T) {
	env := newTestEnv(t)
	env.keys.keys = []rune{'a'}
	env.writeProject(t, "web", "[general]\nlayout = \"/does/not/exist.json\"\n")

	if rc := env.app.runRename(env.projects(), []string{"web", "site", "--edit"}); rc != 0 {
		t.Fatalf("runRename --edit rc=%d; stderr=%s", rc, env.stderr.String())
	}
	if len(env.edits) != 1 || filepath.Base(env.edits[0]) != "site.toml" {
		t.Fatalf("edits = %v, want site.toml", env.edits)
	}
	if !strings.Contains(env.stdout.String(), "Verification of 'site' failed") {
		t.Fatalf("stdout = %q, want verify failure", env.stdout.String())
	}
}

func TestVerifyCommand(t *testing.T) {
	env := newTestEnv(t)
	layoutFile := filepath.Join(t.TempDir(), "l.json")
	if err := os.WriteFile(layoutFile, []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	env.writeProject(t, "good", "[general]\nlayout = \""+layoutFile+"\"\n[[applications]]\ncommand = \"true\"\n")
	env.writeProject(t, "bad", "[general]\nlayout = \"/does/not/exist.json\"\n")

	if rc := env.app.runVerify(env.projects(), []string{"good"}); rc != 0 {
		t.Fatalf("verify good rc=%d; stderr=%s", rc, env.stderr.String())
	}
	if rc := env.app.runVerify(env.projects(), nil); rc != 1 {
		t.Fatalf("verify all rc=%d, want 1", rc)
	}
	if !strings.Contains(env.stderr.String(), "project 'bad'") {
		t.Fatalf("stderr = %q, want bad project reported", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "project 'good': ok") {
		t.Fatalf("stdout = %q, want good project ok", env.stdout.String())
	}
}

func TestInfo(t *testing.T) {
	env := newTestEnv(t)
	env.writeProject(t, "web", `
[general]
workspace = "2"
layout = "/tmp/x.json"

[[applications]]
command = "vim -O a b"
working_directory = "/src"
exec = { commands = ["ctrl+w", "l"], exec_type = "keys" }
`)

	if rc := env.app.runInfo(env.projects(), []string{"web"}); rc != 0 {
		t.Fatalf("runInfo rc=%d; stderr=%s", rc, env.stderr.String())
	}
	out := env.stdout.String()
	for _, want := range []string{"web", "Workspace", "2", "/tmp/x.json (path)", "1. vim -O a b", "dir: /src", "exec (keys, 1s): ctrl+w | l"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	env.writeProject(t, "broken", "[general\n")
	if rc := env.app.runInfo(env.projects(), []string{"broken"}); rc != 1 {
		t.Fatalf("runInfo(broken) rc=%d, want 1", rc)
	}
}

func TestLayoutCommands(t *testing.T) {
	env := newTestEnv(t)
	k := env.layoutKind()
	if _, err := env.app.layouts.CreateFromTemplate("dev", []byte("{}")); err != nil {
		t.Fatalf("CreateFromTemplate() error: %v", err)
	}

	if rc := env.app.runLayout(k, []string{"info", "dev"}); rc != 0 {
		t.Fatalf("layout info rc=%d; stderr=%s", rc, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "valid") {
		t.Fatalf("layout info = %q, want valid status", env.stdout.String())
	}

	if rc := env.app.runLayout(k, []string{"edit", "dev"}); rc != 0 {
		t.Fatalf("layout edit rc=%d; stderr=%s", rc, env.stderr.String())
	}
	if len(env.edits) != 1 || filepath.Base(env.edits[0]) != "dev.json" {
		t.Fatalf("edits = %v, want dev.json", env.edits)
	}

	if rc := env.app.runLayout(k, []string{"bogus"}); rc != 2 {
		t.Fatalf("layout bogus rc=%d, want 2", rc)
	}
}

func TestBrowserEntry(t *testing.T) {
	env := newTestEnv(t)
	env.writeProject(t, "web", "[general]\nlayout = \"/tmp/x.json\"\n[[applications]]\ncommand = \"htop\"\n")
	env.writeProject(t, "broken", "[general\n")

	entries, err := env.app.browserEntries()
	if err != nil {
		t.Fatalf("browserEntries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[0].Invalid || entries[0].Name != "broken" {
		t.Fatalf("entries[0] = %+v, want invalid broken", entries[0])
	}
	if entries[1].Summary != "workspace current · 1 application" {
		t.Fatalf("entries[1].Summary = %q", entries[1].Summary)
	}
	if !strings.Contains(entries[1].Detail, "1. htop") {
		t.Fatalf("entries[1].Detail = %q, want application list", entries[1].Detail)
	}
}
