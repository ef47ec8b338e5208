package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/1broseidon/wmproj/internal/actionlog"
	"github.com/1broseidon/wmproj/internal/config"
	"github.com/1broseidon/wmproj/internal/editor"
	"github.com/1broseidon/wmproj/internal/i3ipc"
	"github.com/1broseidon/wmproj/internal/input"
	"github.com/1broseidon/wmproj/internal/layout"
	"github.com/1broseidon/wmproj/internal/project"
	"github.com/1broseidon/wmproj/internal/runtimepath"
	"github.com/1broseidon/wmproj/internal/verify"
	"github.com/1broseidon/wmproj/internal/x11"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	verbose := false
	for len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		verbose = true
		args = args[1:]
	}

	if len(args) == 0 {
		printMainUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		return 0
	case "config":
		// Works even when the settings file is broken.
		return runConfig(args[1:])
	}

	a, err := newApp(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wmproj: %v\n", err)
		return 1
	}
	defer a.close()

	return a.dispatch(args)
}

func (a *app) dispatch(args []string) int {
	projects := projectKind{store: a.projects}
	layouts := layoutKind{store: a.layouts}

	switch args[0] {
	case "copy":
		return a.runCopy(projects, args[1:])
	case "delete", "remove":
		return a.runDelete(projects, args[1:])
	case "edit", "open":
		return a.runEdit(projects, args[1:])
	case "info":
		return a.runInfo(projects, args[1:])
	case "list":
		return a.runList(projects, args[1:])
	case "local":
		return a.runLocal(args[1:])
	case "new":
		return a.runNew(projects, args[1:])
	case "rename":
		return a.runRename(projects, args[1:])
	case "start", "run":
		return a.runStart(args[1:])
	case "verify":
		return a.runVerify(projects, args[1:])
	case "layout":
		return a.runLayout(layouts, args[1:])
	case "browse":
		return a.runBrowse(args[1:])
	case "mcp":
		return a.runMCP(args[1:])
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(a.stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wmproj [--verbose] <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Projects:")
	fmt.Fprintln(w, "  new NAME            Create a project from the template and edit it")
	fmt.Fprintln(w, "  copy EXISTING NEW   Copy a project")
	fmt.Fprintln(w, "  rename CURRENT NEW  Rename a project")
	fmt.Fprintln(w, "  edit NAME           Open a project in $VISUAL/$EDITOR (alias: open)")
	fmt.Fprintln(w, "  delete NAME...      Delete projects (alias: remove)")
	fmt.Fprintln(w, "  info NAME           Show a project's settings")
	fmt.Fprintln(w, "  list                List projects")
	fmt.Fprintln(w, "  verify [NAME...]    Verify projects (all when no name is given)")
	fmt.Fprintln(w, "  start [NAME]        Start a project (alias: run)")
	fmt.Fprintln(w, "  local               Start a project file from the current directory")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout <command>    Manage i3 layouts (copy, delete, edit, info, list, new, rename)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  browse              Browse projects interactively")
	fmt.Fprintln(w, "  config validate     Validate settings")
	fmt.Fprintln(w, "  config print        Print settings")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wmproj <command> --help' for command-specific options.")
}

// app carries everything the subcommands share. Tests build one directly.
type app struct {
	settings *config.Config
	projects *project.Store
	layouts  *layout.Store
	logger   *slog.Logger
	actions  *actionlog.Logger

	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	keys    verify.KeyReader
	edit    func(paths ...string) error
	connect func(ctx context.Context) (project.Commander, error)
	input   project.InputDriver
	// interactive reports whether stdin and stdout are terminals.
	interactive func() bool
}

func newApp(verbose bool) (*app, error) {
	res, err := config.Load()
	if err != nil {
		return nil, err
	}
	settings := res.Config

	level := settings.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	alCfg, err := settings.ActionLogSettings()
	if err != nil {
		return nil, err
	}
	actions, err := actionlog.Open(alCfg)
	if err != nil {
		// The action log is optional; keep going without it.
		log.Printf("wmproj: warning: %v", err)
		actions = nil
	}

	base, err := runtimepath.ConfigDir()
	if err != nil {
		return nil, err
	}
	layouts := layout.NewStore(base)
	projects := project.NewStore(base, layouts, time.Duration(settings.DefaultExecTimeout))

	locator := i3ipc.Locator{
		Explicit:     settings.I3Socket,
		RootProperty: x11.I3SocketPath,
	}

	return &app{
		settings: settings,
		projects: projects,
		layouts:  layouts,
		logger:   logger,
		actions:  actions,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		keys:     verify.NewTerminalKeyReader(),
		edit:     editor.Open,
		connect: func(ctx context.Context) (project.Commander, error) {
			client, err := locator.Connect(ctx)
			if err != nil {
				return nil, err
			}
			logger.Debug("i3 socket", "path", client.SocketPath())
			return client, nil
		},
		input: input.NewDriver(settings.Xdotool, logger),
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}, nil
}

func (a *app) close() {
	if err := a.actions.Close(); err != nil {
		log.Printf("wmproj: warning: %v", err)
	}
}

// fail prints err and returns the runtime error exit code.
func (a *app) fail(err error) int {
	fmt.Fprintf(a.stderr, "wmproj: %v\n", err)
	return 1
}

// parseFlags parses fs allowing flags after positional arguments, and maps
// the outcome to an exit code. ok is false when the caller should return
// code.
func parseFlags(fs *flag.FlagSet, args []string) (positional []string, code int, ok bool) {
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, 0, false
			}
			return nil, 2, false
		}
		if fs.NArg() == 0 {
			return positional, 0, true
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}
