package project

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/1broseidon/wmproj/internal/actionlog"
)

// Commander sends a command string to the window manager.
type Commander interface {
	Command(ctx context.Context, command string) error
}

// InputDriver sends an exec entry to the window of the process pid.
type InputDriver interface {
	Drive(ctx context.Context, pid int, exec Exec) error
}

// StartOptions are the per-invocation overrides and collaborators of Start.
type StartOptions struct {
	// WorkingDirectory overrides every application's working directory.
	WorkingDirectory string
	// Workspace overrides general.workspace.
	Workspace string

	// Input delivers exec entries. Exec entries are skipped when nil.
	Input   InputDriver
	Logger  *slog.Logger
	Actions *actionlog.Logger
}

// AppResult describes one launched application.
type AppResult struct {
	Command ApplicationCommand
	Dir     string
	Pid     int
	// ExecErr is the input delivery failure, if any. It does not fail Start.
	ExecErr error
}

// StartReport lists what Start did, in launch order.
type StartReport struct {
	Project   string
	Workspace string
	Layout    string
	Apps      []AppResult
}

// ExecFailures returns the results whose input delivery failed.
func (r *StartReport) ExecFailures() []AppResult {
	var out []AppResult
	for _, app := range r.Apps {
		if app.ExecErr != nil {
			out = append(out, app)
		}
	}
	return out
}

// Start switches to the project's workspace, appends its layout and spawns
// its applications in order. The first failing i3 command or spawn aborts the
// start, as does ctx being done between applications; applications already
// running are left alone and listed in the returned report. Input delivery failures
// are recorded in the report and the next application is started anyway.
func Start(ctx context.Context, p *Project, i3 Commander, opts StartOptions) (*StartReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("project", p.Name())

	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}

	layoutPath, cleanup, err := ResolveLayout(cfg.General.Layout, p.store.layouts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	report := &StartReport{Project: p.Name(), Layout: layoutPath}

	workspace := opts.Workspace
	if workspace == "" {
		workspace = cfg.General.Workspace
	}
	report.Workspace = workspace
	opts.Actions.Record(actionlog.ActionStart, p.Name(), map[string]any{
		"workspace": workspace,
		"layout":    layoutPath,
	})

	if workspace != "" {
		cmd := "workspace " + i3Arg(workspace)
		logger.Debug("i3 command", "command", cmd)
		if err := i3.Command(ctx, cmd); err != nil {
			return report, err
		}
	}

	if !utf8.ValidString(layoutPath) {
		return report, fmt.Errorf("%w: %q", ErrInvalidUTF8Path, layoutPath)
	}
	cmd := "append_layout " + i3Arg(layoutPath)
	logger.Debug("i3 command", "command", cmd)
	if err := i3.Command(ctx, cmd); err != nil {
		return report, err
	}

	for _, app := range cfg.Applications {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		dir := workingDirectory(opts.WorkingDirectory, app, cfg.General)
		proc, err := spawn(app.Command, dir)
		if err != nil {
			return report, err
		}

		result := AppResult{Command: app.Command, Dir: dir, Pid: proc.Process.Pid}
		logger.Info("spawned application", "program", app.Command.Program, "pid", result.Pid, "dir", dir)
		opts.Actions.Record(actionlog.ActionSpawn, p.Name(), map[string]any{
			"program": app.Command.Program,
			"pid":     result.Pid,
			"dir":     dir,
		})

		if app.Exec != nil && opts.Input != nil {
			if err := opts.Input.Drive(ctx, result.Pid, *app.Exec); err != nil {
				result.ExecErr = err
				logger.Warn("input delivery failed", "program", app.Command.Program, "pid", result.Pid, "error", err)
				opts.Actions.Record(actionlog.ActionExecFailed, p.Name(), map[string]any{
					"program": app.Command.Program,
					"pid":     result.Pid,
					"error":   err,
				})
			} else {
				opts.Actions.Record(actionlog.ActionExec, p.Name(), map[string]any{
					"program":  app.Command.Program,
					"pid":      result.Pid,
					"commands": len(app.Exec.Commands),
				})
			}
		}

		report.Apps = append(report.Apps, result)
	}

	return report, nil
}

// workingDirectory applies the precedence override > application > general.
// An empty result means the child inherits the current directory.
func workingDirectory(override string, app Application, general General) string {
	switch {
	case override != "":
		return override
	case app.WorkingDirectory != "":
		return app.WorkingDirectory
	default:
		return general.WorkingDirectory
	}
}

// spawn starts the program without a shell. Standard streams are left nil so
// the child gets the null device; the child is reaped in the background.
func spawn(command ApplicationCommand, dir string) (*exec.Cmd, error) {
	cmd := exec.Command(command.Program, command.Args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start '%s': %w", command.Program, err)
	}
	go cmd.Wait()
	return cmd, nil
}

// i3Arg quotes s for an i3 command when it contains separators.
func i3Arg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"';,") {
		return s
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
