package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/1broseidon/wmproj/internal/project"
	"github.com/1broseidon/wmproj/internal/tui"
)

type startFlags struct {
	workingDirectory string
	workspace        string
}

func (a *app) runStart(args []string) int {
	fs := a.newFlagSet("start", "start [NAME] [-d DIR] [-w WORKSPACE]")
	var sf startFlags
	fs.StringVar(&sf.workingDirectory, "d", "", "Working directory for every application, overriding the project file")
	fs.StringVar(&sf.workingDirectory, "working-directory", "", "Working directory for every application, overriding the project file")
	fs.StringVar(&sf.workspace, "w", "", "Workspace to start the project on, overriding the project file")
	fs.StringVar(&sf.workspace, "workspace", "", "Workspace to start the project on, overriding the project file")
	names, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	var name string
	switch len(names) {
	case 1:
		name = names[0]
	case 0:
		if !a.interactive() {
			fs.Usage()
			return 2
		}
		all, err := a.projects.List()
		if err != nil {
			return a.fail(err)
		}
		picked, err := tui.PickProject(all)
		if errors.Is(err, tui.ErrAborted) {
			return 0
		}
		if err != nil {
			return a.fail(err)
		}
		name = picked
	default:
		fs.Usage()
		return 2
	}

	p, err := a.projects.Open(name)
	if err != nil {
		return a.fail(err)
	}
	return a.start(p, sf)
}

func (a *app) runLocal(args []string) int {
	fs := a.newFlagSet("local", "local [-f FILE] [-d DIR] [-w WORKSPACE]")
	file := fs.String("f", a.settings.LocalFile, "Project file to start")
	fs.StringVar(file, "file", a.settings.LocalFile, "Project file to start")
	var sf startFlags
	fs.StringVar(&sf.workingDirectory, "d", "", "Working directory for every application, overriding the project file")
	fs.StringVar(&sf.workingDirectory, "working-directory", "", "Working directory for every application, overriding the project file")
	fs.StringVar(&sf.workspace, "w", "", "Workspace to start the project on, overriding the project file")
	fs.StringVar(&sf.workspace, "workspace", "", "Workspace to start the project on, overriding the project file")
	rest, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(rest) != 0 {
		fs.Usage()
		return 2
	}

	p, err := a.projects.FromPath(project.ExpandTilde(*file))
	if err != nil {
		return a.fail(err)
	}
	return a.start(p, sf)
}

func (a *app) start(p *project.Project, sf startFlags) int {
	dir := sf.workingDirectory
	if dir != "" {
		abs, err := filepath.Abs(project.ExpandTilde(dir))
		if err != nil {
			return a.fail(fmt.Errorf("invalid working directory %q: %w", dir, err))
		}
		dir = abs
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	i3, err := a.connect(ctx)
	if err != nil {
		return a.fail(err)
	}

	report, err := project.Start(ctx, p, i3, project.StartOptions{
		WorkingDirectory: dir,
		Workspace:        sf.workspace,
		Input:            a.input,
		Logger:           a.logger,
		Actions:          a.actions,
	})
	if err != nil {
		code := a.fail(fmt.Errorf("failed to start project '%s': %w", p.Name(), err))
		if report != nil {
			for _, app := range report.Apps {
				fmt.Fprintf(a.stderr, "already running: %s (pid %d)\n", app.Command, app.Pid)
			}
		}
		return code
	}

	for _, app := range report.ExecFailures() {
		log.Printf("wmproj: warning: could not send input to %s (pid %d): %v", app.Command, app.Pid, app.ExecErr)
	}
	fmt.Fprintf(a.stdout, "Started project '%s'\n", p.Name())
	return 0
}
