package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wmproj/internal/actionlog"
	"github.com/1broseidon/wmproj/internal/project"
)

func (s *Server) handleListProjects(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListProjectsInput) (*mcpsdk.CallToolResult, ListProjectsOutput, error) {
	names, err := s.opts.Projects.List()
	if err != nil {
		return nil, ListProjectsOutput{}, err
	}
	if names == nil {
		names = []string{}
	}
	return nil, ListProjectsOutput{Projects: names}, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	names, err := s.opts.Projects.Layouts().List()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}
	if names == nil {
		names = []string{}
	}
	return nil, ListLayoutsOutput{Layouts: names}, nil
}

func (s *Server) handleProjectInfo(_ context.Context, _ *mcpsdk.CallToolRequest, args ProjectInput) (*mcpsdk.CallToolResult, ProjectInfoOutput, error) {
	p, err := s.opts.Projects.Open(args.Name)
	if err != nil {
		return nil, ProjectInfoOutput{}, err
	}
	cfg, err := p.Config()
	if err != nil {
		return nil, ProjectInfoOutput{}, err
	}

	out := ProjectInfoOutput{
		Name:             p.Name(),
		Path:             p.Path(),
		Workspace:        cfg.General.Workspace,
		WorkingDirectory: cfg.General.WorkingDirectory,
		LayoutKind:       cfg.General.Layout.Kind.String(),
		Layout:           cfg.General.Layout.Value,
		Applications:     make([]ApplicationInfo, 0, len(cfg.Applications)),
	}
	for _, app := range cfg.Applications {
		info := ApplicationInfo{
			Command:          append([]string{app.Command.Program}, app.Command.Args...),
			WorkingDirectory: app.WorkingDirectory,
		}
		if app.Exec != nil {
			info.ExecType = app.Exec.Type.String()
			info.ExecCommands = app.Exec.Commands
			info.ExecTimeout = app.Exec.Timeout.String()
		}
		out.Applications = append(out.Applications, info)
	}
	return nil, out, nil
}

func (s *Server) handleVerifyProject(_ context.Context, _ *mcpsdk.CallToolRequest, args ProjectInput) (*mcpsdk.CallToolResult, VerifyProjectOutput, error) {
	p, err := s.opts.Projects.Open(args.Name)
	if err != nil {
		return nil, VerifyProjectOutput{}, err
	}
	out := VerifyProjectOutput{Name: p.Name(), OK: true}
	if err := p.Verify(); err != nil {
		out.OK = false
		out.Error = err.Error()
	}
	s.opts.Actions.Record(actionlog.ActionVerify, p.Name(), map[string]any{"ok": out.OK, "source": "mcp"})
	return nil, out, nil
}

func (s *Server) handleStartProject(ctx context.Context, _ *mcpsdk.CallToolRequest, args StartProjectInput) (*mcpsdk.CallToolResult, StartProjectOutput, error) {
	p, err := s.opts.Projects.Open(args.Name)
	if err != nil {
		return nil, StartProjectOutput{}, err
	}
	if s.opts.Connect == nil {
		return nil, StartProjectOutput{}, fmt.Errorf("start_project: no i3 connection configured")
	}
	i3, err := s.opts.Connect(ctx)
	if err != nil {
		return nil, StartProjectOutput{}, err
	}

	report, err := project.Start(ctx, p, i3, project.StartOptions{
		WorkingDirectory: project.ExpandTilde(args.WorkingDirectory),
		Workspace:        args.Workspace,
		Input:            s.opts.Input,
		Logger:           s.opts.Logger,
		Actions:          s.opts.Actions,
	})
	if report == nil {
		return nil, StartProjectOutput{}, err
	}

	out := StartProjectOutput{
		Project:      report.Project,
		Workspace:    report.Workspace,
		Applications: make([]StartedApplication, 0, len(report.Apps)),
	}
	running := make([]string, 0, len(report.Apps))
	for _, app := range report.Apps {
		started := StartedApplication{Program: app.Command.Program, Pid: app.Pid, Dir: app.Dir}
		if app.ExecErr != nil {
			started.ExecError = app.ExecErr.Error()
		}
		out.Applications = append(out.Applications, started)
		running = append(running, fmt.Sprintf("%s (pid %d)", app.Command.Program, app.Pid))
	}
	if err != nil {
		if len(running) > 0 {
			err = fmt.Errorf("%w; already running: %s", err, strings.Join(running, ", "))
		}
		return nil, out, err
	}
	return nil, out, nil
}
