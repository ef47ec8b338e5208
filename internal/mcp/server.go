// Package mcp exposes wmproj projects as Model Context Protocol tools over
// stdio.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wmproj/internal/actionlog"
	"github.com/1broseidon/wmproj/internal/project"
)

const (
	ServerName    = "wmproj"
	ServerVersion = "0.1.0"
)

// Options wires the server to the rest of wmproj.
type Options struct {
	Projects *project.Store
	// Connect returns the i3 connection used by start_project.
	Connect func(ctx context.Context) (project.Commander, error)
	Input   project.InputDriver
	Logger  *slog.Logger
	Actions *actionlog.Logger
}

// Server is the MCP server for wmproj.
type Server struct {
	mcpServer *mcpsdk.Server
	opts      Options
}

// NewServer creates the server and registers its tools.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{opts: opts}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on the stdio transport until ctx is done or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_projects",
		Description: "List the names of all wmproj projects.",
	}, s.handleListProjects)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the names of all managed i3 layouts.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "project_info",
		Description: "Show a project's workspace, layout source and applications in launch order.",
	}, s.handleProjectInfo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "verify_project",
		Description: "Check that a project parses and that every path and managed layout it references exists.",
	}, s.handleVerifyProject)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "start_project",
		Description: "Start a project: switch workspace, append its layout and launch its applications. Input delivery failures are reported per application and do not fail the start.",
	}, s.handleStartProject)
}
