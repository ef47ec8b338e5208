package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/wmproj/internal/mcp"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wmproj mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
}

func (a *app) runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(a.stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return a.runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(a.stdout)
		return 0
	default:
		fmt.Fprintf(a.stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(a.stderr)
		return 2
	}
}

func (a *app) runMCPServe(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(a.stdout, "Usage: wmproj mcp serve")
		fmt.Fprintln(a.stdout, "")
		fmt.Fprintln(a.stdout, "Start the MCP server on stdio so MCP clients can list, inspect,")
		fmt.Fprintln(a.stdout, "verify and start wmproj projects.")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(a.stderr, "Usage: wmproj mcp serve")
		return 2
	}

	server := mcp.NewServer(mcp.Options{
		Projects: a.projects,
		Connect:  a.connect,
		Input:    a.input,
		Logger:   a.logger,
		Actions:  a.actions,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return a.fail(fmt.Errorf("MCP server error: %w", err))
	}
	return 0
}
