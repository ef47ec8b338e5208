package main

import (
	"fmt"
	"strings"

	"github.com/1broseidon/wmproj/internal/project"
	"github.com/1broseidon/wmproj/internal/tui"
)

func (a *app) runBrowse(args []string) int {
	fs := a.newFlagSet("browse", "browse")
	rest, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(rest) != 0 {
		fs.Usage()
		return 2
	}
	if !a.interactive() {
		return a.fail(fmt.Errorf("browse requires an interactive terminal (stdin/stdout must be TTYs)"))
	}

	entries, err := a.browserEntries()
	if err != nil {
		return a.fail(err)
	}
	result, err := tui.RunBrowser(entries)
	if err != nil {
		return a.fail(err)
	}

	projects := projectKind{store: a.projects}
	switch result.Action {
	case tui.ActionStart:
		return a.runStart([]string{result.Project})
	case tui.ActionEdit:
		return a.runEdit(projects, []string{result.Project})
	}
	return 0
}

func (a *app) browserEntries() ([]tui.Entry, error) {
	names, err := a.projects.List()
	if err != nil {
		return nil, err
	}

	entries := make([]tui.Entry, 0, len(names))
	for _, name := range names {
		p, err := a.projects.Open(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, browserEntry(p))
	}
	return entries, nil
}

func browserEntry(p *project.Project) tui.Entry {
	cfg, err := p.Config()
	if err != nil {
		return tui.Entry{Name: p.Name(), Summary: "invalid project file", Detail: err.Error(), Invalid: true}
	}

	workspace := cfg.General.Workspace
	if workspace == "" {
		workspace = "current"
	}
	noun := "applications"
	if len(cfg.Applications) == 1 {
		noun = "application"
	}

	var detail strings.Builder
	fmt.Fprintf(&detail, "workspace: %s\n", workspace)
	if cfg.General.Layout.Kind == project.LayoutContents {
		fmt.Fprintf(&detail, "layout: inline (%d bytes)\n", len(cfg.General.Layout.Value))
	} else {
		fmt.Fprintf(&detail, "layout: %s (%s)\n", cfg.General.Layout.Value, cfg.General.Layout.Kind)
	}
	if cfg.General.WorkingDirectory != "" {
		fmt.Fprintf(&detail, "directory: %s\n", cfg.General.WorkingDirectory)
	}
	detail.WriteString("\n")
	for i, app := range cfg.Applications {
		fmt.Fprintf(&detail, "%d. %s\n", i+1, app.Command)
	}

	return tui.Entry{
		Name:    p.Name(),
		Summary: fmt.Sprintf("workspace %s · %d %s", workspace, len(cfg.Applications), noun),
		Detail:  detail.String(),
	}
}
