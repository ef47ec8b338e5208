package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wmproj/internal/configfile"
	"github.com/1broseidon/wmproj/internal/layout"
	"github.com/1broseidon/wmproj/internal/project"
)

var (
	infoTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	infoLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(19)
	infoValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	infoDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	infoErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	infoOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

func (a *app) runInfo(k entityKind, args []string) int {
	fs := a.newFlagSet("info", k.Noun()+" info NAME")
	names, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(names) != 1 {
		fs.Usage()
		return 2
	}

	e, err := k.Open(names[0])
	if err != nil {
		return a.fail(err)
	}

	switch e := e.(type) {
	case *project.Project:
		err = writeProjectInfo(a.stdout, e)
	case *layout.Layout:
		err = writeLayoutInfo(a.stdout, e)
	}
	if err != nil {
		return 1
	}
	return 0
}

func infoRow(b *strings.Builder, label, value string) {
	if value == "" {
		value = infoDimStyle.Render("-")
	} else {
		value = infoValueStyle.Render(value)
	}
	fmt.Fprintf(b, "%s%s\n", infoLabelStyle.Render(label), value)
}

func verifyRow(b *strings.Builder, e configfile.Entity) {
	if err := e.Verify(); err != nil {
		fmt.Fprintf(b, "%s%s\n", infoLabelStyle.Render("Status"), infoErrStyle.Render(err.Error()))
		return
	}
	fmt.Fprintf(b, "%s%s\n", infoLabelStyle.Render("Status"), infoOKStyle.Render("valid"))
}

// writeProjectInfo renders a project. It returns the parse error, after
// printing it, when the file cannot be read as a project.
func writeProjectInfo(w io.Writer, p *project.Project) error {
	var b strings.Builder
	b.WriteString(infoTitleStyle.Render(p.Name()) + "\n\n")
	infoRow(&b, "Path", p.Path())

	cfg, err := p.Config()
	if err != nil {
		fmt.Fprintf(&b, "%s%s\n", infoLabelStyle.Render("Status"), infoErrStyle.Render(err.Error()))
		fmt.Fprint(w, b.String())
		return err
	}

	infoRow(&b, "Workspace", cfg.General.Workspace)
	infoRow(&b, "Working directory", cfg.General.WorkingDirectory)
	layoutValue := cfg.General.Layout.Value
	if cfg.General.Layout.Kind == project.LayoutContents {
		layoutValue = fmt.Sprintf("%d bytes of inline JSON", len(layoutValue))
	}
	infoRow(&b, "Layout", fmt.Sprintf("%s (%s)", layoutValue, cfg.General.Layout.Kind))
	verifyRow(&b, p)

	fmt.Fprintf(&b, "\n%s\n", infoLabelStyle.Render(fmt.Sprintf("Applications (%d)", len(cfg.Applications))))
	for i, app := range cfg.Applications {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, infoValueStyle.Render(app.Command.String()))
		if app.WorkingDirectory != "" {
			fmt.Fprintf(&b, "     %s %s\n", infoDimStyle.Render("dir:"), app.WorkingDirectory)
		}
		if app.Exec != nil {
			label := fmt.Sprintf("exec (%s, %s):", app.Exec.Type, app.Exec.Timeout)
			fmt.Fprintf(&b, "     %s %s\n", infoDimStyle.Render(label), strings.Join(app.Exec.Commands, " | "))
		}
	}

	_, err = fmt.Fprint(w, b.String())
	return err
}

func writeLayoutInfo(w io.Writer, l *layout.Layout) error {
	var b strings.Builder
	b.WriteString(infoTitleStyle.Render(l.Name()) + "\n\n")
	infoRow(&b, "Path", l.Path())
	if info, err := os.Stat(l.Path()); err == nil {
		infoRow(&b, "Size", fmt.Sprintf("%d bytes", info.Size()))
		infoRow(&b, "Modified", info.ModTime().Format("2006-01-02 15:04:05"))
	}
	verifyRow(&b, l)
	_, err := fmt.Fprint(w, b.String())
	return err
}
