package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/wmproj/internal/actionlog"
	"github.com/1broseidon/wmproj/internal/configfile"
	"github.com/1broseidon/wmproj/internal/verify"
)

func (a *app) newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: wmproj %s\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

// editAndVerify opens e in the editor and, unless skipVerify, keeps asking
// until the file verifies or the user accepts it.
func (a *app) editAndVerify(k entityKind, e configfile.Entity, skipVerify bool) error {
	if err := a.edit(e.Path()); err != nil {
		return err
	}
	if skipVerify {
		return nil
	}
	return a.verifyLoop(k, e)
}

func (a *app) verifyLoop(k entityKind, e configfile.Entity) error {
	loop := &verify.Loop{
		Keys: a.keys,
		Out:  a.stdout,
		Reopen: func(e configfile.Entity) (configfile.Entity, error) {
			if err := a.edit(e.Path()); err != nil {
				return nil, err
			}
			return k.Open(e.Name())
		},
		OnTransition: func(from, to verify.State, e configfile.Entity) {
			a.logger.Debug("verify", "entity", e.Name(), "from", from, "to", to)
			if to == verify.StateAccepted {
				a.actions.Record(actionlog.ActionVerify, e.Name(), map[string]any{"kind": k.Noun(), "result": "accepted"})
			}
		},
	}
	return loop.Run(e)
}

func (a *app) runNew(k entityKind, args []string) int {
	noun := k.Noun()
	usage := noun + " new NAME [--no-edit] [--no-verify]"
	if noun == "layout" {
		usage = "layout new NAME [--no-edit] [--no-verify] [-t TEMPLATE|-]"
	}
	fs := a.newFlagSet("new", usage)
	noEdit := fs.Bool("no-edit", false, "Do not open the new file in an editor")
	noVerify := fs.Bool("no-verify", false, "Do not verify the file after editing")
	var templatePath *string
	if noun == "layout" {
		templatePath = fs.String("t", "", "Template file for the layout, or - for stdin")
		fs.StringVar(templatePath, "template", "", "Template file for the layout, or - for stdin")
	}
	names, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(names) != 1 {
		fs.Usage()
		return 2
	}

	var template []byte
	if templatePath != nil && *templatePath != "" {
		data, err := a.readTemplate(*templatePath)
		if err != nil {
			return a.fail(err)
		}
		template = data
	}

	e, err := k.Create(names[0], template)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.stdout, "Created %s '%s'\n", noun, e.Name())

	if *noEdit {
		return 0
	}
	if err := a.editAndVerify(k, e, *noVerify); err != nil {
		return a.fail(err)
	}
	return 0
}

func (a *app) readTemplate(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read template from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return data, nil
}

func (a *app) runCopy(k entityKind, args []string) int {
	fs := a.newFlagSet("copy", k.Noun()+" copy EXISTING NEW [--no-edit] [--no-verify]")
	noEdit := fs.Bool("no-edit", false, "Do not open the copy in an editor")
	noVerify := fs.Bool("no-verify", false, "Do not verify the copy after editing")
	names, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(names) != 2 {
		fs.Usage()
		return 2
	}

	existing, err := k.Open(names[0])
	if err != nil {
		return a.fail(err)
	}
	copied, err := k.Copy(existing, names[1])
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.stdout, "Copied existing %s '%s' to new %s '%s'\n", k.Noun(), existing.Name(), k.Noun(), copied.Name())

	if *noEdit {
		return 0
	}
	if err := a.editAndVerify(k, copied, *noVerify); err != nil {
		return a.fail(err)
	}
	return 0
}

func (a *app) runRename(k entityKind, args []string) int {
	fs := a.newFlagSet("rename", k.Noun()+" rename CURRENT NEW [--edit] [--no-verify]")
	edit := fs.Bool("edit", false, "Open the renamed file in an editor")
	noVerify := fs.Bool("no-verify", false, "Do not verify the file after editing")
	names, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(names) != 2 {
		fs.Usage()
		return 2
	}

	current, err := k.Open(names[0])
	if err != nil {
		return a.fail(err)
	}
	renamed, err := k.Rename(current, names[1])
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.stdout, "Renamed %s '%s' to '%s'\n", k.Noun(), current.Name(), renamed.Name())

	if !*edit {
		return 0
	}
	if err := a.editAndVerify(k, renamed, *noVerify); err != nil {
		return a.fail(err)
	}
	return 0
}

func (a *app) runEdit(k entityKind, args []string) int {
	fs := a.newFlagSet("edit", k.Noun()+" edit NAME [--no-verify]")
	noVerify := fs.Bool("no-verify", false, "Do not verify the file after editing")
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
	if err := a.editAndVerify(k, e, *noVerify); err != nil {
		return a.fail(err)
	}
	return 0
}

func (a *app) runDelete(k entityKind, args []string) int {
	fs := a.newFlagSet("delete", k.Noun()+" delete NAME...")
	names, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(names) == 0 {
		fs.Usage()
		return 2
	}

	// Resolve every name first so a typo deletes nothing.
	entities := make([]configfile.Entity, 0, len(names))
	for _, name := range names {
		e, err := k.Open(name)
		if err != nil {
			return a.fail(err)
		}
		entities = append(entities, e)
	}
	for _, e := range entities {
		if err := k.Delete(e); err != nil {
			return a.fail(err)
		}
		fmt.Fprintf(a.stdout, "Deleted %s '%s'\n", k.Noun(), e.Name())
	}
	return 0
}

func (a *app) runList(k entityKind, args []string) int {
	fs := a.newFlagSet("list", k.Noun()+" list [-q]")
	quiet := fs.Bool("q", false, "List names only, one per line")
	fs.BoolVar(quiet, "quiet", false, "List names only, one per line")
	rest, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(rest) != 0 {
		fs.Usage()
		return 2
	}

	names, err := k.List()
	if err != nil {
		return a.fail(err)
	}
	if *quiet {
		for _, name := range names {
			fmt.Fprintln(a.stdout, name)
		}
		return 0
	}

	if len(names) == 0 {
		fmt.Fprintf(a.stdout, "No %ss\n", k.Noun())
		return 0
	}
	fmt.Fprintf(a.stdout, "%ss:\n", capitalize(k.Noun()))
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  %s\n", name)
	}
	return 0
}

func (a *app) runVerify(k entityKind, args []string) int {
	fs := a.newFlagSet("verify", k.Noun()+" verify [NAME...]")
	names, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	if len(names) == 0 {
		all, err := k.List()
		if err != nil {
			return a.fail(err)
		}
		names = all
	}

	failed := 0
	for _, name := range names {
		e, err := k.Open(name)
		if err == nil {
			err = e.Verify()
		}
		a.actions.Record(actionlog.ActionVerify, name, map[string]any{"kind": k.Noun(), "ok": err == nil})
		if err != nil {
			failed++
			fmt.Fprintf(a.stderr, "%s '%s': %v\n", k.Noun(), name, err)
			continue
		}
		fmt.Fprintf(a.stdout, "%s '%s': ok\n", k.Noun(), name)
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
