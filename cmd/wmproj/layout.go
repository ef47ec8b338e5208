package main

import (
	"fmt"
	"io"
)

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wmproj layout <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  new NAME [-t TEMPLATE|-]  Create a layout, optionally from a template file or stdin")
	fmt.Fprintln(w, "  copy EXISTING NEW         Copy a layout")
	fmt.Fprintln(w, "  rename CURRENT NEW        Rename a layout")
	fmt.Fprintln(w, "  edit NAME                 Open a layout in $VISUAL/$EDITOR (alias: open)")
	fmt.Fprintln(w, "  delete NAME...            Delete layouts (alias: remove)")
	fmt.Fprintln(w, "  info NAME                 Show a layout's file details")
	fmt.Fprintln(w, "  list                      List layouts")
	fmt.Fprintln(w, "  verify [NAME...]          Verify layouts (all when no name is given)")
}

func (a *app) runLayout(k entityKind, args []string) int {
	if len(args) == 0 {
		printLayoutUsage(a.stderr)
		return 2
	}

	switch args[0] {
	case "copy":
		return a.runCopy(k, args[1:])
	case "delete", "remove":
		return a.runDelete(k, args[1:])
	case "edit", "open":
		return a.runEdit(k, args[1:])
	case "info":
		return a.runInfo(k, args[1:])
	case "list":
		return a.runList(k, args[1:])
	case "new":
		return a.runNew(k, args[1:])
	case "rename":
		return a.runRename(k, args[1:])
	case "verify":
		return a.runVerify(k, args[1:])
	case "help", "-h", "--help":
		printLayoutUsage(a.stdout)
		return 0
	default:
		fmt.Fprintf(a.stderr, "Unknown layout command: %s\n\n", args[0])
		printLayoutUsage(a.stderr)
		return 2
	}
}
