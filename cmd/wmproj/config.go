package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/wmproj/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wmproj config validate [--path PATH]")
	fmt.Fprintln(w, "  wmproj config print [--path PATH] [--defaults]")
}

func runConfig(args []string) int {
	return runConfigTo(os.Stdout, os.Stderr, args)
}

// runConfigTo implements `wmproj config`. It does not need a working app, so
// a broken settings file can still be inspected.
func runConfigTo(stdout, stderr io.Writer, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(stderr)
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", "Settings file path (default: ~/.config/wmproj/config.yaml)")

	switch args[0] {
	case "validate":
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		res, err := loadSettings(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if res.File == "" {
			fmt.Fprintln(stdout, "config: ok (no settings file, using defaults)")
		} else {
			fmt.Fprintln(stdout, "config: ok")
		}
		return 0

	case "print":
		defaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*defaults {
			res, err := loadSettings(*path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Fprintf(stdout, "# source: %s\n", res.File)
			}
			cfg = res.Config
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		stdout.Write(data)
		return 0

	default:
		fmt.Fprintf(stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func loadSettings(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}
