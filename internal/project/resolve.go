package project

import (
	"fmt"
	"os"

	"github.com/1broseidon/wmproj/internal/layout"
	"github.com/1broseidon/wmproj/internal/runtimepath"
)

// ResolveLayout turns l into a file i3 can read. Inline contents are written
// to a file in the runtime directory that cleanup removes; cleanup is never
// nil. Paths are returned without checking they exist.
func ResolveLayout(l Layout, layouts *layout.Store) (path string, cleanup func(), err error) {
	noop := func() {}

	switch l.Kind {
	case LayoutContents:
		dir, err := runtimepath.Dir()
		if err != nil {
			dir = ""
		}
		f, err := os.CreateTemp(dir, "wmproj-layout-*.json")
		if err != nil {
			return "", noop, fmt.Errorf("failed to create layout file: %w", err)
		}
		remove := func() { os.Remove(f.Name()) }
		if _, err := f.WriteString(l.Value); err != nil {
			f.Close()
			remove()
			return "", noop, fmt.Errorf("failed to write layout file: %w", err)
		}
		if err := f.Close(); err != nil {
			remove()
			return "", noop, fmt.Errorf("failed to write layout file: %w", err)
		}
		return f.Name(), remove, nil
	case LayoutManaged:
		managed, err := layouts.Open(l.Value)
		if err != nil {
			return "", noop, err
		}
		return managed.Path(), noop, nil
	case LayoutPath:
		return l.Value, noop, nil
	default:
		return "", noop, fmt.Errorf("unknown layout kind %v", l.Kind)
	}
}
