// Package layout manages saved i3 layout files (the JSON produced by
// i3-save-tree) under the "layouts" category of the config directory.
package layout

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/wmproj/internal/configfile"
)

// Prefix is the category directory holding managed layouts.
const Prefix = "layouts"

const ext = ".json"

// ErrEmptyLayout is returned by Verify for a blank layout file.
var ErrEmptyLayout = errors.New("layout is empty")

// Layout is a handle to one managed layout file.
type Layout struct {
	file configfile.File
}

// Name returns the layout name.
func (l *Layout) Name() string { return l.file.Name() }

// Path returns the layout file location.
func (l *Layout) Path() string { return l.file.Path() }

// Verify checks that the layout file exists and has non-blank contents.
// The JSON itself is passed to i3 untouched and is not validated here.
func (l *Layout) Verify() error {
	data, err := os.ReadFile(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: '%s'", configfile.ErrPathDoesntExist, l.Path())
		}
		return fmt.Errorf("failed to read layout '%s': %w", l.Name(), err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("%w: '%s'", ErrEmptyLayout, l.Name())
	}
	return nil
}

// Store provides CRUD over managed layouts.
type Store struct {
	files *configfile.Store
}

// NewStore returns a layout store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{files: configfile.NewStore(baseDir, Prefix, ext)}
}

func wrap(f configfile.File, err error) (*Layout, error) {
	if err != nil {
		return nil, err
	}
	return &Layout{file: f}, nil
}

// Create reserves a new layout name without writing the file.
func (s *Store) Create(name string) (*Layout, error) { return wrap(s.files.Create(name)) }

// CreateFromTemplate creates a layout pre-filled with template.
func (s *Store) CreateFromTemplate(name string, template []byte) (*Layout, error) {
	return wrap(s.files.CreateFromTemplate(name, template))
}

// Open returns an existing layout.
func (s *Store) Open(name string) (*Layout, error) { return wrap(s.files.Open(name)) }

// FromPath opens a layout file outside the config directory.
func (s *Store) FromPath(path string) (*Layout, error) { return wrap(s.files.FromPath(path)) }

// Exists reports whether a managed layout called name exists.
func (s *Store) Exists(name string) bool { return s.files.Exists(name) }

// Copy duplicates l under newName.
func (s *Store) Copy(l *Layout, newName string) (*Layout, error) {
	return wrap(s.files.Copy(l.file, newName))
}

// Rename moves l to newName.
func (s *Store) Rename(l *Layout, newName string) (*Layout, error) {
	return wrap(s.files.Rename(l.file, newName))
}

// Delete removes l.
func (s *Store) Delete(l *Layout) error { return s.files.Delete(l.file) }

// List returns the sorted names of all managed layouts.
func (s *Store) List() ([]string, error) { return s.files.List() }
