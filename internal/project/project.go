// Package project implements wmproj project files: parsing, verification
// and starting a project against a running i3.
package project

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/1broseidon/wmproj/internal/configfile"
	"github.com/1broseidon/wmproj/internal/layout"
)

// Prefix is the category directory holding projects.
const Prefix = "projects"

const ext = ".toml"

//go:embed template.toml
var projectTemplate []byte

// Template returns the contents written by `wmproj new`.
func Template() []byte {
	return append([]byte(nil), projectTemplate...)
}

// Project is a handle to one project file. The file is parsed on the first
// call to Config and the result is kept for the lifetime of the handle;
// re-open the project to observe later edits.
type Project struct {
	file  configfile.File
	store *Store

	config *Config
}

// Name returns the project name ("local" for files opened by path).
func (p *Project) Name() string { return p.file.Name() }

// Path returns the project file location.
func (p *Project) Path() string { return p.file.Path() }

// Config parses the project file, once.
func (p *Project) Config() (*Config, error) {
	if p.config != nil {
		return p.config, nil
	}
	data, err := os.ReadFile(p.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to read project '%s': %w", p.Name(), err)
	}
	cfg, err := Parse(data, p.store.opts)
	if err != nil {
		return nil, err
	}
	p.config = cfg
	return cfg, nil
}

// Verify parses the project and checks that every referenced path exists
// and that a managed layout reference resolves.
func (p *Project) Verify() error {
	cfg, err := p.Config()
	if err != nil {
		return err
	}

	var paths []string
	if cfg.General.WorkingDirectory != "" {
		paths = append(paths, cfg.General.WorkingDirectory)
	}
	switch cfg.General.Layout.Kind {
	case LayoutManaged:
		if _, err := p.store.layouts.Open(cfg.General.Layout.Value); err != nil {
			return err
		}
	case LayoutPath:
		paths = append(paths, cfg.General.Layout.Value)
	}
	for _, app := range cfg.Applications {
		if app.WorkingDirectory != "" {
			paths = append(paths, app.WorkingDirectory)
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: '%s'", configfile.ErrPathDoesntExist, path)
		}
	}
	return nil
}

// Store provides CRUD over projects. Layout references inside project files
// are resolved against layouts.
type Store struct {
	files   *configfile.Store
	layouts *layout.Store
	opts    ParseOptions
}

// NewStore returns a project store rooted at baseDir. A zero
// defaultExecTimeout selects DefaultExecTimeout.
func NewStore(baseDir string, layouts *layout.Store, defaultExecTimeout time.Duration) *Store {
	return &Store{
		files:   configfile.NewStore(baseDir, Prefix, ext),
		layouts: layouts,
		opts: ParseOptions{
			LayoutExists:       layouts.Exists,
			DefaultExecTimeout: defaultExecTimeout,
		},
	}
}

// Layouts returns the layout store used for resolving managed layouts.
func (s *Store) Layouts() *layout.Store { return s.layouts }

func (s *Store) wrap(f configfile.File, err error) (*Project, error) {
	if err != nil {
		return nil, err
	}
	return &Project{file: f, store: s}, nil
}

// Create reserves a new project name without writing the file.
func (s *Store) Create(name string) (*Project, error) { return s.wrap(s.files.Create(name)) }

// CreateFromTemplate creates a project pre-filled with template.
func (s *Store) CreateFromTemplate(name string, template []byte) (*Project, error) {
	return s.wrap(s.files.CreateFromTemplate(name, template))
}

// Open returns an existing project.
func (s *Store) Open(name string) (*Project, error) { return s.wrap(s.files.Open(name)) }

// FromPath opens a project file outside the config directory.
func (s *Store) FromPath(path string) (*Project, error) { return s.wrap(s.files.FromPath(path)) }

// Copy duplicates p under newName.
func (s *Store) Copy(p *Project, newName string) (*Project, error) {
	return s.wrap(s.files.Copy(p.file, newName))
}

// Rename moves p to newName.
func (s *Store) Rename(p *Project, newName string) (*Project, error) {
	return s.wrap(s.files.Rename(p.file, newName))
}

// Delete removes p.
func (s *Store) Delete(p *Project) error { return s.files.Delete(p.file) }

// List returns the sorted names of all projects.
func (s *Store) List() ([]string, error) { return s.files.List() }
