// Package configfile manages named configuration files stored under a
// category prefix (for example "projects" or "layouts") inside a base
// directory.
package configfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrConfigExists is returned when creating a name that is already taken.
	ErrConfigExists = errors.New("config already exists")
	// ErrUnknownConfig is returned when a named config does not exist.
	ErrUnknownConfig = errors.New("config is unknown")
	// ErrPathDoesntExist is returned when an explicit path is missing.
	ErrPathDoesntExist = errors.New("path doesn't exist")
)

// LocalName is the name given to files opened with FromPath.
const LocalName = "local"

// File is a handle to a single named configuration file. The file itself
// does not have to exist yet (see Store.Create).
type File struct {
	prefix string
	name   string
	path   string
}

// Name returns the stem of the file name.
func (f File) Name() string { return f.name }

// Path returns the location of the file on disk.
func (f File) Path() string { return f.path }

// Prefix returns the category the file belongs to.
func (f File) Prefix() string { return f.prefix }

// Store resolves names under baseDir/prefix/<name><ext>.
type Store struct {
	baseDir string
	prefix  string
	ext     string
}

// NewStore creates a store for one category of config files.
func NewStore(baseDir, prefix, ext string) *Store {
	return &Store{baseDir: baseDir, prefix: prefix, ext: ext}
}

// Prefix returns the category name.
func (s *Store) Prefix() string { return s.prefix }

// Dir returns the directory holding this category.
func (s *Store) Dir() string { return filepath.Join(s.baseDir, s.prefix) }

// ValidateName rejects empty names, names with surrounding whitespace and
// names that would escape the category directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("invalid name %q: surrounding whitespace", name)
	}
	if strings.Contains(name, string(os.PathSeparator)) || name != filepath.Base(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

func (s *Store) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir(), name+s.ext), nil
}

func (s *Store) file(name, path string) File {
	return File{prefix: s.prefix, name: name, path: path}
}

// Create reserves a new name. It makes sure the category directory exists
// but does not create the file itself.
func (s *Store) Create(name string) (File, error) {
	path, err := s.path(name)
	if err != nil {
		return File{}, err
	}
	if _, err := os.Stat(path); err == nil {
		return File{}, fmt.Errorf("%w: %s '%s'", ErrConfigExists, s.prefix, name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return File{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return File{}, fmt.Errorf("failed to create %s directory: %w", s.prefix, err)
	}
	return s.file(name, path), nil
}

// CreateFromTemplate reserves a new name and writes template to it.
func (s *Store) CreateFromTemplate(name string, template []byte) (File, error) {
	f, err := s.Create(name)
	if err != nil {
		return File{}, err
	}
	if err := os.WriteFile(f.path, template, 0644); err != nil {
		return File{}, fmt.Errorf("failed to write %s '%s': %w", s.prefix, name, err)
	}
	return f, nil
}

// Open returns the handle of an existing named file.
func (s *Store) Open(name string) (File, error) {
	path, err := s.path(name)
	if err != nil {
		return File{}, err
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return File{}, fmt.Errorf("%w: %s '%s'", ErrUnknownConfig, s.prefix, name)
	}
	return s.file(name, path), nil
}

// Exists reports whether a named file exists.
func (s *Store) Exists(name string) bool {
	_, err := s.Open(name)
	return err == nil
}

// FromPath opens an arbitrary file outside the base directory. The handle is
// named "local".
func (s *Store) FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("%w: '%s'", ErrPathDoesntExist, path)
	}
	return s.file(LocalName, path), nil
}

// Copy duplicates f under newName in the same category.
func (s *Store) Copy(f File, newName string) (File, error) {
	dst, err := s.Create(newName)
	if err != nil {
		return File{}, err
	}
	if err := copyFile(f.path, dst.path); err != nil {
		return File{}, err
	}
	return dst, nil
}

// Rename moves f to newName in the same category.
func (s *Store) Rename(f File, newName string) (File, error) {
	dst, err := s.Create(newName)
	if err != nil {
		return File{}, err
	}
	if err := os.Rename(f.path, dst.path); err != nil {
		return File{}, fmt.Errorf("failed to rename %s '%s': %w", s.prefix, f.name, err)
	}
	return dst, nil
}

// Delete removes f from disk.
func (s *Store) Delete(f File) error {
	if err := os.Remove(f.path); err != nil {
		return fmt.Errorf("failed to delete %s '%s': %w", s.prefix, f.name, err)
	}
	return nil
}

// List returns the sorted names of all files in the category.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", s.prefix, err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, s.ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(name, s.ext))
	}
	sort.Strings(out)
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("the source path is not an existing regular file: %s", src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
