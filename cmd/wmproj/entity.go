package main

import (
	"github.com/1broseidon/wmproj/internal/configfile"
	"github.com/1broseidon/wmproj/internal/layout"
	"github.com/1broseidon/wmproj/internal/project"
)

// entityKind lets the shared subcommands work on projects and layouts alike.
type entityKind interface {
	// Noun is "project" or "layout".
	Noun() string
	Open(name string) (configfile.Entity, error)
	Create(name string, template []byte) (configfile.Entity, error)
	Copy(e configfile.Entity, newName string) (configfile.Entity, error)
	Rename(e configfile.Entity, newName string) (configfile.Entity, error)
	Delete(e configfile.Entity) error
	List() ([]string, error)
}

type projectKind struct{ store *project.Store }

func (projectKind) Noun() string { return "project" }

func (k projectKind) Open(name string) (configfile.Entity, error) {
	return entity(k.store.Open(name))
}

// Create uses the built-in project template when template is nil.
func (k projectKind) Create(name string, template []byte) (configfile.Entity, error) {
	if template == nil {
		template = project.Template()
	}
	return entity(k.store.CreateFromTemplate(name, template))
}

func (k projectKind) Copy(e configfile.Entity, newName string) (configfile.Entity, error) {
	return entity(k.store.Copy(e.(*project.Project), newName))
}

func (k projectKind) Rename(e configfile.Entity, newName string) (configfile.Entity, error) {
	return entity(k.store.Rename(e.(*project.Project), newName))
}

func (k projectKind) Delete(e configfile.Entity) error { return k.store.Delete(e.(*project.Project)) }

func (k projectKind) List() ([]string, error) { return k.store.List() }

type layoutKind struct{ store *layout.Store }

func (layoutKind) Noun() string { return "layout" }

func (k layoutKind) Open(name string) (configfile.Entity, error) {
	return entity(k.store.Open(name))
}

// Create leaves the file to the editor when template is nil.
func (k layoutKind) Create(name string, template []byte) (configfile.Entity, error) {
	if template == nil {
		return entity(k.store.Create(name))
	}
	return entity(k.store.CreateFromTemplate(name, template))
}

func (k layoutKind) Copy(e configfile.Entity, newName string) (configfile.Entity, error) {
	return entity(k.store.Copy(e.(*layout.Layout), newName))
}

func (k layoutKind) Rename(e configfile.Entity, newName string) (configfile.Entity, error) {
	return entity(k.store.Rename(e.(*layout.Layout), newName))
}

func (k layoutKind) Delete(e configfile.Entity) error { return k.store.Delete(e.(*layout.Layout)) }

func (k layoutKind) List() ([]string, error) { return k.store.List() }

// entity converts a typed store result without turning a nil pointer into a
// non-nil interface.
func entity[T configfile.Entity](e T, err error) (configfile.Entity, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}
