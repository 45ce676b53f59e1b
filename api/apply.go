package api

import (
	"fmt"
	"path"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/fixturelab/fixtree"
)

// Applier materializes manifests through a root scope.
type Applier struct {
	// Observe, when non-nil, is invoked with the root-relative path of
	// every materialized entry, directories first.
	Observe func(path string)
}

// Apply materializes m through scope with default settings.
func Apply(m *Manifest, scope *fixtree.Scope) error {
	return (&Applier{}).Apply(m, scope)
}

// Apply walks the manifest depth-first and materializes every declaration
// through the builder. Declarations execute in manifest order, files before
// subdirectories at each level.
func (a *Applier) Apply(m *Manifest, scope *fixtree.Scope) error {
	return a.applyLevel(scope, "", m.Dirs, m.Files)
}

func (a *Applier) applyLevel(scope *fixtree.Scope, at string, dirs []Dir, files []File) error {
	for _, f := range files {
		if err := a.applyFile(scope, at, f); err != nil {
			return err
		}
	}
	for _, d := range dirs {
		child, err := scope.Descend(d.Name)
		if err != nil {
			return err
		}
		rel := path.Join(at, d.Name)
		a.observe(rel)
		if err := a.applyLevel(child, rel, d.Dirs, d.Files); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) applyFile(scope *fixtree.Scope, at string, f File) error {
	action, err := parseAction(f.Action)
	if err != nil {
		return fmt.Errorf("file %q: %w", f.Name, err)
	}
	content, err := fileContent(f)
	if err != nil {
		return fmt.Errorf("file %q: %w", f.Name, err)
	}
	if err := scope.File(f.Name, action, content); err != nil {
		return err
	}
	a.observe(path.Join(at, f.Name))
	return nil
}

func (a *Applier) observe(rel string) {
	if a.Observe != nil {
		a.Observe(rel)
	}
}

func parseAction(s string) (fixtree.Action, error) {
	switch s {
	case "", "get_or_create":
		return fixtree.GetOrCreate, nil
	case "create":
		return fixtree.Create, nil
	case "get":
		return fixtree.Get, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

func fileContent(f File) (fixtree.Content, error) {
	if f.Content == nil {
		return fixtree.Original, nil
	}
	if f.Encoding == "" {
		return fixtree.Text(*f.Content), nil
	}
	enc, err := htmlindex.Get(f.Encoding)
	if err != nil {
		return fixtree.Content{}, fmt.Errorf("encoding %q: %w", f.Encoding, err)
	}
	return fixtree.TextEnc(*f.Content, enc), nil
}
