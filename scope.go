// Package fixtree builds directory trees used as fixtures for integration
// tests. Callers describe the tree through nested, path-scoped declarations;
// every declaration materializes immediately against the backing filesystem,
// so later declarations observe the effects of earlier ones on the same
// path. The backing filesystem is a billy.Filesystem: osfs for real roots,
// memfs for I/O-free unit tests.
package fixtree

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Scope is a handle bound to one directory of the backing filesystem. All
// declarations made through it are relative to that directory. A Scope holds
// no state beyond the bound path; nested declarations receive their child
// scope as an explicit argument.
type Scope struct {
	fs   billy.Filesystem
	path string
}

// New returns the root scope of fs.
func New(fs billy.Filesystem) *Scope {
	return &Scope{fs: fs}
}

// At returns a root scope bound to dir on the host filesystem. dir becomes
// the root of the tree: path resolution cannot escape above it.
func At(dir string) *Scope {
	return New(osfs.New(dir))
}

// Path returns the scope's directory path relative to the root. The root
// scope returns "".
func (s *Scope) Path() string {
	return s.path
}

// Dir creates or enters rel and runs build against the child scope. rel may
// be multi-segment ("a/b/c"): every missing intermediate directory is
// created, existing ones are entered without error, and build runs against
// the deepest segment. A nil build creates the directories only.
func (s *Scope) Dir(rel string, build func(*Scope) error) error {
	child, err := s.Descend(rel)
	if err != nil {
		return err
	}
	if build == nil {
		return nil
	}
	return build(child)
}

// Descend creates the directory chain named by rel and returns a scope
// bound to the deepest segment. Calls compose left to right: each Descend
// deepens the scope by one or more segments, and further declarations may
// chain directly off the result.
func (s *Scope) Descend(rel string) (*Scope, error) {
	if err := validRelPath(rel); err != nil {
		return nil, fmt.Errorf("descend %q: %w", rel, err)
	}
	cur := s
	for _, seg := range strings.Split(rel, "/") {
		child, err := cur.enterDir(seg)
		if err != nil {
			return nil, err
		}
		cur = child
	}
	return cur, nil
}

// enterDir materializes one directory segment and returns its scope.
func (s *Scope) enterDir(name string) (*Scope, error) {
	full := s.join(name)
	info, err := s.fs.Stat(full)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("dir %s: exists as a file: %w", full, ErrConflict)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := s.fs.MkdirAll(full, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", full, err)
		}
	default:
		return nil, fmt.Errorf("stat %s: %w", full, err)
	}
	return &Scope{fs: s.fs, path: full}, nil
}

// File declares a file with one whole-content assignment. name must be a
// simple name without path separators; use Dir or Descend to qualify deeper
// paths first.
func (s *Scope) File(name string, action Action, content Content) error {
	return s.FileWith(name, action, func(b *FileBuilder) error {
		return b.Set(content)
	})
}

// FileWith declares a file and runs build against a FileBuilder seeded with
// the file's current content (empty for a fresh create). The accumulated
// content is written when build returns; a later declaration against the
// same path observes it.
func (s *Scope) FileWith(name string, action Action, build func(*FileBuilder) error) error {
	if err := validName(name); err != nil {
		return fmt.Errorf("file %q: %w", name, err)
	}
	full := s.join(name)

	info, err := s.fs.Stat(full)
	present := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", full, err)
	}
	if present && info.IsDir() {
		return fmt.Errorf("file %s: exists as a directory: %w", full, ErrConflict)
	}

	outcome, err := resolveEntry(present, action)
	if err != nil {
		return fmt.Errorf("file %s: %w", full, err)
	}

	var current []byte
	if outcome == entryRetrieve {
		current, err = util.ReadFile(s.fs, full)
		if err != nil {
			return fmt.Errorf("read %s: %w", full, err)
		}
	}

	b := &FileBuilder{content: current}
	if err := build(b); err != nil {
		return err
	}

	// Retrieval with unchanged content needs no rewrite. A fresh create
	// always writes, even when the content is empty.
	if outcome == entryRetrieve && bytes.Equal(b.content, current) {
		return nil
	}
	if err := util.WriteFile(s.fs, full, b.content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", full, err)
	}
	return nil
}

func (s *Scope) join(name string) string {
	return s.fs.Join(s.path, name)
}

func validRelPath(rel string) error {
	if rel == "" {
		return errors.New("empty path")
	}
	if strings.HasPrefix(rel, "/") || strings.HasSuffix(rel, "/") {
		return errors.New("path must be relative without leading or trailing slash")
	}
	for _, seg := range strings.Split(rel, "/") {
		if err := validName(seg); err != nil {
			return err
		}
	}
	return nil
}

func validName(name string) error {
	switch name {
	case "", ".", "..":
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q contains a path separator", name)
	}
	return nil
}
