// Package api defines the declarative manifest format for fixture trees.
// A manifest mirrors the builder grammar: nested dir blocks containing file
// entries. Manifests load from HCL or plain JSON and are validated before
// they are applied.
package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/ohler55/ojg/oj"
)

// Manifest is the root of a fixture-tree description.
type Manifest struct {
	Dirs  []Dir  `hcl:"dir,block" json:"dirs,omitempty" validate:"dive"`
	Files []File `hcl:"file,block" json:"files,omitempty" validate:"dive"`
}

// Dir declares a directory. Name may be a multi-segment relative path
// ("a/b/c"); missing intermediate directories are created on apply.
type Dir struct {
	Name  string `hcl:"name,label" json:"name" validate:"required,relpath"`
	Dirs  []Dir  `hcl:"dir,block" json:"dirs,omitempty" validate:"dive"`
	Files []File `hcl:"file,block" json:"files,omitempty" validate:"dive"`
}

// File declares a file entry within its enclosing directory. A nil Content
// means Original: the current content of the file is left untouched.
type File struct {
	Name     string  `hcl:"name,label" json:"name" validate:"required,entryname"`
	Action   string  `hcl:"action,optional" json:"action,omitempty" validate:"omitempty,oneof=create get get_or_create"`
	Content  *string `hcl:"content,optional" json:"content,omitempty"`
	Encoding string  `hcl:"encoding,optional" json:"encoding,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	must(validate.RegisterValidation("entryname", func(fl validator.FieldLevel) bool {
		return validEntryName(fl.Field().String())
	}))
	must(validate.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		if p == "" || strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
			return false
		}
		for _, seg := range strings.Split(p, "/") {
			if !validEntryName(seg) {
				return false
			}
		}
		return true
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func validEntryName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// Load reads a manifest from path, decoding HCL or JSON by file extension,
// and validates it.
func Load(path string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if err := hclsimple.DecodeFile(path, nil, &m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := oj.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("manifest %s: unsupported extension (want .hcl or .json)", path)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks struct tags plus the rules tags cannot express: sibling
// names must be unique within each directory.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return formatValidationError(err)
	}
	return uniqueSiblings("", m.Dirs, m.Files)
}

func uniqueSiblings(at string, dirs []Dir, files []File) error {
	fileSeen := make(map[string]bool)
	for _, f := range files {
		if fileSeen[f.Name] {
			return fmt.Errorf("%s: duplicate file name %q", loc(at), f.Name)
		}
		fileSeen[f.Name] = true
	}
	for _, d := range dirs {
		// Directories sharing a segment merge on apply; only a collision
		// with a file name is a conflict.
		first, _, _ := strings.Cut(d.Name, "/")
		if fileSeen[first] {
			return fmt.Errorf("%s: name %q declared as both file and directory", loc(at), first)
		}
		if err := uniqueSiblings(joinLoc(at, d.Name), d.Dirs, d.Files); err != nil {
			return err
		}
	}
	return nil
}

func loc(at string) string {
	if at == "" {
		return "root"
	}
	return at
}

func joinLoc(at, name string) string {
	if at == "" {
		return name
	}
	return at + "/" + name
}

// formatValidationError converts validator errors into messages naming the
// offending field.
func formatValidationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("%s: validation failed on %q (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
