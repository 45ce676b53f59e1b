package api

import (
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturelab/fixtree"
)

func TestApply_BuildsTree(t *testing.T) {
	m := &Manifest{
		Dirs: []Dir{
			{
				Name: "src",
				Files: []File{
					{Name: "main.go", Action: "create", Content: strptr("package main\n")},
				},
				Dirs: []Dir{
					{Name: "deep/nested", Files: []File{{Name: "inner", Content: strptr("in")}}},
				},
			},
		},
		Files: []File{{Name: "README.md", Content: strptr("hello\n")}},
	}
	require.NoError(t, m.Validate())

	fs := memfs.New()
	require.NoError(t, Apply(m, fixtree.New(fs)))

	read := func(path string) string {
		data, err := util.ReadFile(fs, path)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, "hello\n", read("README.md"))
	assert.Equal(t, "package main\n", read("src/main.go"))
	assert.Equal(t, "in", read("src/deep/nested/inner"))
}

func TestApply_ObserveReportsPaths(t *testing.T) {
	m := &Manifest{
		Dirs: []Dir{{
			Name:  "d",
			Files: []File{{Name: "f", Content: strptr("x")}},
		}},
		Files: []File{{Name: "top", Content: strptr("y")}},
	}

	var seen []string
	applier := &Applier{Observe: func(path string) { seen = append(seen, path) }}
	require.NoError(t, applier.Apply(m, fixtree.New(memfs.New())))

	sort.Strings(seen)
	assert.Equal(t, []string{"d", "d/f", "top"}, seen)
}

func TestApply_NilContentIsOriginal(t *testing.T) {
	m := &Manifest{Files: []File{{Name: "empty.txt", Action: "create"}}}

	fs := memfs.New()
	require.NoError(t, Apply(m, fixtree.New(fs)))

	data, err := util.ReadFile(fs, "empty.txt")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestApply_EncodedContent(t *testing.T) {
	m := &Manifest{
		Files: []File{{Name: "latin.txt", Content: strptr("é"), Encoding: "iso-8859-1"}},
	}

	fs := memfs.New()
	require.NoError(t, Apply(m, fixtree.New(fs)))

	data, err := util.ReadFile(fs, "latin.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE9}, data)
}

func TestApply_UnknownEncoding(t *testing.T) {
	m := &Manifest{
		Files: []File{{Name: "x", Content: strptr("y"), Encoding: "no-such-charset"}},
	}
	err := Apply(m, fixtree.New(memfs.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding")
}

func TestApply_GetMissingPropagates(t *testing.T) {
	m := &Manifest{Files: []File{{Name: "absent", Action: "get"}}}
	err := Apply(m, fixtree.New(memfs.New()))
	require.ErrorIs(t, err, fixtree.ErrMissingTarget)
}

func TestApply_CreateConflictPropagates(t *testing.T) {
	fs := memfs.New()
	root := fixtree.New(fs)
	require.NoError(t, root.File("taken", fixtree.Create, fixtree.Original))

	m := &Manifest{Files: []File{{Name: "taken", Action: "create"}}}
	err := Apply(m, root)
	require.ErrorIs(t, err, fixtree.ErrConflict)
}
