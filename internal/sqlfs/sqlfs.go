// Package sqlfs walks a directory tree of .sql files so cmd/sqlfmt's
// directory mode can format a whole project in place. It uses
// github.com/spf13/afero instead of the bare os package so callers can
// substitute an in-memory filesystem in tests.
package sqlfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const defaultFileMode os.FileMode = 0o644

// Tree is a directory of SQL files backed by an afero.Fs. Production code
// builds one over afero.NewOsFs(); tests build one over afero.NewMemMapFs()
// to avoid touching disk.
type Tree struct {
	fs   afero.Fs
	root string
}

// New returns a Tree rooted at root.
func New(fs afero.Fs, root string) *Tree {
	return &Tree{fs: fs, root: root}
}

// NewOS returns a Tree over the real filesystem rooted at root.
func NewOS(root string) *Tree {
	return New(afero.NewOsFs(), root)
}

// SQLFiles returns every *.sql file under the tree, sorted for deterministic
// processing order.
func (t *Tree) SQLFiles() ([]string, error) {
	var files []string
	err := afero.Walk(t.fs, t.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Read returns a file's contents.
func (t *Tree) Read(path string) (string, error) {
	data, err := afero.ReadFile(t.fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write overwrites a file's contents in place, preserving its existing
// permission bits where the backing Fs reports them.
func (t *Tree) Write(path, contents string) error {
	info, err := t.fs.Stat(path)
	mode := defaultFileMode
	if err == nil {
		mode = info.Mode()
	}
	return afero.WriteFile(t.fs, path, []byte(contents), mode)
}
