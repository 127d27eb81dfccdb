// Package embedcheck finds go:embed directives that bundle SQL files and
// lints each embedded file with a caller-supplied LintFunc; cmd/sqlfmt's
// embed-lint command passes one that parses the file with the sqlfmt
// pipeline and reports unmatched parentheses. It walks
// golang.org/x/tools/go/packages syntax trees looking for //go:embed
// directives attached to var declarations.
package embedcheck

import (
	"fmt"
	"go/ast"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Site is one go:embed directive found in the package graph.
type Site struct {
	File    string
	Line    int
	Pattern string
	VarName string
}

// FindEmbeds walks pkgs' syntax trees for go:embed directives.
func FindEmbeds(pkgs []*packages.Package) []Site {
	var sites []Site
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				gd, ok := decl.(*ast.GenDecl)
				if !ok || gd.Doc == nil {
					continue
				}
				pattern, ok := embedPattern(gd.Doc)
				if !ok {
					continue
				}
				name := firstValueSpecName(gd)
				pos := pkg.Fset.Position(gd.Pos())
				sites = append(sites, Site{
					File:    pos.Filename,
					Line:    pos.Line,
					Pattern: pattern,
					VarName: name,
				})
			}
		}
	}
	return sites
}

func embedPattern(doc *ast.CommentGroup) (string, bool) {
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		text = strings.TrimSpace(text)
		if rest, ok := strings.CutPrefix(text, "go:embed"); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func firstValueSpecName(gd *ast.GenDecl) string {
	for _, spec := range gd.Specs {
		if vs, ok := spec.(*ast.ValueSpec); ok && len(vs.Names) > 0 {
			return vs.Names[0].Name
		}
	}
	return ""
}

// Finding is one SQL file that failed to lint cleanly.
type Finding struct {
	Site Site
	Path string
	Err  error
}

// LintFunc lints the contents of one SQL file, returning a non-nil error if
// the sqlfmt pipeline could not make sense of it. cmd/sqlfmt supplies it,
// so embedcheck itself does not import the root sqlfmt package.
type LintFunc func(contents string) error

// ReadFunc reads the contents of a file path relative to a package
// directory, e.g. os.ReadFile.
type ReadFunc func(path string) ([]byte, error)

// Lint expands each Site's pattern with glob, relative to pkgDir, and lints
// every matching .sql file with lint.
func Lint(sites []Site, pkgDir string, read ReadFunc, glob func(pattern string) ([]string, error), lint LintFunc) ([]Finding, error) {
	var findings []Finding
	for _, site := range sites {
		matches, err := glob(filepath.Join(pkgDir, site.Pattern))
		if err != nil {
			return nil, fmt.Errorf("embedcheck: expanding pattern %q: %w", site.Pattern, err)
		}
		for _, path := range matches {
			if !strings.EqualFold(filepath.Ext(path), ".sql") {
				continue
			}
			contents, err := read(path)
			if err != nil {
				return nil, fmt.Errorf("embedcheck: reading %s: %w", path, err)
			}
			if err := lint(string(contents)); err != nil {
				findings = append(findings, Finding{Site: site, Path: path, Err: err})
			}
		}
	}
	return findings, nil
}
