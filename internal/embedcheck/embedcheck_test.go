package embedcheck

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedPatternExtractsDirective(t *testing.T) {
	src := `package p

//go:embed migrations/*.sql
var Migrations embed.FS
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	var found bool
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Doc == nil {
			continue
		}
		pattern, ok := embedPattern(gd.Doc)
		if !ok {
			continue
		}
		found = true
		assert.Equal(t, "migrations/*.sql", pattern)
		assert.Equal(t, "Migrations", firstValueSpecName(gd))
	}
	assert.True(t, found)
}

func TestLintReportsFindingsOnly(t *testing.T) {
	sites := []Site{{Pattern: "*.sql", VarName: "Migrations"}}

	read := func(path string) ([]byte, error) {
		if path == "bad.sql" {
			return []byte("select ("), nil
		}
		return []byte("select 1"), nil
	}
	glob := func(pattern string) ([]string, error) {
		return []string{"good.sql", "bad.sql"}, nil
	}
	lint := func(contents string) error {
		if contents == "select (" {
			return errors.New("unbalanced parenthesis")
		}
		return nil
	}

	findings, err := Lint(sites, "", read, glob, lint)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "bad.sql", findings[0].Path)
}
