package sqlfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileDecodesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sqlfmt.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
keyword_case: upper
reindent: true
indent_width: 4
`), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "upper", cfg.KeywordCase)
	assert.True(t, cfg.Reindent)
	assert.Equal(t, 4, cfg.IndentWidth)

	opts := cfg.ToOptions()
	assert.Equal(t, CaseUpper, opts.KeywordCase)
	assert.True(t, opts.Reindent)
}

func TestFindConfigFileWalksUpToAncestor(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".sqlfmt.yml"), []byte("reindent: true\n"), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found := FindConfigFile(nested)
	assert.Equal(t, filepath.Join(root, ".sqlfmt.yml"), found)
}

func TestFindConfigFileReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindConfigFile(dir))
}
