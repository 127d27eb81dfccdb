package sqlfs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSQLFilesSortedAndFiltered(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/proj/b.sql", []byte("select 1"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/proj/a.sql", []byte("select 2"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/proj/readme.md", []byte("ignore me"), 0o644))

	tree := New(mem, "/proj")
	files, err := tree.SQLFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"/proj/a.sql", "/proj/b.sql"}, files)
}

func TestTreeReadWriteRoundTrip(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/proj/a.sql", []byte("select 1"), 0o644))

	tree := New(mem, "/proj")
	contents, err := tree.Read("/proj/a.sql")
	require.NoError(t, err)
	assert.Equal(t, "select 1", contents)

	require.NoError(t, tree.Write("/proj/a.sql", "select 1;"))
	contents, err = tree.Read("/proj/a.sql")
	require.NoError(t, err)
	assert.Equal(t, "select 1;", contents)
}
