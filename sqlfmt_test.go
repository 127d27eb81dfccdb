package sqlfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIdentityWithNoOptions(t *testing.T) {
	sql := "select   a,b  from t where a=1"
	got := Format(sql, Options{})
	assert.Equal(t, sql, got, "zero Options registers only StripBeforeNewline, which leaves newline-free input unchanged")
}

func TestFormatKeywordCaseUpper(t *testing.T) {
	got := Format("select a from t", Options{KeywordCase: CaseUpper})
	assert.Equal(t, "SELECT a FROM t", got)
}

func TestFormatStripCommentsAndWhitespace(t *testing.T) {
	got := Format("select  a  -- note\nfrom t", Options{
		StripComments:   true,
		StripWhitespace: true,
	})
	assert.Equal(t, "select a\nfrom t", got)
}

func TestFormatSpacesAroundOperatorsIsIdempotent(t *testing.T) {
	opts := Options{UseSpaceAroundOperators: true}
	once := Format("select a+b from t", opts)
	twice := Format(once, opts)
	assert.Equal(t, once, twice)
}

func TestFormatReindentPlacesLandmarksOnNewLines(t *testing.T) {
	got := Format("select a from t where a = 1", Options{Reindent: true, IndentWidth: 2})
	assert.Contains(t, got, "\nfrom")
	assert.Contains(t, got, "\nwhere")
}

func TestPipelineReusableAcrossCalls(t *testing.T) {
	p := NewPipeline(Options{KeywordCase: CaseUpper})
	a := p.Format("select a from t")
	b := p.Format("select b from u")
	assert.Equal(t, "SELECT a FROM t", a)
	assert.Equal(t, "SELECT b FROM u", b)
}

func TestParseProducesOneListPerStatement(t *testing.T) {
	p := NewPipeline(Options{})
	lists := p.Parse("select a from t; select b from u;")
	require.Len(t, lists, 2)
}

func TestOptionsValidateForcesStripWhitespaceUnderReindent(t *testing.T) {
	got := Options{Reindent: true}.Validate()
	assert.True(t, got.StripWhitespace)
	assert.Equal(t, 2, got.IndentWidth)
}

func TestOptionsValidateIndentTabsOverridesChar(t *testing.T) {
	got := Options{IndentTabs: true}.Validate()
	assert.Equal(t, "\t", got.IndentChar)
}
