package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlfmt/sqlfmt/internal/lexer"
	"github.com/sqlfmt/sqlfmt/internal/splitter"
	"github.com/sqlfmt/sqlfmt/internal/token"
)

func flatValue(tokens []*token.Token) string {
	var b []byte
	for _, t := range tokens {
		b = append(b, t.Value...)
	}
	return string(b)
}

func TestKeywordCaseUpper(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize("select a from t")
	out := KeywordCase(CaseUpper)(list.Tokens)
	assert.Equal(t, "SELECT a FROM t", flatValue(out))
}

func TestIdentifierCasePreservesQuoted(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize(`select "Foo", bar`)
	out := IdentifierCase(CaseUpper)(list.Tokens)
	assert.Equal(t, `select "Foo", BAR`, flatValue(out))
}

func TestStripCommentsSingleLine(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize("select a -- comment\nfrom t")
	StripComments()(list)
	assert.Equal(t, "select a \nfrom t", flatValue(list.Tokens))
}

func TestStripWhitespaceCollapsesRuns(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize("select   a   from    t")
	out := StripWhitespace()(list.Tokens)
	assert.Equal(t, "select a from t", flatValue(out))
}

func TestStripWhitespaceStripsInsideParens(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize("select ( a )")
	out := StripWhitespace()(list.Tokens)
	assert.Equal(t, "select (a)", flatValue(out))
}

func TestSpacesAroundOperatorsInsertsMissingSpace(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize("select a+b from t")
	SpacesAroundOperators()(list)
	assert.Equal(t, "select a + b from t", flatValue(list.Tokens))
}

func TestSpacesAroundOperatorsIdempotent(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize("select a + b from t")
	SpacesAroundOperators()(list)
	first := flatValue(list.Tokens)
	SpacesAroundOperators()(list)
	assert.Equal(t, first, flatValue(list.Tokens))
}

func TestStripBeforeNewlineRemovesTrailingSpace(t *testing.T) {
	lx := lexer.New()
	list := lx.Tokenize("select a  \nfrom t")
	out := StripBeforeNewline()(list.Tokens)
	assert.Equal(t, "select a\nfrom t", flatValue(out))
}

func buildStatement(t *testing.T, sql string) *token.List {
	t.Helper()
	lx := lexer.New()
	list := lx.Tokenize(sql)
	stmts := splitter.New().Split(list.Tokens)
	require.Len(t, stmts, 1)
	return token.NewList(stmts[0])
}

func TestReindentInsertsNewlinesAtLandmarks(t *testing.T) {
	list := buildStatement(t, "select a from t where a = 1")
	list.Tokens = StripWhitespace()(list.Tokens)
	Reindent(Options{IndentWidth: 2, IndentChar: " "})(list)
	got := flatValue(list.Tokens)
	assert.Contains(t, got, "\nfrom")
	assert.Contains(t, got, "\nwhere")
}
