package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlfmt/sqlfmt/internal/lexer"
	"github.com/sqlfmt/sqlfmt/internal/splitter"
	"github.com/sqlfmt/sqlfmt/internal/token"
)

func groupSQL(t *testing.T, sql string) []*token.Token {
	t.Helper()
	lx := lexer.New()
	list := lx.Tokenize(sql)
	stmts := splitter.New().Split(list.Tokens)
	require.Len(t, stmts, 1)
	return Group(stmts[0])
}

func flattenValue(tokens []*token.Token) string {
	var b []byte
	for _, tok := range tokens {
		b = append(b, tok.Value...)
	}
	return string(b)
}

func TestGroupRoundTripsValue(t *testing.T) {
	sql := "select a, b as bb from my_table t where t.x = 1 and t.y between 1 and 10"
	grouped := groupSQL(t, sql)
	assert.Equal(t, sql, flattenValue(grouped))
}

func TestGroupParenthesisWraps(t *testing.T) {
	grouped := groupSQL(t, "select (1 + 2)")
	found := false
	for _, tok := range grouped {
		if tok.Kind == token.Parenthesis {
			found = true
			assert.Equal(t, "(1 + 2)", tok.Value)
		}
	}
	assert.True(t, found, "expected a Parenthesis group")
}

func TestGroupFunctionCall(t *testing.T) {
	grouped := groupSQL(t, "select count(x) from t")
	var fn *token.Token
	for _, tok := range grouped {
		if tok.Kind == token.Function {
			fn = tok
		}
	}
	require.NotNil(t, fn)
	assert.Equal(t, "count(x)", fn.Value)
}

func TestGroupIdentifierQualifiedName(t *testing.T) {
	grouped := groupSQL(t, "select t.x from t")
	var ident *token.Token
	for _, tok := range grouped {
		if tok.Kind == token.Identifier {
			ident = tok
			break
		}
	}
	require.NotNil(t, ident)
	assert.Equal(t, "t.x", ident.Value)
}

func TestGroupComparisonInWhere(t *testing.T) {
	grouped := groupSQL(t, "select a from t where a = 1")
	var where *token.Token
	for _, tok := range grouped {
		if tok.Kind == token.Where {
			where = tok
		}
	}
	require.NotNil(t, where)
	var cmp *token.Token
	for _, c := range where.Children {
		if c.Kind == token.Comparison {
			cmp = c
		}
	}
	require.NotNil(t, cmp)
	assert.Equal(t, "a = 1", cmp.Value)
}

func TestGroupBetweenAndIsTransparentToOperation(t *testing.T) {
	grouped := groupSQL(t, "select a from t where a between 1 and 10")
	var where *token.Token
	for _, tok := range grouped {
		if tok.Kind == token.Where {
			where = tok
		}
	}
	require.NotNil(t, where)
	for _, c := range where.Children {
		assert.NotEqual(t, token.Operation, c.Kind, "BETWEEN...AND must not be grouped as an Operation")
	}
}

func TestGroupCaseAtomic(t *testing.T) {
	grouped := groupSQL(t, "select case when a = 1 then 'x' else 'y' end from t")
	found := false
	for _, tok := range grouped {
		if tok.Kind == token.Case {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGroupIdentifierListSeparatesOnComma(t *testing.T) {
	grouped := groupSQL(t, "select a, b, c from t")
	found := false
	for _, tok := range grouped {
		if tok.Kind == token.IdentifierList {
			found = true
			assert.Contains(t, tok.Value, ",")
		}
	}
	assert.True(t, found)
}

func TestGroupValuesTuples(t *testing.T) {
	grouped := groupSQL(t, "insert into t values (1, 2), (3, 4)")
	found := false
	for _, tok := range grouped {
		if tok.Kind == token.Values {
			found = true
			assert.Equal(t, "values (1, 2), (3, 4)", tok.Value)
		}
	}
	assert.True(t, found)
}

func TestGroupAssignmentInUpdate(t *testing.T) {
	grouped := groupSQL(t, "update t set a = 1")
	found := false
	for _, tok := range grouped {
		if tok.Kind == token.Assignment {
			found = true
			assert.Equal(t, "a = 1", tok.Value)
		}
	}
	assert.True(t, found)
}

func TestGroupTypeCast(t *testing.T) {
	grouped := groupSQL(t, "select a::text from t")
	found := false
	for _, tok := range grouped {
		if tok.Kind == token.TypeCast {
			found = true
			assert.Equal(t, "a::text", tok.Value)
		}
	}
	assert.True(t, found)
}
