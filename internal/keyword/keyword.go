// Package keyword holds the static classification table the lexer's trie is
// built from: every recognised SQL keyword mapped to the token.Kind it
// should be emitted as.
package keyword

import "github.com/sqlfmt/sqlfmt/internal/token"

// Table maps an upper-cased keyword spelling to its classification. The
// trie (internal/trie) is built once from this table at pipeline
// construction time.
var Table = buildTable()

func buildTable() map[string]token.Kind {
	t := map[string]token.Kind{}
	for _, w := range dml {
		t[w] = token.KeywordDML
	}
	for _, w := range ddl {
		t[w] = token.KeywordDDL
	}
	for _, w := range cte {
		t[w] = token.KeywordCTE
	}
	for _, w := range plain {
		t[w] = token.Keyword
	}
	return t
}

// dml marks data-manipulation statement keywords.
var dml = []string{
	"SELECT", "INSERT", "UPDATE", "DELETE", "MERGE", "UPSERT",
}

// ddl marks data-definition statement keywords.
var ddl = []string{
	"CREATE", "ALTER", "DROP", "TRUNCATE", "RENAME",
}

// cte marks keywords specific to common-table-expressions.
var cte = []string{
	"WITH", "RECURSIVE",
}

// plain holds every other reserved word the grouper and reindent/aligned
// filters need to recognise by name.
var plain = []string{
	"ALL", "AND", "ANY", "AS", "ASC", "BEGIN", "BETWEEN", "BY", "CASCADE",
	"CASE", "CAST", "CHECK", "COLLATE", "COLUMN", "COMMIT", "CONSTRAINT",
	"CONTAINS", "CROSS", "CURRENT", "DECLARE", "DEFAULT", "DESC", "DISTINCT",
	"ELSE", "END", "ESCAPE", "EXCEPT", "EXEC", "EXECUTE", "EXISTS", "FETCH",
	"FOR", "FOREIGN", "FROM", "FULL", "FUNCTION", "GO", "GRANT", "GROUP",
	"HAVING", "IF", "IGNORE", "IN", "INDEX", "INNER", "INTERSECT", "INTO",
	"IS", "JOIN", "KEY", "LEFT", "LIKE", "LIMIT", "NATURAL", "NOT", "NULL",
	"OF", "OFFSET", "ON", "OR", "ORDER", "OUTER", "OVER", "PARTITION",
	"PRIMARY", "PROCEDURE", "RAISERROR", "REFERENCES", "REPLACE", "RETURN",
	"REVOKE", "RIGHT", "ROLLBACK", "ROWS", "SCHEMA", "SET", "SOME",
	"STRAIGHT_JOIN", "TABLE", "THEN", "TO", "TOP", "TRANSACTION", "TRIGGER",
	"TRUE", "FALSE", "UNION", "UNIQUE", "UNPIVOT", "USE", "USING", "VALUES",
	"VIEW", "WAITFOR", "WHEN", "WHERE", "WHILE", "WINDOW",
}

// Lookup classifies a keyword candidate, which must already be upper-cased.
// ok is false when word is not a recognised keyword.
func Lookup(word string) (token.Kind, bool) {
	k, ok := Table[word]
	return k, ok
}

// DataTypes lists bare type names the TypedLiteral grouper pass recognises
// in front of a string literal, e.g. DATE '2020-01-01'.
var DataTypes = map[string]bool{
	"DATE": true, "TIME": true, "TIMESTAMP": true, "DATETIME": true,
	"DATETIME2": true, "INTERVAL": true, "NUMERIC": true, "DECIMAL": true,
}

// ReindentLandmarks are the keywords the reindent filter newlines before,
// spelled as the multi-word phrase they are matched against.
var ReindentLandmarks = []string{
	"SELECT", "FROM", "WHERE", "GROUP BY", "HAVING", "ORDER BY", "LIMIT",
	"UNION", "UNION ALL", "JOIN", "INNER JOIN", "LEFT JOIN", "RIGHT JOIN",
	"FULL JOIN", "FULL OUTER JOIN", "CROSS JOIN", "VALUES", "SET",
}

// AlignedLandmarks is the landmark set the aligned-indent filter
// right-justifies on.
var AlignedLandmarks = []string{
	"SELECT", "FROM", "WHERE", "AND", "OR", "GROUP BY", "HAVING", "ORDER BY",
	"LIMIT", "JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL OUTER JOIN",
	"CROSS JOIN", "INNER JOIN", "STRAIGHT_JOIN", "ON", "USING", "UNION",
	"VALUES",
}
