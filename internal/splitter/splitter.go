// Package splitter partitions a flat token list into one token list per SQL
// statement. It is a small state machine that tracks parenthesis nesting
// and CREATE ... BEGIN ... END blocks so that semicolons inside
// stored-procedure bodies do not split the statement.
package splitter

import (
	"strings"

	"github.com/sqlfmt/sqlfmt/internal/token"
)

// Splitter holds the state machine fields. Reset between uses via reset(),
// including after every statement boundary, so the DDL-sticky fields never
// bleed across statements.
type Splitter struct {
	level      int
	beginDepth int
	isCreate   bool
	consumeWS  bool
}

// New returns a ready-to-use Splitter.
func New() *Splitter { return &Splitter{} }

func (s *Splitter) reset() {
	s.level = 0
	s.beginDepth = 0
	s.isCreate = false
	s.consumeWS = false
}

var eosKinds = map[token.Kind]bool{
	token.Whitespace:    true,
	token.Newline:       true,
	token.CommentSingle: true,
}

// Split partitions tokens into per-statement slices.
func (s *Splitter) Split(tokens []*token.Token) [][]*token.Token {
	s.reset()
	var stmts [][]*token.Token
	var cur []*token.Token

	for _, tok := range tokens {
		if s.consumeWS && !eosKinds[tok.Kind] {
			stmts = append(stmts, cur)
			cur = nil
			s.reset()
		}

		s.level += s.changeLevel(tok)

		if s.level <= 0 && tok.Kind == token.Punctuation && tok.Value == ";" {
			s.consumeWS = true
		}

		cur = append(cur, tok)
	}

	if hasNonWhitespace(cur) {
		stmts = append(stmts, cur)
	}
	return stmts
}

func hasNonWhitespace(tokens []*token.Token) bool {
	for _, t := range tokens {
		if !t.IsWhitespace() {
			return true
		}
	}
	return false
}

// changeLevel applies the nesting-level update rules for tok and returns
// the delta to apply to s.level.
func (s *Splitter) changeLevel(tok *token.Token) int {
	if tok.Kind == token.Punctuation && tok.Value == "(" {
		return 1
	}
	if tok.Kind == token.Punctuation && tok.Value == ")" {
		return -1
	}
	if !tok.IsKeyword() {
		return 0
	}

	unified := strings.ToUpper(tok.Value)

	if tok.Kind == token.KeywordDDL && strings.HasPrefix(unified, "CREATE") {
		s.isCreate = true
		return 0
	}
	if unified == "DECLARE" && s.isCreate && s.beginDepth == 0 {
		return 1
	}
	if unified == "BEGIN" {
		s.beginDepth++
		if s.isCreate {
			return 1
		}
		return 0
	}
	if unified == "END" {
		if s.beginDepth > 0 {
			s.beginDepth--
		}
		return -1
	}
	if (unified == "IF" || unified == "FOR" || unified == "WHILE" || unified == "CASE") && s.isCreate && s.beginDepth > 0 {
		return 1
	}
	if unified == "END IF" || unified == "END FOR" || unified == "END WHILE" {
		return -1
	}
	return 0
}
