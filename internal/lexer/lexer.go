// Package lexer converts raw SQL text into a flat sequence of token.Token
// values without loss: every byte of the input is accounted for in some
// token's Value, the round-trip guarantee the rest of the pipeline relies
// on.
//
// Lookup is trie-first: the keyword trie is tried at every position: if it
// reports a match, that wins. Otherwise an ordered list of patterns is
// tried in turn and the first to match wins; a bare name found there that
// spells an entry of keyword.Table (a keyword under three characters, or one
// not followed by a trie word boundary) takes that entry's kind. A
// one-rune fallback (a Name, or a Command for a backslash) always matches,
// so the lexer never gets stuck.
package lexer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/smasher164/xid"

	"github.com/sqlfmt/sqlfmt/internal/keyword"
	"github.com/sqlfmt/sqlfmt/internal/token"
	"github.com/sqlfmt/sqlfmt/internal/trie"
)

// maxTrieProbe bounds how many runes of the remaining input we upper-case
// before probing the keyword trie; no keyword in keyword.Table is longer
// than this.
const maxTrieProbe = 24

// pattern is one entry of the lexer's ordered regex-alternative list.
// match returns the number of bytes consumed from the head of s, or 0 if
// the pattern does not apply there. The order patterns are registered in
// is load-bearing: hex literals must be tried before plain integers,
// dollar-quoted strings before $-placeholders, and so on.
type pattern struct {
	kind  token.Kind
	match func(s string) int
}

// Lexer holds the compiled pattern list and keyword trie built once at
// pipeline construction. Both are logically immutable after build and safe
// to share read-only.
type Lexer struct {
	trie     *trie.Trie
	patterns []pattern
}

// New builds a Lexer from keyword.Table.
func New() *Lexer {
	l := &Lexer{trie: trie.New()}
	for word, kind := range keyword.Table {
		l.trie.Insert(word, kind)
	}
	l.patterns = buildPatterns()
	return l
}

// Tokenize lexes all of src into a flat token.List. It never fails: any
// byte that matches nothing specific becomes a one-rune token.Name (or
// token.Command for a leading backslash).
func (l *Lexer) Tokenize(src string) *token.List {
	var out []*token.Token
	pos := 0
	var lastSignificant *token.Token
	for pos < len(src) {
		remaining := src[pos:]

		if n, kind, ok := l.probeTrie(remaining); ok {
			tok := token.New(kind, remaining[:n])
			out = append(out, tok)
			lastSignificant = tok
			pos += n
			continue
		}

		matched := false
		for _, p := range l.patterns {
			if n := p.match(remaining); n > 0 {
				kind := p.kind
				if kind == token.Wildcard {
					kind = wildcardOrOperator(lastSignificant)
				}
				if kind == token.Name {
					if kw, ok := keyword.Lookup(strings.ToUpper(remaining[:n])); ok {
						kind = kw
					}
				}
				tok := token.New(kind, remaining[:n])
				out = append(out, tok)
				if !tok.IsWhitespace() && tok.Kind != token.CommentSingle && tok.Kind != token.CommentMultiline {
					lastSignificant = tok
				}
				pos += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		// Fallback: consume exactly one rune so we always make progress.
		r, size := decodeRune(remaining)
		kind := token.Name
		if r == '\\' {
			kind = token.Command
		}
		tok := token.New(kind, remaining[:size])
		out = append(out, tok)
		lastSignificant = tok
		pos += size
	}
	return token.NewList(out)
}

func decodeRune(s string) (rune, int) {
	for _, r := range s {
		return r, utf8Len(r)
	}
	return 0, 1
}

// probeTrie upper-cases a short bounded prefix (ASCII letters only change
// in place, so byte offsets are preserved) and asks the trie for the
// longest keyword match.
func (l *Lexer) probeTrie(remaining string) (int, token.Kind, bool) {
	probe := remaining
	count := 0
	for i := range probe {
		count++
		if count > maxTrieProbe {
			probe = probe[:i]
			break
		}
	}
	return l.trie.MatchToken(strings.ToUpper(probe))
}

// wildcardOrOperator applies the "wildcard vs multiplication" rule at the
// point the candidate '*' is lexed: a '*' is a wildcard iff its nearest
// significant left neighbour is SELECT, ',', '.', '(', or nothing at all
// (start of statement). The grouper's Operation pass (internal/grouper)
// re-checks this once groups exist, since by then the neighbour may itself
// have become a group.
func wildcardOrOperator(prev *token.Token) token.Kind {
	if prev == nil {
		return token.Wildcard
	}
	if prev.Kind == token.KeywordDML && strings.EqualFold(prev.Value, "select") {
		return token.Wildcard
	}
	if prev.Kind == token.Punctuation && (prev.Value == "," || prev.Value == "." || prev.Value == "(") {
		return token.Wildcard
	}
	return token.Operator
}

func buildPatterns() []pattern {
	var p []pattern

	// 1. Comments.
	singleLineComment := regexp.MustCompile(`^--[^\r\n]*(\r\n|\r|\n)?`)
	p = append(p, pattern{token.CommentSingle, reMatch(singleLineComment)})

	multiLineComment := regexp.MustCompile(`^/\*[\s\S]*?\*/`)
	p = append(p, pattern{token.CommentMultiline, reMatch(multiLineComment)})

	// 2. Dollar-quoted strings ($tag$ ... $tag$) must be tried before
	// $-prefixed placeholders, since both start with '$'. Go's RE2 has no
	// backreferences, so this is hand-scanned.
	p = append(p, pattern{token.LiteralString, matchDollarQuoted})

	// 3. Quoted strings: single, double, backtick, each with doubled-quote
	// and backslash escapes.
	p = append(p, pattern{token.LiteralString, reMatch(regexp.MustCompile(`^'(?:[^'\\]|\\.|'')*'`))})
	p = append(p, pattern{token.Name, reMatch(regexp.MustCompile(`^"(?:[^"\\]|\\.|"")*"`))})
	p = append(p, pattern{token.Name, reMatch(regexp.MustCompile("^`(?:[^`\\\\]|\\\\.|``)*`"))})

	// 4. Bracket-quoted identifiers, e.g. [my column].
	p = append(p, pattern{token.Name, matchBracketQuoted})

	// 5. Numbers: hex before plain integer/float.
	p = append(p, pattern{token.LiteralNumberHexadecimal, reMatch(regexp.MustCompile(`^0[xX][0-9a-fA-F]+`))})
	p = append(p, pattern{token.LiteralNumberFloat, reMatch(regexp.MustCompile(`^[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?`))})
	p = append(p, pattern{token.LiteralNumberFloat, reMatch(regexp.MustCompile(`^[0-9]+[eE][+-]?[0-9]+`))})
	p = append(p, pattern{token.LiteralNumberInteger, reMatch(regexp.MustCompile(`^[0-9]+`))})

	// 6. Bare identifiers/keywords not caught by the trie (trie only wins
	// when terminal+boundary; this handles e.g. "SELECT_FOO" as one Name).
	p = append(p, pattern{token.Name, matchIdentifier})

	// 7. Placeholders.
	p = append(p, pattern{token.Placeholder, reMatch(regexp.MustCompile(`^:[A-Za-z_][A-Za-z0-9_]*`))})
	p = append(p, pattern{token.Placeholder, reMatch(regexp.MustCompile(`^\$[0-9]+`))})
	p = append(p, pattern{token.Placeholder, reMatch(regexp.MustCompile(`^%s`))})
	p = append(p, pattern{token.Placeholder, reMatch(regexp.MustCompile(`^\?`))})

	// 8. Multi-character comparison/boolean operators before single-char
	// punctuation, so "<=" isn't split into "<" + "=".
	p = append(p, pattern{token.OperatorComparison, reMatch(regexp.MustCompile(`^(!=|<>|<=|>=|!<|!>)`))})
	p = append(p, pattern{token.Operator, reMatch(regexp.MustCompile(`^(&&|\|\|)`))})
	p = append(p, pattern{token.OperatorComparison, reMatch(regexp.MustCompile(`^[=<>]`))})

	// 9. Wildcard/multiplication '*' — kind is resolved in Tokenize.
	p = append(p, pattern{token.Wildcard, reMatch(regexp.MustCompile(`^\*`))})

	// 10. Arithmetic operators and punctuation.
	p = append(p, pattern{token.Operator, reMatch(regexp.MustCompile(`^[-+/%|^&~]`))})
	p = append(p, pattern{token.Punctuation, reMatch(regexp.MustCompile(`^(::|[(),;.\[\]{}])`))})

	// 11. Whitespace and newlines are kept as distinct kinds.
	p = append(p, pattern{token.Newline, reMatch(regexp.MustCompile(`^(\r\n|\r|\n)`))})
	p = append(p, pattern{token.Whitespace, reMatch(regexp.MustCompile(`^[ \t\f\v]+`))})

	return p
}

func reMatch(re *regexp.Regexp) func(string) int {
	return func(s string) int {
		m := re.FindString(s)
		return len(m)
	}
}

// matchDollarQuoted hand-scans $tag$ ... $tag$ since RE2 cannot express the
// backreference to the tag.
func matchDollarQuoted(s string) int {
	if len(s) == 0 || s[0] != '$' {
		return 0
	}
	i := 1
	for i < len(s) && (isIdentByte(s[i])) {
		i++
	}
	if i >= len(s) || s[i] != '$' {
		return 0
	}
	tag := s[:i+1] // includes both '$'
	i++
	body := s[i:]
	end := strings.Index(body, tag)
	if end == -1 {
		return 0
	}
	return i + end + len(tag)
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// matchBracketQuoted hand-scans [ident] / [ident with doubled ]] escape].
func matchBracketQuoted(s string) int {
	if len(s) == 0 || s[0] != '[' {
		return 0
	}
	i := 1
	for i < len(s) {
		if s[i] == ']' {
			if i+1 < len(s) && s[i+1] == ']' {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return 0
}

// matchIdentifier scans a bare identifier using Unicode XID start/continue
// classes, plus '_', '@', '#', '$' as continuation characters so
// variable-ish and temp-table names lex as one token.
func matchIdentifier(s string) int {
	first := true
	n := 0
	for _, r := range s {
		if first {
			if !(xid.Start(r) || r == '_' || r == '@' || r == '#') {
				return 0
			}
			first = false
			n += utf8Len(r)
			continue
		}
		if xid.Continue(r) || r == '$' || r == '#' || r == '@' || unicode.Is(unicode.Cf, r) {
			n += utf8Len(r)
			continue
		}
		break
	}
	return n
}

func utf8Len(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
