package filter

import (
	"strings"

	"github.com/sqlfmt/sqlfmt/internal/token"
)

func applyCase(word string, c Case) string {
	switch c {
	case CaseUpper:
		return strings.ToUpper(word)
	case CaseLower:
		return strings.ToLower(word)
	case CaseCapitalize:
		if word == "" {
			return word
		}
		lower := strings.ToLower(word)
		return strings.ToUpper(lower[:1]) + lower[1:]
	default:
		return word
	}
}

// isQuotedName reports whether a Name token's spelling is quoted and must
// keep its original casing regardless of IdentifierCase.
func isQuotedName(value string) bool {
	if value == "" {
		return false
	}
	switch value[0] {
	case '"', '`', '[':
		return true
	}
	return false
}

// KeywordCase rewrites every keyword token's spelling per opts.KeywordCase.
// Registered first in the preprocess bucket.
func KeywordCase(c Case) Preprocess {
	return func(tokens []*token.Token) []*token.Token {
		if c == CaseUnchanged {
			return tokens
		}
		for _, t := range tokens {
			if t.IsKeyword() {
				t.Value = applyCase(t.Value, c)
			}
		}
		return tokens
	}
}

// IdentifierCase rewrites every unquoted Name token's spelling per
// opts.IdentifierCase.
func IdentifierCase(c Case) Preprocess {
	return func(tokens []*token.Token) []*token.Token {
		if c == CaseUnchanged {
			return tokens
		}
		for _, t := range tokens {
			if t.Kind == token.Name && !isQuotedName(t.Value) {
				t.Value = applyCase(t.Value, c)
			}
		}
		return tokens
	}
}

// trailingNewline returns the run of \r\n characters at the end of s, if
// any.
func trailingNewline(s string) string {
	end := len(s)
	start := end
	for start > 0 && (s[start-1] == '\n' || s[start-1] == '\r') {
		start--
	}
	return s[start:end]
}

// StripComments removes comment tokens, replacing each with whatever makes
// the surrounding whitespace stay well-formed: the comment's own trailing
// newline run if it had one, nothing if it sat directly against a
// parenthesis, otherwise a single space.
func StripComments() TList {
	return func(list *token.List) {
		list.Tokens = rewriteTree(list.Tokens, stripCommentsLevel)
	}
}

func stripCommentsLevel(tokens []*token.Token) []*token.Token {
	var out []*token.Token
	for i, t := range tokens {
		if t.Kind != token.CommentSingle && t.Kind != token.CommentMultiline {
			out = append(out, t)
			continue
		}
		if nl := trailingNewline(t.Value); nl != "" {
			out = append(out, token.New(token.Newline, nl))
			continue
		}
		prevAdjacent := i > 0 && tokens[i-1].Kind == token.Punctuation && tokens[i-1].Value == "("
		nextAdjacent := i+1 < len(tokens) && tokens[i+1].Kind == token.Punctuation && tokens[i+1].Value == ")"
		if prevAdjacent || nextAdjacent {
			continue
		}
		out = append(out, token.New(token.Whitespace, " "))
	}
	return out
}

// StripWhitespace trims leading/trailing whitespace at every level, collapses
// runs of whitespace into one token, and removes whitespace that sits
// directly inside a parenthesis pair.
func StripWhitespace() Stmt {
	return func(tokens []*token.Token) []*token.Token {
		return rewriteTreeStmt(tokens, stripWhitespaceLevel)
	}
}

// rewriteTreeStmt is rewriteTree's Stmt-shaped twin: Stmt filters run before
// the tokens are wrapped in a token.List.
func rewriteTreeStmt(tokens []*token.Token, fn func([]*token.Token) []*token.Token) []*token.Token {
	for _, t := range tokens {
		if t.IsGroup() && len(t.Children) > 0 {
			t.Children = rewriteTreeStmt(t.Children, fn)
			t.UpdateValue()
		}
	}
	return fn(tokens)
}

func stripWhitespaceLevel(tokens []*token.Token) []*token.Token {
	var collapsed []*token.Token
	for _, t := range tokens {
		if t.IsWhitespace() && len(collapsed) > 0 && collapsed[len(collapsed)-1].IsWhitespace() {
			if t.Kind == token.Newline {
				collapsed[len(collapsed)-1] = token.New(token.Newline, "\n")
			}
			continue
		}
		if t.Kind == token.Whitespace {
			t = token.New(token.Whitespace, " ")
		}
		collapsed = append(collapsed, t)
	}

	for len(collapsed) > 0 && collapsed[0].IsWhitespace() {
		collapsed = collapsed[1:]
	}
	for len(collapsed) > 0 && collapsed[len(collapsed)-1].IsWhitespace() {
		collapsed = collapsed[:len(collapsed)-1]
	}

	var out []*token.Token
	for i, t := range collapsed {
		if t.IsWhitespace() {
			prevOpen := i > 0 && collapsed[i-1].Kind == token.Punctuation && collapsed[i-1].Value == "("
			nextClose := i+1 < len(collapsed) && collapsed[i+1].Kind == token.Punctuation && collapsed[i+1].Value == ")"
			if prevOpen || nextClose {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// SpacesAroundOperators inserts exactly one space on each side of every
// Operator/OperatorComparison token that lacks one, scanning left to right
// so the result is idempotent.
func SpacesAroundOperators() TList {
	return func(list *token.List) {
		list.Tokens = rewriteTree(list.Tokens, spacesAroundOperatorsLevel)
	}
}

func spacesAroundOperatorsLevel(tokens []*token.Token) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	for i := 0; i < len(out); i++ {
		t := out[i]
		if t.Kind != token.Operator && t.Kind != token.OperatorComparison {
			continue
		}
		if i+1 >= len(out) || !out[i+1].IsWhitespace() {
			sp := token.New(token.Whitespace, " ")
			out = append(out[:i+1], append([]*token.Token{sp}, out[i+1:]...)...)
		}
		if i == 0 || !out[i-1].IsWhitespace() {
			sp := token.New(token.Whitespace, " ")
			out = append(out[:i], append([]*token.Token{sp}, out[i:]...)...)
			i++
		}
	}
	return out
}

// StripBeforeNewline removes a leaf whitespace token that sits immediately
// before a Newline token, so reformatted lines never carry trailing spaces.
// Runs unconditionally in the postprocess bucket.
func StripBeforeNewline() Postprocess {
	return func(tokens []*token.Token) []*token.Token {
		return rewriteTreeStmt(tokens, stripBeforeNewlineLevel)
	}
}

func stripBeforeNewlineLevel(tokens []*token.Token) []*token.Token {
	var out []*token.Token
	for _, t := range tokens {
		if t.Kind == token.Newline && len(out) > 0 && out[len(out)-1].Kind == token.Whitespace {
			out = out[:len(out)-1]
		}
		out = append(out, t)
	}
	return out
}
