package filter

import (
	"strings"

	"github.com/sqlfmt/sqlfmt/internal/keyword"
	"github.com/sqlfmt/sqlfmt/internal/token"
)

// AlignedIndent is a "hard engineering" layout: instead of a fixed indent
// per nesting depth, each top-level clause landmark is right-justified so
// every landmark's last letter lines up in the same column, and AND/OR
// conditions inside a WHERE clause align one level further in, under that
// column.
func AlignedIndent(opts Options) TList {
	return func(list *token.List) {
		width := maxLandmarkWidth(list.Tokens)
		list.Tokens = alignedLevel(list.Tokens, opts, width)
	}
}

func alignedLandmarkAt(tokens []*token.Token, i int) (consumed int, text string, ok bool) {
	switch tokens[i].Kind {
	case token.Where:
		return 1, "WHERE", true
	case token.Having:
		return 1, "HAVING", true
	case token.Values:
		return 1, "VALUES", true
	}
	if !tokens[i].IsKeyword() {
		return 0, "", false
	}
	for _, phrase := range threeWordLandmarks {
		if n := matchPhrase(tokens, i, phrase); n > 0 {
			return n, strings.ToUpper(phrase), true
		}
	}
	for _, phrase := range twoWordLandmarks {
		if n := matchPhrase(tokens, i, phrase); n > 0 {
			return n, strings.ToUpper(phrase), true
		}
	}
	for _, word := range keyword.AlignedLandmarks {
		if !strings.Contains(word, " ") && strings.EqualFold(tokens[i].Value, word) {
			return 1, strings.ToUpper(word), true
		}
	}
	return 0, "", false
}

func maxLandmarkWidth(tokens []*token.Token) int {
	width := 0
	i := 0
	for i < len(tokens) {
		if consumed, text, ok := alignedLandmarkAt(tokens, i); ok {
			if len(text) > width {
				width = len(text)
			}
			i += consumed
			continue
		}
		i++
	}
	if width == 0 {
		width = len("SELECT")
	}
	return width
}

func alignedLevel(tokens []*token.Token, opts Options, width int) []*token.Token {
	for _, t := range tokens {
		if t.Kind == token.Parenthesis && len(t.Children) >= 2 {
			continue // subqueries inside parentheses are left as they are, not realigned
		}
		if t.Kind == token.Where || t.Kind == token.Having {
			t.Children = alignWhereBody(t.Children, opts, width)
			t.UpdateValue()
		}
	}

	var out []*token.Token
	i := 0
	seenSignificant := false
	for i < len(tokens) {
		if consumed, text, ok := alignedLandmarkAt(tokens, i); ok {
			if seenSignificant {
				for len(out) > 0 && out[len(out)-1].IsWhitespace() {
					out = out[:len(out)-1]
				}
				out = append(out, token.New(token.Newline, "\n"))
				pad := width - len(text)
				if pad > 0 {
					out = append(out, token.New(token.Whitespace, strings.Repeat(" ", pad)))
				}
			}
			for j := 0; j < consumed; j++ {
				out = append(out, tokens[i+j])
				seenSignificant = true
			}
			i += consumed
			continue
		}
		t := tokens[i]
		if !t.IsWhitespace() {
			seenSignificant = true
		}
		out = append(out, t)
		i++
	}
	return out
}

// alignWhereBody right-justifies AND/OR continuations one column past the
// WHERE/HAVING keyword itself so conditions line up under the clause body.
func alignWhereBody(tokens []*token.Token, opts Options, width int) []*token.Token {
	var out []*token.Token
	for _, t := range tokens {
		if t.IsKeyword() && (strings.EqualFold(t.Value, "AND") || strings.EqualFold(t.Value, "OR")) {
			hasPrecedingSignificant := false
			for _, p := range out {
				if !p.IsWhitespace() {
					hasPrecedingSignificant = true
					break
				}
			}
			if hasPrecedingSignificant {
				for len(out) > 0 && out[len(out)-1].IsWhitespace() {
					out = out[:len(out)-1]
				}
				out = append(out, token.New(token.Newline, "\n"))
				pad := width + 1 - len(t.Value)
				if pad > 0 {
					out = append(out, token.New(token.Whitespace, strings.Repeat(" ", pad)))
				}
			}
		}
		out = append(out, t)
	}
	return out
}
