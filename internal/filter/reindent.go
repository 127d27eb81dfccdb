package filter

import (
	"strings"

	"github.com/sqlfmt/sqlfmt/internal/keyword"
	"github.com/sqlfmt/sqlfmt/internal/token"
)

// Reindent rewrites a statement so each clause landmark (keyword.
// ReindentLandmarks) starts on its own line, indented by depth * IndentWidth
// of IndentChar, where depth is how many Parenthesis groups the landmark is
// nested inside.
func Reindent(opts Options) TList {
	return func(list *token.List) {
		list.Tokens = reindentLevel(list.Tokens, opts, 0, true)
	}
}

func indentString(opts Options, depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(opts.IndentChar, opts.IndentWidth*depth)
}

func reindentLevel(tokens []*token.Token, opts Options, depth int, top bool) []*token.Token {
	for _, t := range tokens {
		if t.Kind == token.Parenthesis && len(t.Children) >= 2 {
			inner := t.Children[1 : len(t.Children)-1]
			inner = reindentLevel(inner, opts, depth+1, false)
			rebuilt := make([]*token.Token, 0, len(inner)+2)
			rebuilt = append(rebuilt, t.Children[0])
			rebuilt = append(rebuilt, inner...)
			rebuilt = append(rebuilt, t.Children[len(t.Children)-1])
			t.Children = rebuilt
			t.UpdateValue()
		} else if t.IsGroup() {
			t.Children = reindentLevel(t.Children, opts, depth, false)
			t.UpdateValue()
		}
	}
	return insertLandmarkNewlines(tokens, opts, depth, top)
}

// twoWordLandmarks lists the phrasal landmarks spelled as two adjacent
// keyword tokens; longer matches are tried before the single-keyword table.
var twoWordLandmarks = []string{
	"GROUP BY", "ORDER BY", "UNION ALL", "INNER JOIN", "LEFT JOIN",
	"RIGHT JOIN", "FULL JOIN", "CROSS JOIN",
}

var threeWordLandmarks = []string{"FULL OUTER JOIN"}

func matchPhrase(tokens []*token.Token, i int, phrase string) int {
	words := strings.Fields(phrase)
	idx := i
	consumed := 0
	for wi, w := range words {
		if wi > 0 {
			skip := idx
			for skip < len(tokens) && tokens[skip].Kind == token.Whitespace {
				skip++
			}
			if skip == idx || skip >= len(tokens) {
				return 0
			}
			consumed += skip - idx
			idx = skip
		}
		if idx >= len(tokens) || !tokens[idx].IsKeyword() || !strings.EqualFold(tokens[idx].Value, w) {
			return 0
		}
		idx++
		consumed++
	}
	return consumed
}

// landmarkAt reports whether a landmark phrase starts at tokens[i], either
// because tokens[i] is itself a grouped WHERE/HAVING/VALUES clause or
// because a run of keyword tokens there spells one of the landmark phrases.
func landmarkAt(tokens []*token.Token, i int) (consumed int, ok bool) {
	switch tokens[i].Kind {
	case token.Where, token.Having, token.Values:
		return 1, true
	}
	if !tokens[i].IsKeyword() {
		return 0, false
	}
	for _, phrase := range threeWordLandmarks {
		if n := matchPhrase(tokens, i, phrase); n > 0 {
			return n, true
		}
	}
	for _, phrase := range twoWordLandmarks {
		if n := matchPhrase(tokens, i, phrase); n > 0 {
			return n, true
		}
	}
	for _, word := range keyword.ReindentLandmarks {
		if !strings.Contains(word, " ") && strings.EqualFold(tokens[i].Value, word) {
			return 1, true
		}
	}
	return 0, false
}

func insertLandmarkNewlines(tokens []*token.Token, opts Options, depth int, top bool) []*token.Token {
	var out []*token.Token
	i := 0
	seenSignificant := false
	for i < len(tokens) {
		if consumed, ok := landmarkAt(tokens, i); ok {
			if seenSignificant {
				for len(out) > 0 && out[len(out)-1].IsWhitespace() {
					out = out[:len(out)-1]
				}
				out = append(out, token.New(token.Newline, "\n"))
				if ind := indentString(opts, depth); ind != "" {
					out = append(out, token.New(token.Whitespace, ind))
				}
			}
			out = append(out, tokens[i:i+consumed]...)
			seenSignificant = true
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
