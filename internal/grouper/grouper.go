// Package grouper promotes a flat per-statement token list into a recursive
// tree of grouped constructs: parenthesised sub-expressions, identifiers,
// function calls, CASE expressions, WHERE/HAVING clauses,
// comparison/arithmetic expressions, typecasts, aliases, and so on.
//
// Group passes run in a fixed order because later passes depend on the
// classifications earlier passes establish — e.g. Function must run before
// Identifier, because an Identifier pass that saw the bare Name first would
// never learn the Name was actually the head of a function call.
package grouper

import (
	"strings"

	"github.com/sqlfmt/sqlfmt/internal/keyword"
	"github.com/sqlfmt/sqlfmt/internal/token"
)

// Group runs every pass in its required order over tokens and returns the
// grouped tree for one statement.
func Group(tokens []*token.Token) []*token.Token {
	tokens = groupParenthesis(tokens, "(", ")")
	tokens = groupParenthesis(tokens, "[", "]")
	tokens = groupCase(tokens)
	tokens = groupTypedLiteral(tokens)
	tokens = groupFunction(tokens)
	tokens = groupOver(tokens)
	tokens = groupIdentifier(tokens)
	tokens = groupTypeCast(tokens)
	tokens = groupOperation(tokens)
	tokens = groupAssignment(tokens)
	tokens = groupComparison(tokens)
	tokens = groupAs(tokens)
	tokens = groupIdentifierList(tokens)
	tokens = groupValues(tokens)
	tokens = groupWhere(tokens)
	tokens = groupHaving(tokens)
	return tokens
}

// --- navigation helpers over a plain token slice -----------------------

func nextSignificant(tokens []*token.Token, i int) int {
	for ; i < len(tokens); i++ {
		if !tokens[i].IsWhitespace() {
			return i
		}
	}
	return -1
}

func prevSignificant(tokens []*token.Token, i int) int {
	for ; i >= 0; i-- {
		if !tokens[i].IsWhitespace() {
			return i
		}
	}
	return -1
}

func isKeywordValue(t *token.Token, value string) bool {
	return t != nil && t.IsKeyword() && strings.EqualFold(t.Value, value)
}

func isPunct(t *token.Token, value string) bool {
	return t != nil && t.Kind == token.Punctuation && t.Value == value
}

// isIdentifierLike reports whether t can serve as an operand: a leaf name,
// literal, placeholder, wildcard, or an already-built group representing
// one (Identifier, Function, Parenthesis, TypeCast, TypedLiteral, Case,
// Operation).
func isIdentifierLike(t *token.Token) bool {
	switch t.Kind {
	case token.Name, token.Literal, token.LiteralString, token.LiteralNumber,
		token.LiteralNumberInteger, token.LiteralNumberFloat,
		token.LiteralNumberHexadecimal, token.Placeholder, token.Wildcard,
		token.Identifier, token.Function, token.Parenthesis, token.TypeCast,
		token.TypedLiteral, token.Case, token.Operation, token.Over:
		return true
	}
	return false
}

// --- 1/2. Parenthesis / bracketed literal -------------------------------

func groupParenthesis(tokens []*token.Token, open, close string) []*token.Token {
	var out []*token.Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if isPunct(t, open) {
			depth := 1
			j := i + 1
			for j < len(tokens) && depth > 0 {
				if isPunct(tokens[j], open) {
					depth++
				} else if isPunct(tokens[j], close) {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			if j < len(tokens) && depth == 0 {
				inner := Group(tokens[i+1 : j])
				children := make([]*token.Token, 0, len(inner)+2)
				children = append(children, t)
				children = append(children, inner...)
				children = append(children, tokens[j])
				out = append(out, token.NewGroup(token.Parenthesis, children))
				i = j + 1
				continue
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

// --- 3. CASE ... END -----------------------------------------------------

func groupCase(tokens []*token.Token) []*token.Token {
	var out []*token.Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if isKeywordValue(t, "CASE") {
			depth := 1
			j := i + 1
			for j < len(tokens) && depth > 0 {
				if isKeywordValue(tokens[j], "CASE") {
					depth++
				} else if isKeywordValue(tokens[j], "END") {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			if j < len(tokens) && depth == 0 {
				inner := tokens[i+1 : j]
				children := make([]*token.Token, 0, len(inner)+2)
				children = append(children, t)
				children = append(children, inner...)
				children = append(children, tokens[j])
				out = append(out, token.NewGroup(token.Case, children))
				i = j + 1
				continue
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

// --- 5. TypedLiteral: <type-name> '<string>' ----------------------------

func groupTypedLiteral(tokens []*token.Token) []*token.Token {
	var out []*token.Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Kind == token.Name && keyword.DataTypes[strings.ToUpper(t.Value)] {
			j := nextSignificant(tokens, i+1)
			if j >= 0 && tokens[j].Kind == token.LiteralString {
				children := append([]*token.Token{}, tokens[i:j+1]...)
				out = append(out, token.NewGroup(token.TypedLiteral, children))
				i = j + 1
				continue
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

// --- 6. Function: Name/Keyword immediately followed by Parenthesis -----

func groupFunction(tokens []*token.Token) []*token.Token {
	var out []*token.Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if (t.Kind == token.Name || t.Kind == token.Keyword) && i+1 < len(tokens) && tokens[i+1].Kind == token.Parenthesis {
			children := []*token.Token{t, tokens[i+1]}
			out = append(out, token.NewGroup(token.Function, children))
			i += 2
			continue
		}
		out = append(out, t)
		i++
	}
	return out
}

// --- 7. Over: OVER <Parenthesis> attached to the preceding Function ----

func groupOver(tokens []*token.Token) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	for i := 0; i < len(out); i++ {
		if out[i].Kind != token.Function {
			continue
		}
		over := nextSignificant(out, i+1)
		if over < 0 || !isKeywordValue(out[over], "OVER") {
			continue
		}
		paren := nextSignificant(out, over+1)
		if paren < 0 || out[paren].Kind != token.Parenthesis {
			continue
		}
		children := append([]*token.Token{}, out[i:paren+1]...)
		group := token.NewGroup(token.Over, children)
		out = append(out[:i], append([]*token.Token{group}, out[paren+1:]...)...)
	}
	return out
}

// --- 8. Identifier: qualified names, quoted names, placeholders --------

func groupIdentifier(tokens []*token.Token) []*token.Token {
	var out []*token.Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Kind == token.Name || t.Kind == token.Placeholder || t.Kind == token.Wildcard || t.Kind == token.Function || t.Kind == token.Over {
			j := i
			children := []*token.Token{t}
			for {
				dot := nextSignificant(tokens, j+1)
				if dot < 0 || !isPunct(tokens[dot], ".") {
					break
				}
				name := nextSignificant(tokens, dot+1)
				if name < 0 || !(tokens[name].Kind == token.Name || tokens[name].Kind == token.Wildcard) {
					break
				}
				children = append(children, tokens[j+1:name+1]...)
				j = name
			}
			if len(children) > 1 {
				out = append(out, token.NewGroup(token.Identifier, children))
				i = j + 1
				continue
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

// --- 9. TypeCast: expr :: type ------------------------------------------

func groupTypeCast(tokens []*token.Token) []*token.Token {
	var out []*token.Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if isPunct(t, "::") && len(out) > 0 && isIdentifierLike(out[len(out)-1]) {
			j := nextSignificant(tokens, i+1)
			if j >= 0 && tokens[j].Kind == token.Name {
				left := out[len(out)-1]
				out = out[:len(out)-1]
				children := append([]*token.Token{left}, tokens[i:j+1]...)
				out = append(out, token.NewGroup(token.TypeCast, children))
				i = j + 1
				continue
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

// --- 10. Operation: arithmetic/boolean expressions, left-associative ----

func groupOperation(tokens []*token.Token) []*token.Token {
	// First, demote any Wildcard whose left neighbour is now an
	// identifier-like group: the wildcard-vs-multiplication call is
	// finalised here, once earlier passes have built real operands.
	for i, t := range tokens {
		if t.Kind != token.Wildcard {
			continue
		}
		p := prevSignificant(tokens, i-1)
		if p >= 0 && isIdentifierLike(tokens[p]) {
			t.Kind = token.Operator
		}
	}

	out := append([]*token.Token{}, tokens...)
	changed := true
	for changed {
		changed = false
		for i := 1; i < len(out)-1; i++ {
			t := out[i]
			if t.Kind != token.Operator {
				continue
			}
			if betweenGuard(out, i) {
				continue
			}
			left := prevSignificant(out, i-1)
			right := nextSignificant(out, i+1)
			if left < 0 || right < 0 || !isIdentifierLike(out[left]) || !isIdentifierLike(out[right]) {
				continue
			}
			children := append([]*token.Token{}, out[left:right+1]...)
			op := token.NewGroup(token.Operation, children)
			out = append(out[:left], append([]*token.Token{op}, out[right+1:]...)...)
			changed = true
			break
		}
	}
	return out
}

// betweenGuard reports whether the AND at index i sits inside a BETWEEN ...
// AND ... region, which the Operation pass must treat as transparent.
func betweenGuard(tokens []*token.Token, i int) bool {
	if !isKeywordValue(tokens[i], "AND") {
		return false
	}
	for j := i - 1; j >= 0; j-- {
		if isKeywordValue(tokens[j], "BETWEEN") {
			return true
		}
		if isKeywordValue(tokens[j], "AND") || isKeywordValue(tokens[j], "WHERE") {
			break
		}
	}
	return false
}

// --- 11. Comparison -------------------------------------------------------

func groupComparison(tokens []*token.Token) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(out); i++ {
			t := out[i]
			if t.Kind != token.OperatorComparison {
				continue
			}
			left := prevSignificant(out, i-1)
			right := nextSignificant(out, i+1)
			if left < 0 || right < 0 || !isIdentifierLike(out[left]) || !isIdentifierLike(out[right]) {
				continue
			}
			children := append([]*token.Token{}, out[left:right+1]...)
			cmp := token.NewGroup(token.Comparison, children)
			out = append(out[:left], append([]*token.Token{cmp}, out[right+1:]...)...)
			changed = true
			break
		}
	}
	return out
}

// --- 12. As: expr AS alias | expr alias ---------------------------------

func groupAs(tokens []*token.Token) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	for i := 0; i < len(out); i++ {
		if !isIdentifierLike(out[i]) {
			continue
		}
		j := nextSignificant(out, i+1)
		if j < 0 {
			continue
		}
		aliasStart := j
		if isKeywordValue(out[j], "AS") {
			aliasStart = nextSignificant(out, j+1)
		} else if out[j].Kind != token.Name {
			continue
		}
		if aliasStart < 0 || out[aliasStart].Kind != token.Name {
			continue
		}
		children := append([]*token.Token{}, out[i:aliasStart+1]...)
		group := token.NewGroup(token.Identifier, children)
		out = append(out[:i], append([]*token.Token{group}, out[aliasStart+1:]...)...)
	}
	return out
}

// --- 13. Assignment: identifier = expr (UPDATE ... SET) -----------------

func groupAssignment(tokens []*token.Token) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	for i := 0; i < len(out); i++ {
		if !(out[i].Kind == token.Name || out[i].Kind == token.Identifier) {
			continue
		}
		// Only claim '=' as an assignment inside a SET list (UPDATE ... SET
		// a = 1, b = 2, or a variable-assignment continuation after a
		// comma); a bare '=' elsewhere is a Comparison, handled by the next
		// pass.
		left := prevSignificant(out, i-1)
		if left < 0 || !(isKeywordValue(out[left], "SET") || isPunct(out[left], ",")) {
			continue
		}
		eq := nextSignificant(out, i+1)
		if eq < 0 || out[eq].Kind != token.OperatorComparison || out[eq].Value != "=" {
			continue
		}
		rhs := nextSignificant(out, eq+1)
		if rhs < 0 || !isIdentifierLike(out[rhs]) {
			continue
		}
		children := append([]*token.Token{}, out[i:rhs+1]...)
		group := token.NewGroup(token.Assignment, children)
		out = append(out[:i], append([]*token.Token{group}, out[rhs+1:]...)...)
	}
	return out
}

// --- 14. IdentifierList ---------------------------------------------------

func groupIdentifierList(tokens []*token.Token) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	i := 0
	for i < len(out) {
		if !isListable(out[i]) {
			i++
			continue
		}
		j := i
		for {
			comma := nextSignificant(out, j+1)
			if comma < 0 || !isPunct(out[comma], ",") {
				break
			}
			next := nextSignificant(out, comma+1)
			if next < 0 || !isListable(out[next]) {
				break
			}
			j = next
		}
		if j > i {
			children := append([]*token.Token{}, out[i:j+1]...)
			group := token.NewGroup(token.IdentifierList, children)
			out = append(out[:i], append([]*token.Token{group}, out[j+1:]...)...)
		}
		i++
	}
	return out
}

func isListable(t *token.Token) bool {
	return isIdentifierLike(t) || t.Kind == token.Assignment
}

// --- 15. Values: VALUES keyword + parenthesised tuples -------------------

func groupValues(tokens []*token.Token) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	for i := 0; i < len(out); i++ {
		if !isKeywordValue(out[i], "VALUES") {
			continue
		}
		j := i
		for {
			next := nextSignificant(out, j+1)
			if next >= 0 && out[next].Kind == token.IdentifierList && len(out[next].Children) > 0 && out[next].Children[0].Kind == token.Parenthesis {
				// The IdentifierList pass has already joined the tuples.
				j = next
				break
			}
			if next < 0 || out[next].Kind != token.Parenthesis {
				break
			}
			j = next
			comma := nextSignificant(out, j+1)
			if comma >= 0 && isPunct(out[comma], ",") {
				tupleAfter := nextSignificant(out, comma+1)
				if tupleAfter >= 0 && out[tupleAfter].Kind == token.Parenthesis {
					j = comma
					continue
				}
			}
			break
		}
		if j > i {
			children := append([]*token.Token{}, out[i:j+1]...)
			group := token.NewGroup(token.Values, children)
			out = append(out[:i], append([]*token.Token{group}, out[j+1:]...)...)
		}
	}
	return out
}

// --- 16/17. Where / Having -------------------------------------------------

var clauseTerminators = []string{"GROUP", "HAVING", "ORDER", "LIMIT"}

func groupClause(tokens []*token.Token, headKeyword string, kind token.Kind) []*token.Token {
	out := append([]*token.Token{}, tokens...)
	for i := 0; i < len(out); i++ {
		if !isKeywordValue(out[i], headKeyword) {
			continue
		}
		j := len(out) - 1
		for k := i + 1; k < len(out); k++ {
			if isPunct(out[k], ";") {
				j = k - 1
				break
			}
			isTerm := false
			for _, term := range clauseTerminators {
				if isKeywordValue(out[k], term) {
					isTerm = true
					break
				}
			}
			if isTerm {
				j = k - 1
				break
			}
		}
		for j > i && out[j].IsWhitespace() {
			j--
		}
		children := append([]*token.Token{}, out[i:j+1]...)
		group := token.NewGroup(kind, children)
		out = append(out[:i], append([]*token.Token{group}, out[j+1:]...)...)
		break
	}
	return out
}

func groupWhere(tokens []*token.Token) []*token.Token {
	return groupClause(tokens, "WHERE", token.Where)
}

func groupHaving(tokens []*token.Token) []*token.Token {
	return groupClause(tokens, "HAVING", token.Having)
}
