package filter

import "github.com/sqlfmt/sqlfmt/internal/token"

// rewriteTree applies fn to every sibling level of tokens, bottom-up: a
// group's children are rewritten first, then fn runs on the level that
// contains the group itself. This mirrors how the grouper builds the tree
// and lets each filter reason about one flat slice at a time instead of
// walking the recursive structure itself.
func rewriteTree(tokens []*token.Token, fn func([]*token.Token) []*token.Token) []*token.Token {
	for _, t := range tokens {
		if t.IsGroup() && len(t.Children) > 0 {
			t.Children = rewriteTree(t.Children, fn)
			t.UpdateValue()
		}
	}
	return fn(tokens)
}
