// Package trie implements the longest-match keyword lookup the lexer
// consults before falling back to its ordered pattern list. The match rule
// is: walk the buffer character by character, and accept the deepest node
// reached only if it is both terminal and immediately followed by a word
// boundary; below 3 characters, treat it as a miss so the caller falls
// back to name-matching.
package trie

import "github.com/sqlfmt/sqlfmt/internal/token"

type node struct {
	children map[rune]*node
	kind     token.Kind
	hasKind  bool
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie is a longest-match lookup keyed on upper-cased keyword spellings.
type Trie struct {
	root *node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// Insert associates key (matched case-sensitively as given) with kind.
func (t *Trie) Insert(key string, kind token.Kind) {
	cur := t.root
	for _, r := range key {
		next, ok := cur.children[r]
		if !ok {
			next = newNode()
			cur.children[r] = next
		}
		cur = next
	}
	cur.terminal = true
	cur.kind = kind
	cur.hasKind = true
}

func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\n', '\r', '\t', ';', ':', '(', ')':
		return true
	}
	return false
}

// MatchToken walks buf and returns the byte length of the longest keyword
// prefix match plus its classification. ok is false when no match at least
// 3 characters long, immediately followed by a word boundary (or
// end-of-buffer), was found — callers should fall back to name-matching in
// that case.
func (t *Trie) MatchToken(buf string) (length int, kind token.Kind, ok bool) {
	cur := t.root
	runes := []rune(buf)
	bestLen, bestKind, bestOK := 0, token.Invalid, false
	byteLen := 0
	for i, r := range runes {
		next, has := cur.children[r]
		if !has {
			break
		}
		cur = next
		byteLen += runeLen(r)
		if cur.terminal {
			atEnd := i+1 >= len(runes)
			boundaryNext := atEnd || isWordBoundary(runes[i+1])
			if byteLen >= 3 && boundaryNext {
				bestLen, bestKind, bestOK = byteLen, cur.kind, true
			}
		}
	}
	return bestLen, bestKind, bestOK
}

func runeLen(r rune) int {
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
