// Package filter implements four filter buckets: preprocess filters run
// over the flat token stream before splitting, stmtprocess filters run
// once per statement on its grouped token slice, tlistprocess filters run
// over the grouped per-statement token.List, and postprocess filters run
// last, also per statement. Buckets run in that fixed order; filters
// within a bucket run in registration order.
package filter

import "github.com/sqlfmt/sqlfmt/internal/token"

// Preprocess filters rewrite the flat token slice before the statement
// splitter runs, e.g. keyword/identifier case normalisation.
type Preprocess func(tokens []*token.Token) []*token.Token

// Stmt filters rewrite one statement's grouped token slice, before it is
// wrapped in a token.List.
type Stmt func(tokens []*token.Token) []*token.Token

// TList filters rewrite a statement's grouped token.List, after the Stmt
// filters have run.
type TList func(list *token.List)

// Postprocess filters make a final pass over the grouped statement.
type Postprocess func(tokens []*token.Token) []*token.Token

// Stack holds one ordered bucket of each filter kind, built from Options
// and then run in sequence by the Pipeline.
type Stack struct {
	Preprocess  []Preprocess
	Stmt        []Stmt
	TList       []TList
	Postprocess []Postprocess
}

func (s *Stack) RunPreprocess(tokens []*token.Token) []*token.Token {
	for _, f := range s.Preprocess {
		tokens = f(tokens)
	}
	return tokens
}

func (s *Stack) RunStmt(tokens []*token.Token) []*token.Token {
	for _, f := range s.Stmt {
		tokens = f(tokens)
	}
	return tokens
}

func (s *Stack) RunTList(list *token.List) {
	for _, f := range s.TList {
		f(list)
	}
}

func (s *Stack) RunPostprocess(tokens []*token.Token) []*token.Token {
	for _, f := range s.Postprocess {
		tokens = f(tokens)
	}
	return tokens
}
