// Package sqlfmt parses SQL text into a round-trip-preserving token tree and
// reformats it through a configurable filter stack. It never validates SQL
// semantics, executes queries, or touches the network or filesystem itself —
// those concerns live in cmd/sqlfmt and internal/dbsource.
package sqlfmt

import (
	"github.com/sqlfmt/sqlfmt/internal/filter"
	"github.com/sqlfmt/sqlfmt/internal/grouper"
	"github.com/sqlfmt/sqlfmt/internal/lexer"
	"github.com/sqlfmt/sqlfmt/internal/splitter"
	"github.com/sqlfmt/sqlfmt/internal/token"
)

// Re-exported so callers never need to import internal/token or
// internal/filter directly.
type (
	Kind  = token.Kind
	Token = token.Token
	List  = token.List

	Case    = filter.Case
	Options = filter.Options
)

const (
	CaseUnchanged  = filter.CaseUnchanged
	CaseUpper      = filter.CaseUpper
	CaseLower      = filter.CaseLower
	CaseCapitalize = filter.CaseCapitalize
)

// Pipeline owns the lexer, splitter, and filter stack built from one set of
// Options. Building it does real work (compiling the keyword trie), so
// callers that format many statements should build one Pipeline and reuse
// it: the lexer and trie are immutable and shareable across calls.
type Pipeline struct {
	lx    *lexer.Lexer
	sp    *splitter.Splitter
	opts  Options
	stack *filter.Stack
}

// NewPipeline builds a Pipeline from opts, normalising them first via
// Options.Validate.
func NewPipeline(opts Options) *Pipeline {
	opts = opts.Validate()
	return &Pipeline{
		lx:    lexer.New(),
		sp:    splitter.New(),
		opts:  opts,
		stack: BuildFilters(opts),
	}
}

// BuildFilters assembles the ordered filter stack, registering only the
// filters opts actually turns on. The registration order is load-bearing:
// case filters first, then spacing/comment cleanup, then whitespace
// collapse, then the two mutually exclusive indent styles, then
// StripBeforeNewline which always runs last.
func BuildFilters(opts Options) *filter.Stack {
	s := &filter.Stack{}

	if opts.KeywordCase != filter.CaseUnchanged {
		s.Preprocess = append(s.Preprocess, filter.KeywordCase(opts.KeywordCase))
	}
	if opts.IdentifierCase != filter.CaseUnchanged {
		s.Preprocess = append(s.Preprocess, filter.IdentifierCase(opts.IdentifierCase))
	}

	if opts.UseSpaceAroundOperators {
		s.TList = append(s.TList, filter.SpacesAroundOperators())
	}
	if opts.StripComments {
		s.TList = append(s.TList, filter.StripComments())
	}

	if opts.StripWhitespace {
		s.Stmt = append(s.Stmt, filter.StripWhitespace())
	}

	if opts.Reindent {
		s.TList = append(s.TList, filter.Reindent(opts))
	} else if opts.ReindentAligned {
		s.TList = append(s.TList, filter.AlignedIndent(opts))
	}

	s.Postprocess = append(s.Postprocess, filter.StripBeforeNewline())

	return s
}

// Parse tokenizes and groups sql into one token tree per statement, without
// running any filters. Use this to inspect structure; use Format to get
// rewritten SQL text.
func (p *Pipeline) Parse(sql string) []*token.List {
	flat := p.lx.Tokenize(sql)
	stmts := p.sp.Split(flat.Tokens)
	lists := make([]*token.List, 0, len(stmts))
	for _, stmt := range stmts {
		lists = append(lists, token.NewList(grouper.Group(stmt)))
	}
	return lists
}

// Format runs the full pipeline: lex, preprocess, split, group, stmtprocess,
// tlistprocess, postprocess, and concatenate every resulting token's Value
// back into text.
func (p *Pipeline) Format(sql string) string {
	flat := p.lx.Tokenize(sql)
	flat.Tokens = p.stack.RunPreprocess(flat.Tokens)

	stmts := p.sp.Split(flat.Tokens)
	debugf("sqlfmt: split input into %d statement(s)\n", len(stmts))

	var out string
	for _, stmt := range stmts {
		grouped := grouper.Group(stmt)
		grouped = p.stack.RunStmt(grouped)

		list := token.NewList(grouped)
		p.stack.RunTList(list)

		list.Tokens = p.stack.RunPostprocess(list.Tokens)
		out += list.Value()
	}
	return out
}

// Format is the package-level convenience wrapper: build a throwaway
// Pipeline and format sql once. Callers formatting many statements should
// use NewPipeline directly to avoid rebuilding the keyword trie each time.
func Format(sql string, opts Options) string {
	return NewPipeline(opts).Format(sql)
}
