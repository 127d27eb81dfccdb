package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"

	"github.com/sqlfmt/sqlfmt"
	"github.com/sqlfmt/sqlfmt/internal/embedcheck"
	"github.com/sqlfmt/sqlfmt/internal/token"
)

// checkBalanced reports an error if any statement has an unmatched
// parenthesis, counting '(' and ')' over every leaf of the grouped tree so
// a stray one inside a WHERE, HAVING or CASE group is found too.
func checkBalanced(pipeline *sqlfmt.Pipeline, contents string) error {
	for i, stmt := range pipeline.Parse(contents) {
		depth := 0
		for _, top := range stmt.Tokens {
			for _, tok := range top.Flatten(nil) {
				if tok.Kind == token.Punctuation && tok.Value == "(" {
					depth++
				} else if tok.Kind == token.Punctuation && tok.Value == ")" {
					if depth--; depth < 0 {
						return fmt.Errorf("statement %d: unmatched %q", i, ")")
					}
				}
			}
		}
		if depth > 0 {
			return fmt.Errorf("statement %d: unmatched %q", i, "(")
		}
	}
	return nil
}

var embedLintCmd = &cobra.Command{
	Use:   "embed-lint <go-package-pattern>",
	Short: "Lint SQL files brought in via go:embed directives",
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "./..."
		if len(args) == 1 {
			pattern = args[0]
		}

		cfg := &packages.Config{Mode: packages.NeedSyntax | packages.NeedFiles | packages.NeedName}
		pkgs, err := packages.Load(cfg, pattern)
		if err != nil {
			return err
		}

		sites := embedcheck.FindEmbeds(pkgs)
		pipeline := sqlfmt.NewPipeline(sqlfmt.Options{})

		findings, err := embedcheck.Lint(sites, ".", os.ReadFile, filepath.Glob, func(contents string) error {
			return checkBalanced(pipeline, contents)
		})
		if err != nil {
			return err
		}

		for _, f := range findings {
			fmt.Printf("%s:%d: %s (%s): %v\n", f.Site.File, f.Site.Line, f.Site.VarName, f.Path, f.Err)
		}
		if len(findings) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(embedLintCmd)
}
