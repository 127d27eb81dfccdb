// Package cmd holds the sqlfmt CLI, one file per subcommand, each
// registering itself with rootCmd from its own init().
package cmd

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sqlfmt/sqlfmt"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqlfmt",
		Short:        "sqlfmt",
		SilenceUsage: true,
		Long:         `A SQL lexer, statement splitter, and pretty-printer for Postgres- and T-SQL-flavoured SQL.`,
	}

	keywordCase     string
	identifierCase  string
	stripComments   bool
	reindent        bool
	reindentAligned bool
	indentWidth     int
)

// Execute runs the CLI, stamping every invocation's log lines with a random
// request ID the way a long-lived service would.
func Execute() error {
	requestID := uuid.New().String()
	logger := logrus.New().WithField("request_id", requestID)
	sqlfmt.SetLogger(logger)

	rootCmd.PersistentFlags().StringVar(&keywordCase, "keyword-case", "", "upper, lower, or capitalize")
	rootCmd.PersistentFlags().StringVar(&identifierCase, "identifier-case", "", "upper, lower, or capitalize")
	rootCmd.PersistentFlags().BoolVar(&stripComments, "strip-comments", false, "remove comments")
	rootCmd.PersistentFlags().BoolVar(&reindent, "reindent", false, "reindent with a fixed indent width per nesting depth")
	rootCmd.PersistentFlags().BoolVar(&reindentAligned, "reindent-aligned", false, "reindent by right-justifying clause landmarks")
	rootCmd.PersistentFlags().IntVar(&indentWidth, "indent-width", 2, "spaces per indent level")

	return rootCmd.Execute()
}

func caseFlag(s string) sqlfmt.Case {
	switch s {
	case "upper":
		return sqlfmt.CaseUpper
	case "lower":
		return sqlfmt.CaseLower
	case "capitalize":
		return sqlfmt.CaseCapitalize
	default:
		return sqlfmt.CaseUnchanged
	}
}

func optionsFromFlags() sqlfmt.Options {
	return sqlfmt.Options{
		KeywordCase:             caseFlag(keywordCase),
		IdentifierCase:          caseFlag(identifierCase),
		StripComments:           stripComments,
		UseSpaceAroundOperators: true,
		Reindent:                reindent,
		ReindentAligned:         reindentAligned,
		IndentWidth:             indentWidth,
	}
}
