package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/sqlfmt/sqlfmt"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.sql>",
	Short: "Print the grouped token tree for a SQL file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify <file.sql>")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		pipeline := sqlfmt.NewPipeline(sqlfmt.Options{})
		for i, stmt := range pipeline.Parse(string(data)) {
			fmt.Printf("-- statement %d --\n", i)
			for _, tok := range stmt.Tokens {
				fmt.Println(repr.String(tok, repr.Indent("  ")))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
