package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sqlfmt/sqlfmt"
	"github.com/sqlfmt/sqlfmt/internal/sqlfs"
)

var (
	write bool

	formatCmd = &cobra.Command{
		Use:   "format <file.sql|directory>",
		Short: "Reformat SQL file(s) through the filter stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify <file.sql|directory>")
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}

			pipeline := sqlfmt.NewPipeline(optionsFromFlags())

			if !info.IsDir() {
				return formatOne(pipeline, args[0])
			}

			tree := sqlfs.New(afero.NewOsFs(), args[0])
			files, err := tree.SQLFiles()
			if err != nil {
				return err
			}
			for _, f := range files {
				contents, err := tree.Read(f)
				if err != nil {
					return err
				}
				formatted := pipeline.Format(contents)
				if write {
					if err := tree.Write(f, formatted); err != nil {
						return err
					}
				} else {
					fmt.Println(formatted)
				}
			}
			return nil
		},
	}
)

func formatOne(pipeline *sqlfmt.Pipeline, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	formatted := pipeline.Format(string(data))
	if write {
		return os.WriteFile(path, []byte(formatted), 0o644)
	}
	fmt.Println(formatted)
	return nil
}

func init() {
	formatCmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place instead of printing to stdout")
	rootCmd.AddCommand(formatCmd)
}
