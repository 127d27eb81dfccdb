package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/spf13/cobra"

	"github.com/sqlfmt/sqlfmt"
	"github.com/sqlfmt/sqlfmt/internal/dbsource"
)

var (
	fetchDriver string
	fetchDSN    string

	fetchCmd = &cobra.Command{
		Use:   "fetch <schema> <routine>",
		Short: "Fetch a stored routine's source from a live database and format it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				_ = cmd.Help()
				return errors.New("need to specify <schema> <routine>")
			}
			if fetchDSN == "" {
				return errors.New("--dsn is required")
			}

			db, err := sql.Open(fetchDriver, fetchDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			src, err := dbsource.FetchRoutineSource(context.Background(), db, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Println(sqlfmt.Format(src, optionsFromFlags()))
			return nil
		},
	}
)

func init() {
	fetchCmd.Flags().StringVar(&fetchDriver, "driver", "pgx", "database/sql driver name: pgx or sqlserver")
	fetchCmd.Flags().StringVar(&fetchDSN, "dsn", "", "connection string")
	rootCmd.AddCommand(fetchCmd)
}
