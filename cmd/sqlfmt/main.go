package main

import (
	"os"

	"github.com/sqlfmt/sqlfmt/cmd/sqlfmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
