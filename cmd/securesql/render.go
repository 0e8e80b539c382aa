package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/biyonik/go-secure-sql/internal/cli"
	"github.com/biyonik/go-secure-sql/schema"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Print the DDL for a schema document",
	Example: `  # Print CREATE TABLE and follow-up statements
  securesql render schema/users.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stmts, err := loadStatements(args[0])
		if err != nil {
			return err
		}
		return writeStatements(cmd.OutOrStdout(), stmts)
	},
}

// loadStatements parses the document at path and renders every table's
// statements in document order.
func loadStatements(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cli.GeneralError("reading schema document", err)
	}

	tables, err := schema.ParseDocument(raw)
	if err != nil {
		return nil, cli.SchemaParseError("schema error", err)
	}

	var out []string
	for _, t := range tables {
		stmts, err := t.Statements()
		if err != nil {
			return nil, cli.SchemaParseError("schema error", err)
		}
		out = append(out, stmts...)
	}
	return out, nil
}

func writeStatements(w io.Writer, stmts []string) error {
	for _, s := range stmts {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
