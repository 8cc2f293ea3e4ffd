// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"querysmith/cli/internal/errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// schemaCmd represents the schema command for inspecting the connected database.
// It prints the table, column, and foreign-key layout in the canonical text
// form the generation service consumes.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect and print the database schema",
	Long: `The schema command connects to the configured database, reads table, column,
and foreign-key metadata, and prints it as text: one block per table with
column types and nullability, followed by the table's foreign keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := newEngine(ctx)
		if err != nil {
			if errors.IsKind(err, errors.NotFound) {
				fmt.Println("⚠️  No database connection configured.")
				fmt.Println("   Please run 'querysmith connect' to configure your database.")
				return nil
			}
			fmt.Println("❌ Failed to connect to the database.")
			return err
		}
		defer eng.Close()

		stopSpinner := startInlineSpinner(os.Stdout, "reading schema")
		text, err := eng.intro.SchemaText(ctx)
		stopSpinner()
		if err != nil {
			fmt.Println("❌ Failed to read the database schema.")
			return err
		}
		if text == "" {
			fmt.Println("⚠️  No tables found in the target database.")
			return nil
		}

		pterm.DefaultSection.Println("Database Schema")
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
