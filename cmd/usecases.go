// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"querysmith/cli/internal/catalog"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/sqltext"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// usecasesCmd represents the usecases command. It builds (or reuses) the
// use-case catalog for the connected database and lists it per category.
var usecasesCmd = &cobra.Command{
	Use:   "usecases",
	Short: "Generate and list SQL use cases for the connected database",
	Long: `The usecases command reads the database schema, sends it to the generation
service, and lists the returned SQL use cases grouped by category (Create,
Read, Update, Delete). Each entry shows the use-case ID to pass to
'querysmith execute' and the parameters it expects.`,
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

		stopSpinner := startInlineSpinner(os.Stdout, "generating use cases")
		cat, err := eng.cache.GetOrBuild(ctx)
		stopSpinner()
		if err != nil {
			fmt.Println("❌ Failed to build the use-case catalog.")
			return err
		}
		if cat.Len() == 0 {
			fmt.Println("⚠️  The generation service returned no use cases.")
			return nil
		}

		renderCatalog(cat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usecasesCmd)
}

// renderCatalog prints one table per non-empty category.
func renderCatalog(cat *catalog.Catalog) {
	order := append([]sqltext.Category{}, catalog.CategoryOrder...)
	order = append(order, sqltext.CategoryUnknown)

	for _, c := range order {
		cases := cat.ByCategory(c)
		if len(cases) == 0 {
			continue
		}
		pterm.DefaultSection.Println(string(c))
		data := pterm.TableData{{"ID", "Description", "Parameters"}}
		for _, uc := range cases {
			data = append(data, []string{uc.ID.String(), uc.Description, paramList(uc.InputParameters)})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}

// paramList joins declared parameter names for display.
func paramList(params []catalog.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
