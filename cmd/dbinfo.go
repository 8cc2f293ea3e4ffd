// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// dbinfoCmd shows which database the CLI would talk to and where that
// DSN came from, with the password masked.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the active database connection",
	Long: `The dbinfo command displays the currently configured database connection string
(DSN) and the source it was resolved from. The password is replaced with ***
so the output is safe to share.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, source, err := resolveDSN()
		if err != nil {
			if errors.IsKind(err, errors.NotFound) {
				pterm.Println("⚠️  No database connection configured")
				pterm.Println("   Please run: querysmith connect")
				return nil
			}
			return err
		}

		pterm.Println("Using DSN from " + source)
		pterm.Println()
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Active Connection")).
			WithTopPadding(1).
			WithBottomPadding(1).
			WithLeftPadding(1).
			WithRightPadding(1).
			Println(logging.Mask(dsn))
		pterm.Println()
		pterm.Println("To update this connection, run: querysmith connect")
		pterm.Println()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
