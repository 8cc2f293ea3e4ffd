// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"querysmith/cli/internal/secure"

	"github.com/spf13/cobra"
)

var disconnectAll bool

// disconnectCmd represents the disconnect command for removing the saved
// database connection. With --all it also removes the stored API key.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove the saved database connection",
	Long: `The disconnect command removes the database connection string stored in the
OS keychain. The database itself is not touched.

With --all it also removes the stored generation-service API key.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		// Clearing is best-effort: a missing entry or an unsupported OS
		// both leave nothing stored.
		_ = secure.ClearDB()
		if disconnectAll {
			_ = secure.ClearAll()
			fmt.Println("✅ Saved connection and API key have been removed")
		} else {
			fmt.Println("✅ Saved database connection has been removed")
		}

		// Environment variables outrank the keychain, so a connection
		// configured through them survives a disconnect.
		for _, name := range []string{"QUERYSMITH_DSN", "DATABASE_URL"} {
			if strings.TrimSpace(os.Getenv(name)) != "" {
				fmt.Printf("ℹ️  %s is still set and will keep taking precedence\n", name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
	disconnectCmd.Flags().BoolVar(&disconnectAll, "all", false, "Also remove the stored API key")
}
