// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/secure"
	"querysmith/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var clearAPIKey bool

// apikeyCmd represents the apikey command for storing the generation-service
// API key. The key is prompted rather than taken as an argument so it never
// lands in shell history.
var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Store the generation-service API key",
	Long: `The apikey command prompts for the use-case generation service API key and
stores it securely in the OS keychain. The key is sent as a bearer token on
generation requests.

The QUERYSMITH_API_KEY environment variable, when set, takes precedence over
the stored key. Use --clear to remove the stored key.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if clearAPIKey {
			if err := secure.ClearAPIKey(); err != nil {
				fmt.Println("❌ Secure storage is not available on this system.")
				fmt.Println("   Keychain is only supported on macOS and Windows.")
				return err
			}
			fmt.Println("✅ Stored API key has been removed")
			return nil
		}

		reader := bufio.NewReader(os.Stdin)
		promptText := "Enter API key: "
		fmt.Print(promptText)
		raw, _ := reader.ReadString('\n')
		key := strings.TrimSpace(raw)

		// The key is a credential; wipe it from the screen.
		terminal.ClearPreviousLines(len(promptText) + len(key))

		if key == "" {
			return errors.New(errors.Configuration, "API key is required")
		}

		if err := secure.SaveAPIKey(key); err != nil {
			fmt.Println("❌ Failed to save the API key securely.")
			fmt.Println("   Keychain is only supported on macOS and Windows.")
			return err
		}

		fmt.Println("✅ API key saved!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.Flags().BoolVar(&clearAPIKey, "clear", false, "Remove the stored API key")
}
