// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Querysmith CLI.
// It implements subcommands for configuring a database connection, inspecting
// the schema, generating a use-case catalog, and executing use cases, built
// on the Cobra CLI framework with inline spinners for long operations.
package cmd

import (
	"fmt"
	"os"

	"querysmith/cli/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var showVersion bool

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the Querysmith CLI.
var rootCmd = &cobra.Command{
	Use:           "querysmith",
	Short:         "Querysmith CLI for schema-driven SQL use cases",
	Long: `Querysmith is a command-line tool that connects to a PostgreSQL or MySQL
database, reads its schema, asks a generation service for a catalog of
parameterized SQL use cases, and executes them with bound values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("querysmith %s\n", Version)
			return nil
		}
		// Bare invocation gets the help screen
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It loads environment files, executes the root command, and handles any
// errors that occur during execution.
func Execute() {
	// .env first, then .env.local on top of it
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	if err := rootCmd.Execute(); err != nil {
		// Driver errors can echo connection strings; mask before printing.
		fmt.Fprintln(os.Stderr, logging.PresentError("querysmith", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}
