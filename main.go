// Package main is the entry point for the Querysmith CLI application.
// It turns a live database schema into a catalog of parameterized
// SQL use cases and executes them.
package main

import (
	"querysmith/cli/cmd"
)

// main is the entry point for the Querysmith CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
