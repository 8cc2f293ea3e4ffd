// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"querysmith/cli/internal/catalog"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/sqlexec"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var executeJSON bool

// executeCmd represents the execute command. It resolves a use case from the
// catalog, collects its parameter values, runs it, and renders the report.
var executeCmd = &cobra.Command{
	Use:   "execute [use-case-id] [value...]",
	Short: "Execute a generated use case with bound values",
	Long: `The execute command runs one SQL use case from the generated catalog. With no
arguments it offers an interactive selection and prompts for each declared
parameter. A use-case ID can be given directly; any further arguments are
bound positionally in the order the statement's placeholders first appear.`,
	Args: cobra.ArbitraryArgs,
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

		uc, positional, err := pickUseCase(cat, args)
		if err != nil {
			return err
		}

		req := sqlexec.Request{UseCaseID: uc.ID.String(), Template: uc.Template}
		switch {
		case len(positional) > 0:
			req.Positional = positionalValues(positional)
		case len(uc.InputParameters) > 0:
			named, err := promptParameters(uc.InputParameters)
			if err != nil {
				return err
			}
			req.Named = named
		}

		stopSpinner = startInlineSpinner(os.Stdout, "executing")
		rep := eng.executor.Execute(ctx, req)
		stopSpinner()

		if executeJSON {
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			if f := rep.Outcome.Failure; f != nil {
				return errors.New(f.Kind, f.Message)
			}
			return nil
		}
		return renderReport(rep)
	},
}

func init() {
	rootCmd.AddCommand(executeCmd)
	executeCmd.Flags().BoolVar(&executeJSON, "json", false, "Print the execution report as JSON")
}

// pickUseCase resolves the use case from the arguments, or interactively when
// no ID was given. Remaining arguments after the ID are positional values.
func pickUseCase(cat *catalog.Catalog, args []string) (catalog.UseCase, []string, error) {
	if len(args) > 0 {
		uc, ok := cat.Find(args[0])
		if !ok {
			return catalog.UseCase{}, nil, errors.New(errors.NotFound, "use case not found: "+args[0])
		}
		return uc, args[1:], nil
	}

	labels := make([]string, 0, cat.Len())
	byLabel := make(map[string]catalog.UseCase, cat.Len())
	for i, uc := range cat.UseCases {
		label := fmt.Sprintf("%d. [%s] %s", i+1, uc.Category, uc.Description)
		labels = append(labels, label)
		byLabel[label] = uc
	}

	var choice string
	prompt := &survey.Select{Message: "Select a use case:", Options: labels, PageSize: 12}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return catalog.UseCase{}, nil, err
	}
	return byLabel[choice], nil, nil
}

// promptParameters asks for each declared parameter and coerces the input
// per its declared type.
func promptParameters(params []catalog.Parameter) (map[string]any, error) {
	named := make(map[string]any, len(params))
	for _, p := range params {
		msg := fmt.Sprintf("Enter %s:", p.Name)
		if p.Type != "" {
			msg = fmt.Sprintf("Enter %s (%s):", p.Name, p.Type)
		}
		var raw string
		if err := survey.AskOne(&survey.Input{Message: msg}, &raw); err != nil {
			return nil, err
		}
		named[p.Name] = coerceValue(p.Type, strings.TrimSpace(raw))
	}
	return named, nil
}

// positionalValues passes command-line values through as strings; the
// database coerces them against the column types.
func positionalValues(args []string) []any {
	vals := make([]any, len(args))
	for i, s := range args {
		vals[i] = s
	}
	return vals
}

// coerceValue converts prompt input per the declared parameter type.
// Unrecognized types stay strings.
func coerceValue(typ, raw string) any {
	t := strings.ToLower(typ)
	switch {
	case strings.Contains(t, "int"), strings.Contains(t, "serial"):
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	case strings.Contains(t, "float"), strings.Contains(t, "double"),
		strings.Contains(t, "decimal"), strings.Contains(t, "numeric"),
		strings.Contains(t, "number"), strings.Contains(t, "real"):
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case strings.Contains(t, "bool"):
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// renderReport prints the execution outcome. Failures are rendered and also
// returned so the process exits non-zero.
func renderReport(rep sqlexec.Report) error {
	switch rep.Outcome.Kind {
	case sqlexec.OutcomeRowSet:
		data := pterm.TableData{rep.Outcome.Columns}
		for _, row := range rep.Outcome.Rows {
			cells := make([]string, len(row))
			for i, val := range row {
				cells[i] = formatCell(val)
			}
			data = append(data, cells)
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
		pterm.Printf("%d row(s)\n", len(rep.Outcome.Rows))
		return nil

	case sqlexec.OutcomeNoRecords:
		pterm.Println("ℹ️  No records found.")
		return nil

	case sqlexec.OutcomeAffected:
		pterm.Printf("✅ %d row(s) affected\n", rep.Outcome.Affected)
		return nil

	case sqlexec.OutcomeFailure:
		f := rep.Outcome.Failure
		pterm.Println("❌ " + f.Message)
		if f.SuggestedFix != "" {
			pterm.Println("💡 Suggested fix: " + f.SuggestedFix)
		}
		return errors.New(f.Kind, f.Message)
	}
	return nil
}

// formatCell renders one result value for terminal display.
func formatCell(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
