// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqltext

import (
	"regexp"
	"strings"
)

var (
	reInsertColumns  = regexp.MustCompile(`(?i)INSERT\s+INTO\s+\S+\s*\(([^)]*)\)`)
	reUpdateSet      = regexp.MustCompile(`(?is)UPDATE\s+\S+\s+SET\s+(.*?)(?:\s+WHERE\b|$)`)
	reWhereClause    = regexp.MustCompile(`(?is)\bWHERE\s+(.*)$`)
	reTrailingClause = regexp.MustCompile(`(?i)\b(ORDER\s+BY|GROUP\s+BY|HAVING|LIMIT|OFFSET|RETURNING)\b`)
	reAndSplit       = regexp.MustCompile(`(?i)\s+AND\s+`)

	reInsertTarget = regexp.MustCompile(`(?i)^\s*INSERT\s+INTO\s+([A-Za-z_][\w.]*)`)
	reUpdateTarget = regexp.MustCompile(`(?i)^\s*UPDATE\s+([A-Za-z_][\w.]*)`)
	reDeleteTarget = regexp.MustCompile(`(?i)^\s*DELETE\s+FROM\s+([A-Za-z_][\w.]*)`)
	reSelectTarget = regexp.MustCompile(`(?i)\bFROM\s+([A-Za-z_][\w.]*)`)

	reIdent = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// InputColumns extracts the column names a caller supplies values for,
// specific to the statement shape:
//   - INSERT: the columns listed inside the parentheses after the table name
//   - UPDATE: the left-hand side of each SET assignment
//   - DELETE and SELECT: the left-hand side of each WHERE predicate
//
// Statements of unknown shape yield no columns.
func InputColumns(statement string) []string {
	switch Categorize(statement) {
	case CategoryCreate:
		return insertColumns(statement)
	case CategoryUpdate:
		return updateColumns(statement)
	case CategoryRead, CategoryDelete:
		return whereColumns(statement)
	default:
		return nil
	}
}

// insertColumns parses the column list of an INSERT statement.
func insertColumns(statement string) []string {
	match := reInsertColumns.FindStringSubmatch(statement)
	if len(match) < 2 {
		return nil
	}
	return splitTrimmed(match[1], ",")
}

// updateColumns parses the SET clause of an UPDATE statement, taking the
// assignment targets and excluding WHERE-side columns.
func updateColumns(statement string) []string {
	match := reUpdateSet.FindStringSubmatch(statement)
	if len(match) < 2 {
		return nil
	}
	var cols []string
	for _, assignment := range strings.Split(match[1], ",") {
		lhs := strings.TrimSpace(strings.SplitN(assignment, "=", 2)[0])
		if lhs != "" {
			cols = append(cols, lhs)
		}
	}
	return cols
}

// whereColumns parses the WHERE clause of a SELECT or DELETE statement,
// splitting predicates on AND and commas and taking each left-hand side.
func whereColumns(statement string) []string {
	match := reWhereClause.FindStringSubmatch(statement)
	if len(match) < 2 {
		return nil
	}
	clause := match[1]
	if loc := reTrailingClause.FindStringIndex(clause); loc != nil {
		clause = clause[:loc[0]]
	}
	clause = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clause), ";"))

	var cols []string
	for _, predicate := range reAndSplit.Split(clause, -1) {
		for _, part := range strings.Split(predicate, ",") {
			lhs := strings.TrimSpace(strings.SplitN(part, "=", 2)[0])
			if lhs != "" {
				cols = append(cols, lhs)
			}
		}
	}
	return cols
}

// splitTrimmed splits on sep, trims whitespace, and drops empty entries.
func splitTrimmed(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// TargetTable returns the table a statement operates on: the INSERT INTO,
// UPDATE, or DELETE FROM target, or the first FROM table of a SELECT.
// Returns "" when no table can be recognized.
func TargetTable(statement string) string {
	var re *regexp.Regexp
	switch Categorize(statement) {
	case CategoryCreate:
		re = reInsertTarget
	case CategoryUpdate:
		re = reUpdateTarget
	case CategoryDelete:
		re = reDeleteTarget
	case CategoryRead:
		re = reSelectTarget
	default:
		return ""
	}
	match := re.FindStringSubmatch(statement)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// WherePairs maps each WHERE equality predicate's column to its placeholder
// name. Predicates whose right-hand side is not a single :name placeholder
// are skipped. This feeds the dependency-aware delete, which needs the bound
// value identifying the target row.
func WherePairs(statement string) map[string]string {
	match := reWhereClause.FindStringSubmatch(statement)
	if len(match) < 2 {
		return nil
	}
	clause := match[1]
	if loc := reTrailingClause.FindStringIndex(clause); loc != nil {
		clause = clause[:loc[0]]
	}
	clause = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clause), ";"))

	pairs := make(map[string]string)
	for _, predicate := range reAndSplit.Split(clause, -1) {
		for _, part := range strings.Split(predicate, ",") {
			kv := strings.SplitN(part, "=", 2)
			if len(kv) != 2 {
				continue
			}
			col := strings.TrimSpace(kv[0])
			rhs := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(kv[1]), ";"))
			if col == "" || !strings.HasPrefix(rhs, ":") {
				continue
			}
			name := strings.TrimPrefix(rhs, ":")
			if !reIdent.MatchString(name) {
				continue
			}
			pairs[col] = name
		}
	}
	if len(pairs) == 0 {
		return nil
	}
	return pairs
}
