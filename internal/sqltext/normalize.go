// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package sqltext rewrites generated SQL statement templates into executable
// form. Generation services tend to emit two recoverable defects: bracketed
// placeholders (<name> instead of :name) and comparisons with the operator
// dropped entirely (salary  :salary). The functions here repair both with
// plain text rewrites, extract the columns a caller must supply values for,
// and rebind named parameters to the dialect placeholder styles.
//
// Everything in this package is a pure function over the statement text.
// There is no SQL parser here; the rewrites are conservative and advisory,
// and statements that cannot be recognized pass through unchanged.
package sqltext

import (
	"regexp"
	"strings"
)

// Category is the operation class of a statement, inferred from its leading
// keyword.
type Category string

const (
	CategoryCreate  Category = "Create"
	CategoryRead    Category = "Read"
	CategoryUpdate  Category = "Update"
	CategoryDelete  Category = "Delete"
	CategoryUnknown Category = "Unknown"
)

var (
	// <name> bracketed placeholder form.
	reBracketParam = regexp.MustCompile(`<(\w+)>`)

	// identifier pair joined by two or more spaces with no operator between:
	// the prefix group keeps the match off placeholder names and qualified
	// identifiers that are already part of a larger token.
	reMissingOperator = regexp.MustCompile(`(^|[^:.\w])([A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)[ \t]{2,}(:?[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)`)

	// identifier directly followed by a placeholder across any whitespace.
	// Only used for advisory suggestions after a statement was rejected.
	reAdjacentPlaceholder = regexp.MustCompile(`(^|[^:.\w])([A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)[ \t]+(:[A-Za-z_]\w*)`)
)

// reservedWords are never treated as the column side of a repaired
// comparison. Two spaces after SELECT or before FROM is formatting, not a
// dropped operator.
var reservedWords = map[string]bool{
	"SELECT": true, "INSERT": true, "UPDATE": true, "DELETE": true,
	"FROM": true, "WHERE": true, "AND": true, "OR": true, "NOT": true,
	"SET": true, "VALUES": true, "INTO": true, "JOIN": true, "LEFT": true,
	"RIGHT": true, "INNER": true, "OUTER": true, "FULL": true, "CROSS": true,
	"ON": true, "AS": true, "GROUP": true, "ORDER": true, "BY": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "DISTINCT": true,
	"LIKE": true, "ILIKE": true, "IN": true, "IS": true, "NULL": true,
	"BETWEEN": true, "EXISTS": true, "UNION": true, "ALL": true,
	"ASC": true, "DESC": true, "CASE": true, "WHEN": true, "THEN": true,
	"ELSE": true, "END": true, "RETURNING": true,
}

func isReserved(word string) bool {
	return reservedWords[strings.ToUpper(word)]
}

// Categorize returns the operation class for a statement based on its
// leading keyword: INSERT maps to Create, SELECT to Read, UPDATE to Update,
// DELETE to Delete. Anything else is CategoryUnknown.
func Categorize(statement string) Category {
	trimmed := strings.TrimSpace(statement)
	if trimmed == "" {
		return CategoryUnknown
	}
	first := trimmed
	if i := strings.IndexFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '('
	}); i > 0 {
		first = trimmed[:i]
	}
	switch strings.ToUpper(first) {
	case "INSERT":
		return CategoryCreate
	case "SELECT":
		return CategoryRead
	case "UPDATE":
		return CategoryUpdate
	case "DELETE":
		return CategoryDelete
	default:
		return CategoryUnknown
	}
}

// UnifyPlaceholders rewrites bracketed placeholders (<name>) to the named
// parameter form (:name). Comparison operators are unaffected: only a
// bracket pair enclosing a single word is rewritten.
func UnifyPlaceholders(statement string) string {
	return reBracketParam.ReplaceAllString(statement, ":$1")
}

// RepairComparisons inserts a ">" between an identifier and a following
// placeholder or identifier when the two are separated by two or more
// spaces and no operator. This is the most common defect in generated
// statements (e.g. "e.salary  :salary" meaning "e.salary > :salary").
//
// The repair is conservative: it skips reserved words on either side, never
// touches pairs already joined by an operator (the gap must be whitespace
// only), and runs to a fixpoint so repeated application cannot change the
// result further.
func RepairComparisons(statement string) string {
	for {
		repaired := reMissingOperator.ReplaceAllStringFunc(statement, func(m string) string {
			sub := reMissingOperator.FindStringSubmatch(m)
			prefix, left, right := sub[1], sub[2], sub[3]
			if isReserved(left) {
				return m
			}
			if !strings.HasPrefix(right, ":") && isReserved(right) {
				return m
			}
			return prefix + left + " > " + right
		})
		if repaired == statement {
			return statement
		}
		statement = repaired
	}
}

// Normalize rewrites a raw statement template into executable form:
// placeholder syntax is unified to :name and omitted comparison operators
// are repaired. Statements without a recognizable leading keyword are
// returned unchanged; normalization is advisory, never blocking.
// Normalize is idempotent.
func Normalize(template string) string {
	if Categorize(template) == CategoryUnknown {
		return template
	}
	return RepairComparisons(UnifyPlaceholders(template))
}

// SuggestRepair applies one more aggressive repair pass for advisory use
// after the backend rejected a statement: a single space between an
// identifier and a placeholder is treated as a missing ">" too. The result
// is a suggestion only and is never executed; callers compare it against the
// input to decide whether there is anything to suggest.
func SuggestRepair(statement string) string {
	return reAdjacentPlaceholder.ReplaceAllStringFunc(statement, func(m string) string {
		sub := reAdjacentPlaceholder.FindStringSubmatch(m)
		prefix, left, right := sub[1], sub[2], sub[3]
		if isReserved(left) {
			return m
		}
		return prefix + left + " > " + right
	})
}
