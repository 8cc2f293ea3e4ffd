// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqltext

import (
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      Category
	}{
		{
			name:      "insert is create",
			statement: "INSERT INTO employees (name) VALUES (:name)",
			want:      CategoryCreate,
		},
		{
			name:      "select is read",
			statement: "SELECT * FROM employees",
			want:      CategoryRead,
		},
		{
			name:      "update is update",
			statement: "UPDATE employees SET salary = :salary",
			want:      CategoryUpdate,
		},
		{
			name:      "delete is delete",
			statement: "DELETE FROM employees WHERE id = :id",
			want:      CategoryDelete,
		},
		{
			name:      "lowercase keyword",
			statement: "select 1",
			want:      CategoryRead,
		},
		{
			name:      "leading whitespace",
			statement: "   \n\tSELECT 1",
			want:      CategoryRead,
		},
		{
			name:      "ddl is unknown",
			statement: "TRUNCATE TABLE employees",
			want:      CategoryUnknown,
		},
		{
			name:      "empty statement",
			statement: "",
			want:      CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.statement)
			if got != tt.want {
				t.Errorf("Categorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnifyPlaceholders(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "bracketed placeholders",
			statement: "INSERT INTO employees (name, salary) VALUES (<name>, <salary>)",
			want:      "INSERT INTO employees (name, salary) VALUES (:name, :salary)",
		},
		{
			name:      "already named",
			statement: "SELECT * FROM employees WHERE id = :id",
			want:      "SELECT * FROM employees WHERE id = :id",
		},
		{
			name:      "comparison operators untouched",
			statement: "SELECT * FROM employees WHERE salary < 100 AND bonus > 5",
			want:      "SELECT * FROM employees WHERE salary < 100 AND bonus > 5",
		},
		{
			name:      "less-or-equal untouched",
			statement: "SELECT * FROM t WHERE a <= :a",
			want:      "SELECT * FROM t WHERE a <= :a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnifyPlaceholders(tt.statement)
			if got != tt.want {
				t.Errorf("UnifyPlaceholders() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairComparisons(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "missing operator before placeholder",
			statement: "SELECT e.name FROM employees e WHERE e.salary  :salary",
			want:      "SELECT e.name FROM employees e WHERE e.salary > :salary",
		},
		{
			name:      "missing operator between identifiers",
			statement: "SELECT * FROM payroll WHERE base_salary  bonus_salary",
			want:      "SELECT * FROM payroll WHERE base_salary > bonus_salary",
		},
		{
			name:      "existing operator untouched",
			statement: "SELECT * FROM employees WHERE salary > :salary",
			want:      "SELECT * FROM employees WHERE salary > :salary",
		},
		{
			name:      "operator with wide spacing untouched",
			statement: "SELECT * FROM employees WHERE salary >  :salary",
			want:      "SELECT * FROM employees WHERE salary >  :salary",
		},
		{
			name:      "equality untouched",
			statement: "UPDATE employees SET salary = :salary WHERE id = :id",
			want:      "UPDATE employees SET salary = :salary WHERE id = :id",
		},
		{
			name:      "reserved word on the left untouched",
			statement: "DELETE FROM  employees WHERE id = :id",
			want:      "DELETE FROM  employees WHERE id = :id",
		},
		{
			name:      "reserved word on the right untouched",
			statement: "SELECT name  FROM employees",
			want:      "SELECT name  FROM employees",
		},
		{
			name:      "single space untouched",
			statement: "SELECT e.name FROM employees e",
			want:      "SELECT e.name FROM employees e",
		},
		{
			name:      "two gaps both repaired",
			statement: "SELECT * FROM pay WHERE base  :base AND bonus  :bonus",
			want:      "SELECT * FROM pay WHERE base > :base AND bonus > :bonus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairComparisons(tt.statement)
			if got != tt.want {
				t.Errorf("RepairComparisons() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "unifies and repairs",
			statement: "SELECT e.name FROM employees e WHERE e.salary  <salary>",
			want:      "SELECT e.name FROM employees e WHERE e.salary > :salary",
		},
		{
			name:      "two-space defect from generator",
			statement: "SELECT * FROM employees e WHERE e.salary  :salary",
			want:      "SELECT * FROM employees e WHERE e.salary > :salary",
		},
		{
			name:      "valid statement unchanged",
			statement: "INSERT INTO employees (name, salary) VALUES (:name, :salary)",
			want:      "INSERT INTO employees (name, salary) VALUES (:name, :salary)",
		},
		{
			name:      "unknown keyword passes through",
			statement: "EXPLAIN SELECT  <id>",
			want:      "EXPLAIN SELECT  <id>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.statement)
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	statements := []string{
		"SELECT e.name FROM employees e WHERE e.salary  :salary",
		"INSERT INTO employees (name, salary) VALUES (<name>, <salary>)",
		"UPDATE employees SET salary = :salary WHERE id = :id",
		"DELETE FROM employees WHERE employee_id = :employee_id",
		"SELECT * FROM pay WHERE a  :a AND b  :b AND c  :c",
		"SELECT  *  FROM employees",
		"garbage that is not sql",
	}

	for _, statement := range statements {
		once := Normalize(statement)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q:\n once: %q\ntwice: %q", statement, once, twice)
		}
	}
}

func TestSuggestRepair(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "single space before placeholder",
			statement: "SELECT * FROM employees WHERE salary :salary",
			want:      "SELECT * FROM employees WHERE salary > :salary",
		},
		{
			name:      "qualified identifier",
			statement: "SELECT * FROM employees e WHERE e.salary :salary",
			want:      "SELECT * FROM employees e WHERE e.salary > :salary",
		},
		{
			name:      "operator already present",
			statement: "SELECT * FROM employees WHERE salary = :salary",
			want:      "SELECT * FROM employees WHERE salary = :salary",
		},
		{
			name:      "reserved word on the left",
			statement: "DELETE FROM employees WHERE id IN :ids",
			want:      "DELETE FROM employees WHERE id IN :ids",
		},
		{
			name:      "identifier pair without placeholder untouched",
			statement: "SELECT * FROM employees e WHERE e.name :name",
			want:      "SELECT * FROM employees e WHERE e.name > :name",
		},
		{
			name:      "two defects in one statement",
			statement: "SELECT * FROM pay WHERE a :a AND b :b",
			want:      "SELECT * FROM pay WHERE a > :a AND b > :b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestRepair(tt.statement)
			if got != tt.want {
				t.Errorf("SuggestRepair() = %q, want %q", got, tt.want)
			}
		})
	}
}
