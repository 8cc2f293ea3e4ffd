// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqltext

import (
	"reflect"
	"testing"
)

func TestInputColumns(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      []string
	}{
		{
			name:      "insert columns from parentheses",
			statement: "INSERT INTO employees (name, salary) VALUES (:name, :salary)",
			want:      []string{"name", "salary"},
		},
		{
			name:      "insert with spaced column list",
			statement: "INSERT INTO departments ( dept_name , location ) VALUES (:dept_name, :location)",
			want:      []string{"dept_name", "location"},
		},
		{
			name:      "update takes set targets only",
			statement: "UPDATE employees SET salary = :salary WHERE id = :id",
			want:      []string{"salary"},
		},
		{
			name:      "update with multiple assignments",
			statement: "UPDATE employees SET salary = :salary, bonus = :bonus WHERE id = :id",
			want:      []string{"salary", "bonus"},
		},
		{
			name:      "update without where",
			statement: "UPDATE employees SET active = :active",
			want:      []string{"active"},
		},
		{
			name:      "delete takes where predicates",
			statement: "DELETE FROM employees WHERE employee_id = :employee_id",
			want:      []string{"employee_id"},
		},
		{
			name:      "delete with and predicates",
			statement: "DELETE FROM orders WHERE customer_id = :customer_id AND status = :status",
			want:      []string{"customer_id", "status"},
		},
		{
			name:      "select takes where predicates",
			statement: "SELECT * FROM employees WHERE department = :department AND hired = :hired",
			want:      []string{"department", "hired"},
		},
		{
			name:      "select where clause stops before order by",
			statement: "SELECT * FROM employees WHERE department = :department ORDER BY name",
			want:      []string{"department"},
		},
		{
			name:      "select without where has no input columns",
			statement: "SELECT name, salary FROM employees",
			want:      nil,
		},
		{
			name:      "non equality predicate kept whole",
			statement: "SELECT * FROM employees WHERE salary > :salary",
			want:      []string{"salary > :salary"},
		},
		{
			name:      "unknown statement shape",
			statement: "TRUNCATE TABLE employees",
			want:      nil,
		},
		{
			name:      "multiline update",
			statement: "UPDATE employees\nSET salary = :salary,\n    bonus = :bonus\nWHERE id = :id",
			want:      []string{"salary", "bonus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InputColumns(tt.statement)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InputColumns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetTable(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "insert",
			statement: "INSERT INTO employees (name) VALUES (:name)",
			want:      "employees",
		},
		{
			name:      "update",
			statement: "UPDATE employees SET salary = :salary WHERE id = :id",
			want:      "employees",
		},
		{
			name:      "delete",
			statement: "DELETE FROM employees WHERE id = :id",
			want:      "employees",
		},
		{
			name:      "select",
			statement: "SELECT name, salary FROM employees WHERE dept = :dept",
			want:      "employees",
		},
		{
			name:      "schema qualified",
			statement: "DELETE FROM hr.employees WHERE id = :id",
			want:      "hr.employees",
		},
		{
			name:      "unknown shape",
			statement: "TRUNCATE TABLE employees",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetTable(tt.statement); got != tt.want {
				t.Errorf("TargetTable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWherePairs(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      map[string]string
	}{
		{
			name:      "single equality",
			statement: "DELETE FROM employees WHERE id = :id",
			want:      map[string]string{"id": "id"},
		},
		{
			name:      "renamed placeholder",
			statement: "DELETE FROM employees WHERE employee_id = :target",
			want:      map[string]string{"employee_id": "target"},
		},
		{
			name:      "non-equality predicate skipped",
			statement: "SELECT * FROM employees WHERE dept = :dept AND salary > :min",
			want:      map[string]string{"dept": "dept"},
		},
		{
			name:      "literal right-hand side skipped",
			statement: "SELECT * FROM employees WHERE status = 'active' AND id = :id",
			want:      map[string]string{"id": "id"},
		},
		{
			name:      "trailing clause cut",
			statement: "SELECT * FROM employees WHERE id = :id ORDER BY name",
			want:      map[string]string{"id": "id"},
		},
		{
			name:      "no where clause",
			statement: "SELECT * FROM employees",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WherePairs(tt.statement)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WherePairs() = %v, want %v", got, tt.want)
			}
		})
	}
}
