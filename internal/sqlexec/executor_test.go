// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"testing"

	"querysmith/cli/internal/dbconn"
	"querysmith/cli/internal/dsn"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/introspect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeDeps struct {
	table string
	deps  []introspect.Dependent
	err   error
}

func (f *fakeDeps) Dependents(ctx context.Context, table string) ([]introspect.Dependent, error) {
	f.table = table
	return f.deps, f.err
}

func newTestExecutor(t *testing.T, deps DependencySource) (*Executor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	manager, err := dbconn.OpenDB(dsn.DBTypePostgreSQL, db)
	require.NoError(t, err)
	return New(manager, deps), mock
}

func TestExecuteReadRowSet(t *testing.T) {
	e, mock := newTestExecutor(t, nil)

	mock.ExpectQuery(`SELECT name, salary FROM employees WHERE dept = \$1`).
		WithArgs("eng").
		WillReturnRows(sqlmock.NewRows([]string{"name", "salary"}).
			AddRow("amy", int64(90000)).
			AddRow("bo", int64(82000)))

	rep := e.Execute(context.Background(), Request{
		Template: "SELECT name, salary FROM employees WHERE dept = <dept>",
		Named:    map[string]any{"dept": "eng", "unused": true},
	})

	require.Equal(t, "SELECT name, salary FROM employees WHERE dept = :dept", rep.Statement)
	require.Equal(t, map[string]any{"dept": "eng"}, rep.BoundColumns)
	require.Equal(t, OutcomeRowSet, rep.Outcome.Kind)
	require.Equal(t, []string{"name", "salary"}, rep.Outcome.Columns)
	require.Equal(t, [][]any{{"amy", int64(90000)}, {"bo", int64(82000)}}, rep.Outcome.Rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteReadNoRecords(t *testing.T) {
	e, mock := newTestExecutor(t, nil)

	mock.ExpectQuery(`SELECT name FROM employees WHERE dept = \$1`).
		WithArgs("legal").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	rep := e.Execute(context.Background(), Request{
		Template: "SELECT name FROM employees WHERE dept = :dept",
		Named:    map[string]any{"dept": "legal"},
	})

	require.Equal(t, OutcomeNoRecords, rep.Outcome.Kind)
	require.Equal(t, []string{"name"}, rep.Outcome.Columns)
	require.Empty(t, rep.Outcome.Rows)
	require.Nil(t, rep.Outcome.Failure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteCreateCommits(t *testing.T) {
	e, mock := newTestExecutor(t, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO employees \(name, salary\) VALUES \(\$1, \$2\)`).
		WithArgs("amy", 90000).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rep := e.Execute(context.Background(), Request{
		Template:   "INSERT INTO employees (name, salary) VALUES (<name>, <salary>)",
		Positional: []any{"amy", 90000},
	})

	require.Equal(t, OutcomeAffected, rep.Outcome.Kind)
	require.Equal(t, int64(1), rep.Outcome.Affected)
	require.Equal(t, map[string]any{"name": "amy", "salary": 90000}, rep.BoundColumns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteDeleteDetachesDependents(t *testing.T) {
	deps := &fakeDeps{deps: []introspect.Dependent{
		{Table: "employees", Column: "manager_id", RefColumn: "id", Nullable: true},
		{Table: "timecards", Column: "employee_id", RefColumn: "id", Nullable: false},
	}}
	e, mock := newTestExecutor(t, deps)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE employees SET manager_id = NULL WHERE manager_id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM employees WHERE id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rep := e.Execute(context.Background(), Request{
		Template: "DELETE FROM employees WHERE id = <id>",
		Named:    map[string]any{"id": 7},
	})

	require.Equal(t, "employees", deps.table)
	require.Equal(t, OutcomeAffected, rep.Outcome.Kind)
	require.Equal(t, int64(1), rep.Outcome.Affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteDeleteRollsBackWhenBlocked(t *testing.T) {
	deps := &fakeDeps{deps: []introspect.Dependent{
		{Table: "employees", Column: "manager_id", RefColumn: "id", Nullable: true},
		{Table: "timecards", Column: "employee_id", RefColumn: "id", Nullable: false},
	}}
	e, mock := newTestExecutor(t, deps)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE employees SET manager_id = NULL WHERE manager_id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM employees WHERE id = \$1`).
		WithArgs(7).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	rep := e.Execute(context.Background(), Request{
		Template: "DELETE FROM employees WHERE id = <id>",
		Named:    map[string]any{"id": 7},
	})

	require.Equal(t, OutcomeFailure, rep.Outcome.Kind)
	require.NotNil(t, rep.Outcome.Failure)
	require.Equal(t, errors.ConstraintViolation, rep.Outcome.Failure.Kind)
	require.Equal(t, "Cannot delete or update this record: it is referenced elsewhere.", rep.Outcome.Failure.Message)
	require.Equal(t, map[string]any{"id": 7}, rep.BoundColumns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSyntaxFailureCarriesSuggestedFix(t *testing.T) {
	e, mock := newTestExecutor(t, nil)

	mock.ExpectQuery(`SELECT \* FROM employees WHERE salary \$1`).
		WithArgs(50000).
		WillReturnError(&pgconn.PgError{Code: "42601", Message: `syntax error at or near "$1"`})

	rep := e.Execute(context.Background(), Request{
		Template: "SELECT * FROM employees WHERE salary :salary",
		Named:    map[string]any{"salary": 50000},
	})

	require.Equal(t, OutcomeFailure, rep.Outcome.Kind)
	require.Equal(t, errors.SyntaxDefect, rep.Outcome.Failure.Kind)
	require.Equal(t, "SELECT * FROM employees WHERE salary > :salary", rep.Outcome.Failure.SuggestedFix)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteWithoutConnection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	manager, err := dbconn.OpenDB(dsn.DBTypePostgreSQL, db)
	require.NoError(t, err)
	require.NoError(t, manager.Close())

	rep := New(manager, nil).Execute(context.Background(), Request{
		Template: "DELETE FROM employees WHERE id = :id",
		Named:    map[string]any{"id": 7},
	})

	require.Equal(t, OutcomeFailure, rep.Outcome.Kind)
	require.Equal(t, errors.Connection, rep.Outcome.Failure.Kind)
	require.Equal(t, map[string]any{"id": 7}, rep.BoundColumns)
}

func TestBindValues(t *testing.T) {
	statement := "UPDATE employees SET salary = :salary WHERE id = :id"

	tests := []struct {
		name       string
		named      map[string]any
		positional []any
		want       map[string]any
	}{
		{
			name:  "named values",
			named: map[string]any{"salary": 90000, "id": 7},
			want:  map[string]any{"salary": 90000, "id": 7},
		},
		{
			name:       "named wins over positional",
			named:      map[string]any{"salary": 90000},
			positional: []any{1, 2},
			want:       map[string]any{"salary": 90000},
		},
		{
			name:       "positional in first-appearance order",
			positional: []any{90000, 7},
			want:       map[string]any{"salary": 90000, "id": 7},
		},
		{
			name:       "extra positional ignored",
			positional: []any{90000, 7, "spare"},
			want:       map[string]any{"salary": 90000, "id": 7},
		},
		{
			name:       "missing value stays unbound",
			positional: []any{90000},
			want:       map[string]any{"salary": 90000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, bindValues(statement, tt.named, tt.positional))
		})
	}
}
