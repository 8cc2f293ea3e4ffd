// Package sqlexec executes catalog use cases against the active connection
// profile. It normalizes the statement, binds caller values to named
// placeholders, dispatches on the statement category, and renders every
// outcome as a Report.
//
// Write statements run inside a transaction. Deletes additionally detach
// nullable dependent references inside the same transaction, so either the
// detach and the delete both persist or neither does.
package sqlexec

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"

	"querysmith/cli/internal/dbconn"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/introspect"
	"querysmith/cli/internal/logging"
	"querysmith/cli/internal/sqltext"
)

// reIdentifier limits what may be interpolated into a detach statement.
// Dependent table and column names come from information_schema, never from
// the caller, but only plain identifiers pass regardless.
var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// DependencySource answers which columns in other tables reference a table.
// The introspector implements it.
type DependencySource interface {
	Dependents(ctx context.Context, table string) ([]introspect.Dependent, error)
}

// Request describes one execution. Named values win over Positional when
// both are supplied; Positional values map to placeholder names in
// first-appearance order.
type Request struct {
	UseCaseID  string
	Template   string
	Named      map[string]any
	Positional []any
}

// Executor runs statements through the connection manager.
type Executor struct {
	manager *dbconn.Manager
	deps    DependencySource
}

// New creates an Executor. deps may be nil, which disables the dependency
// detach step for deletes.
func New(manager *dbconn.Manager, deps DependencySource) *Executor {
	return &Executor{manager: manager, deps: deps}
}

// Execute normalizes and runs one request. It never returns an error: every
// failure is classified and carried in the report's outcome, with the bound
// columns echoed alongside.
func (e *Executor) Execute(ctx context.Context, req Request) Report {
	statement := sqltext.Normalize(req.Template)
	category := sqltext.Categorize(statement)
	bound := bindValues(statement, req.Named, req.Positional)

	report := Report{
		UseCaseID:    req.UseCaseID,
		Statement:    statement,
		BoundColumns: bound,
	}
	logging.Debugf("sqlexec", "executing %s statement with %d bound values", category, len(bound))

	sess, err := e.manager.OpenSession(ctx)
	if err != nil {
		report.Outcome = failure(nil, statement, err)
		return report
	}
	defer sess.Close()

	switch category {
	case sqltext.CategoryRead:
		report.Outcome = query(ctx, sess, statement, bound)
	case sqltext.CategoryDelete:
		report.Outcome = e.remove(ctx, sess, statement, bound)
	default:
		report.Outcome = exec(ctx, sess, statement, bound)
	}
	return report
}

// bindValues resolves caller values against the statement's placeholders.
// Extra values are ignored. Missing ones stay unbound so the driver reports
// the arity mismatch instead of receiving a silent NULL.
func bindValues(statement string, named map[string]any, positional []any) map[string]any {
	names := sqltext.Placeholders(statement)
	bound := make(map[string]any, len(names))
	if len(named) > 0 {
		for _, name := range names {
			if val, ok := named[name]; ok {
				bound[name] = val
			}
		}
		return bound
	}
	for i, name := range names {
		if i >= len(positional) {
			break
		}
		bound[name] = positional[i]
	}
	return bound
}

// argList expands bound values into driver arguments following the rebound
// placeholder order.
func argList(order []string, bound map[string]any) []any {
	args := make([]any, 0, len(order))
	for _, name := range order {
		if val, ok := bound[name]; ok {
			args = append(args, val)
		}
	}
	return args
}

// query runs a read and fetches every row.
func query(ctx context.Context, sess *dbconn.Session, statement string, bound map[string]any) Outcome {
	rebound, order := sess.Backend().Rebind(statement)
	rows, err := sess.Conn().QueryContext(ctx, rebound, argList(order, bound)...)
	if err != nil {
		return failure(sess.Backend(), statement, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return failure(sess.Backend(), statement, err)
	}

	var set [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return failure(sess.Backend(), statement, err)
		}
		set = append(set, vals)
	}
	if err := rows.Err(); err != nil {
		return failure(sess.Backend(), statement, err)
	}

	if len(set) == 0 {
		return Outcome{Kind: OutcomeNoRecords, Columns: cols}
	}
	logging.Debugf("sqlexec", "read returned %d rows", len(set))
	return Outcome{Kind: OutcomeRowSet, Columns: cols, Rows: set}
}

// exec runs a write inside a transaction and reports the affected count.
func exec(ctx context.Context, sess *dbconn.Session, statement string, bound map[string]any) Outcome {
	rebound, order := sess.Backend().Rebind(statement)
	tx, err := sess.Conn().BeginTx(ctx, nil)
	if err != nil {
		return failure(sess.Backend(), statement, err)
	}
	defer tx.Rollback() // no-op once Commit succeeds

	res, err := tx.ExecContext(ctx, rebound, argList(order, bound)...)
	if err != nil {
		return failure(sess.Backend(), statement, err)
	}
	affected, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return failure(sess.Backend(), statement, err)
	}
	logging.Debugf("sqlexec", "write committed, %d rows affected", affected)
	return Outcome{Kind: OutcomeAffected, Affected: affected}
}

// detach is one dependent reference to null out before a delete.
type detach struct {
	table  string
	column string
	value  any
}

// remove runs the dependency-aware delete protocol. Nullable columns in
// other tables that reference the target row are set to NULL first, then
// the row is deleted, all inside one transaction. NOT NULL references are
// left alone; if one still blocks the delete, the whole transaction rolls
// back and no detach persists.
func (e *Executor) remove(ctx context.Context, sess *dbconn.Session, statement string, bound map[string]any) Outcome {
	backend := sess.Backend()

	detaches, err := e.detachPlan(ctx, statement, bound)
	if err != nil {
		return failure(backend, statement, err)
	}

	rebound, order := backend.Rebind(statement)
	tx, err := sess.Conn().BeginTx(ctx, nil)
	if err != nil {
		return failure(backend, statement, err)
	}
	defer tx.Rollback() // no-op once Commit succeeds

	for _, d := range detaches {
		stmt, _ := backend.Rebind(fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = :ref", d.table, d.column, d.column))
		res, err := tx.ExecContext(ctx, stmt, d.value)
		if err != nil {
			return failure(backend, statement, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			logging.Debugf("sqlexec", "detached %d %s.%s references", n, d.table, d.column)
		}
	}

	res, err := tx.ExecContext(ctx, rebound, argList(order, bound)...)
	if err != nil {
		return failure(backend, statement, err)
	}
	affected, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return failure(backend, statement, err)
	}
	logging.Debugf("sqlexec", "delete committed, %d rows affected", affected)
	return Outcome{Kind: OutcomeAffected, Affected: affected}
}

// detachPlan matches the target table's dependents against the delete's
// WHERE predicates. A dependent is detachable when its reference column is
// nullable and the referenced column is pinned to a bound value by an
// equality predicate.
func (e *Executor) detachPlan(ctx context.Context, statement string, bound map[string]any) ([]detach, error) {
	if e.deps == nil {
		return nil, nil
	}
	table := sqltext.TargetTable(statement)
	pairs := sqltext.WherePairs(statement)
	if table == "" || len(pairs) == 0 {
		return nil, nil
	}

	deps, err := e.deps.Dependents(ctx, table)
	if err != nil {
		return nil, err
	}

	var detaches []detach
	for _, dep := range deps {
		if !dep.Nullable {
			continue
		}
		name, ok := pairs[dep.RefColumn]
		if !ok {
			continue
		}
		value, ok := bound[name]
		if !ok {
			continue
		}
		if !reIdentifier.MatchString(dep.Table) || !reIdentifier.MatchString(dep.Column) {
			continue
		}
		detaches = append(detaches, detach{table: dep.Table, column: dep.Column, value: value})
	}
	return detaches, nil
}

// failure classifies err and builds the failure outcome. Constraint
// violations get a business-level message. Syntax defects carry one
// suggested repair of the statement, which is reported but never executed.
func failure(backend dbconn.Backend, statement string, err error) Outcome {
	kind := errors.KindOf(err)
	if kind == errors.Unknown && backend != nil {
		kind = backend.Classify(err)
	}

	f := &Failure{Kind: kind, Message: messageOf(err)}
	switch kind {
	case errors.ConstraintViolation:
		f.Message = "Cannot delete or update this record: it is referenced elsewhere."
	case errors.SyntaxDefect:
		if fix := sqltext.SuggestRepair(statement); fix != statement {
			f.SuggestedFix = fix
		}
	}
	logging.Debugf("sqlexec", "statement failed (%s): %v", kind, err)
	return Outcome{Kind: OutcomeFailure, Failure: f}
}

// messageOf strips the kind prefix from typed errors. The kind travels in
// its own field.
func messageOf(err error) string {
	var e *errors.E
	if stderrors.As(err, &e) {
		if e.Err != nil {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Message
	}
	return err.Error()
}
