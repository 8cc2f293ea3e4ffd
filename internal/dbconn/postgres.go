// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dbconn

import (
	stderrors "errors"
	"strings"

	"querysmith/cli/internal/dsn"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/sqltext"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// PostgreSQL SQLSTATE classes and codes used for classification.
const (
	pgClassIntegrityViolation = "23"
	pgClassSyntaxOrAccess     = "42"
	pgClassConnection         = "08"
	pgClassInsufficientRes    = "53"
	pgAdminShutdown           = "57P01"
)

type postgresBackend struct{}

func (postgresBackend) Kind() dsn.DBType   { return dsn.DBTypePostgreSQL }
func (postgresBackend) DriverName() string { return "pgx" }
func (postgresBackend) DefaultPort() string {
	return "5432"
}

// DriverDSN returns the normalized URL form, which the pgx stdlib driver
// accepts directly.
func (postgresBackend) DriverDSN(info *dsn.DSNInfo) (string, error) {
	return dsn.NewPostgreSQLResolver().Normalize(info)
}

func (postgresBackend) Rebind(statement string) (string, []string) {
	return sqltext.RebindDollar(statement)
}

// Classify maps a pgx error to an error kind by SQLSTATE class, falling back
// to message matching for errors that carry no code.
func (postgresBackend) Classify(err error) errors.Kind {
	if err == nil {
		return errors.Unknown
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		code := pgErr.Code
		switch {
		case strings.HasPrefix(code, pgClassIntegrityViolation):
			return errors.ConstraintViolation
		case strings.HasPrefix(code, pgClassSyntaxOrAccess):
			return errors.SyntaxDefect
		case strings.HasPrefix(code, pgClassConnection),
			strings.HasPrefix(code, pgClassInsufficientRes),
			code == pgAdminShutdown:
			return errors.Operational
		}
		return errors.Unknown
	}

	if kind, ok := classifyCommon(err); ok {
		return kind
	}

	// Fallback to string matching for errors surfaced without a PgError,
	// e.g. through intermediate drivers.
	msg := err.Error()
	switch {
	case containsAny(msg,
		"violates foreign key constraint",
		"violates unique constraint",
		"violates check constraint",
		"violates not-null constraint"):
		return errors.ConstraintViolation
	case containsAny(msg, "syntax error at or near", "does not exist"):
		return errors.SyntaxDefect
	case containsAny(msg, "connection refused", "connection reset", "broken pipe", "i/o timeout"):
		return errors.Operational
	}
	return errors.Unknown
}
