// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// DetectDBType infers the backend from the shape of a connection string.
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DBTypePostgreSQL
	case strings.HasPrefix(lower, "mysql://"), strings.Contains(lower, "@tcp("):
		return DBTypeMySQL
	case strings.HasPrefix(lower, "oracle://"):
		return DBTypeOracle
	default:
		return DBTypeUnknown
	}
}

// resolverFor maps a DSN to the resolver for its detected backend.
func resolverFor(dsn string) (Resolver, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid database connection string")
	}
	switch DetectDBType(dsn) {
	case DBTypePostgreSQL:
		return NewPostgreSQLResolver(), nil
	case DBTypeMySQL:
		return NewMySQLResolver(), nil
	case DBTypeOracle:
		return nil, NewParseError(dsn, "Oracle support not yet implemented", "use postgres:// or mysql://")
	default:
		return nil, NewParseError(dsn, "unknown database type", "use postgres:// or mysql://")
	}
}

// Parse detects the backend, parses the DSN, and returns its canonical
// normalized form. Main entry point for connection strings of any kind.
func Parse(dsn string) (string, error) {
	resolver, err := resolverFor(dsn)
	if err != nil {
		return "", err
	}
	info, err := resolver.Parse(dsn)
	if err != nil {
		return "", err
	}
	return resolver.Normalize(info)
}

// Validate checks a DSN without normalizing it.
func Validate(dsn string) error {
	resolver, err := resolverFor(dsn)
	if err != nil {
		return err
	}
	return resolver.Validate(dsn)
}

// ParseInfo exposes the parsed fields, for callers that display or inspect
// connection details.
func ParseInfo(dsn string) (*DSNInfo, error) {
	resolver, err := resolverFor(dsn)
	if err != nil {
		return nil, err
	}
	return resolver.Parse(dsn)
}
