// Package dbconn owns database sessions for the supported backends.
// A Backend captures everything that differs between PostgreSQL and MySQL:
// driver selection, driver-ready DSN construction, placeholder style, and
// error classification. The Manager holds the active connection profile and
// swaps it atomically, so session opens never observe a half-updated profile.
package dbconn

import (
	"context"
	"database/sql/driver"
	stderrors "errors"
	"net"
	"strings"

	"querysmith/cli/internal/dsn"
	"querysmith/cli/internal/errors"
)

// Backend is the capability surface of one supported database kind.
type Backend interface {
	// Kind returns the typed backend kind.
	Kind() dsn.DBType

	// DriverName is the database/sql driver registration name.
	DriverName() string

	// DefaultPort is the port assumed when the DSN omits one.
	DefaultPort() string

	// DriverDSN converts parsed DSN info into the connection string the
	// driver expects.
	DriverDSN(info *dsn.DSNInfo) (string, error)

	// Rebind rewrites :name placeholders into the backend's positional
	// style and returns the parameter names in binding order.
	Rebind(statement string) (string, []string)

	// Classify maps a driver error to an error kind.
	Classify(err error) errors.Kind
}

// backendFor selects the Backend for a database kind. Unsupported kinds are
// rejected with a configuration error before any connection attempt.
func backendFor(kind dsn.DBType) (Backend, error) {
	switch kind {
	case dsn.DBTypePostgreSQL:
		return postgresBackend{}, nil
	case dsn.DBTypeMySQL:
		return mysqlBackend{}, nil
	default:
		return nil, errors.New(errors.Configuration, "unsupported database type: "+string(kind))
	}
}

// classifyCommon handles failures every driver can produce: cancelled
// contexts, dead connections, and network-level errors.
func classifyCommon(err error) (errors.Kind, bool) {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.Operational, true
	}
	if stderrors.Is(err, driver.ErrBadConn) {
		return errors.Operational, true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.Operational, true
	}
	return errors.Unknown, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
