// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dbconn

import (
	stderrors "errors"
	"net"
	"strings"

	"querysmith/cli/internal/dsn"
	"querysmith/cli/internal/errors"
	"querysmith/cli/internal/sqltext"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers used for classification.
const (
	myDuplicateEntry    = 1062
	myColumnCannotNull  = 1048
	myForeignKeyParent  = 1451 // cannot delete or update a parent row
	myForeignKeyChild   = 1452 // cannot add or update a child row
	myCheckViolated     = 3819
	mySyntaxError       = 1064
	myUnknownColumn     = 1054
	myNoSuchTable       = 1146
	myTooManyConns      = 1040
	myLockWaitTimeout   = 1205
	myDeadlockDetected  = 1213
	myServerShutdownNum = 1053
)

type mysqlBackend struct{}

func (mysqlBackend) Kind() dsn.DBType   { return dsn.DBTypeMySQL }
func (mysqlBackend) DriverName() string { return "mysql" }
func (mysqlBackend) DefaultPort() string {
	return "3306"
}

// DriverDSN builds the go-sql-driver connection string
// (user:pass@tcp(host:port)/db) from parsed DSN info.
func (mysqlBackend) DriverDSN(info *dsn.DSNInfo) (string, error) {
	if info.Host == "" || info.Database == "" {
		return "", errors.New(errors.Configuration, "MySQL DSN requires host and database")
	}
	cfg := mysql.NewConfig()
	cfg.User = info.User
	cfg.Passwd = info.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(info.Host, info.Port)
	cfg.DBName = info.Database
	cfg.ParseTime = true
	for k, v := range info.Params {
		if strings.EqualFold(k, "parseTime") {
			cfg.ParseTime = v == "true"
			continue
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		cfg.Params[k] = v
	}
	return cfg.FormatDSN(), nil
}

func (mysqlBackend) Rebind(statement string) (string, []string) {
	return sqltext.RebindQuestion(statement)
}

// Classify maps a MySQL driver error to an error kind by server error
// number, falling back to message matching.
func (mysqlBackend) Classify(err error) errors.Kind {
	if err == nil {
		return errors.Unknown
	}

	var myErr *mysql.MySQLError
	if stderrors.As(err, &myErr) {
		switch myErr.Number {
		case myDuplicateEntry, myColumnCannotNull, myForeignKeyParent, myForeignKeyChild, myCheckViolated:
			return errors.ConstraintViolation
		case mySyntaxError, myUnknownColumn, myNoSuchTable:
			return errors.SyntaxDefect
		case myTooManyConns, myLockWaitTimeout, myDeadlockDetected, myServerShutdownNum:
			return errors.Operational
		}
		return errors.Unknown
	}

	if stderrors.Is(err, mysql.ErrInvalidConn) {
		return errors.Operational
	}
	if kind, ok := classifyCommon(err); ok {
		return kind
	}

	msg := err.Error()
	switch {
	case containsAny(msg, "Error 1062", "Error 1451", "Error 1452", "Error 3819"):
		return errors.ConstraintViolation
	case containsAny(msg, "You have an error in your SQL syntax", "Unknown column", "doesn't exist"):
		return errors.SyntaxDefect
	case containsAny(msg, "invalid connection", "connection refused", "i/o timeout"):
		return errors.Operational
	}
	return errors.Unknown
}
