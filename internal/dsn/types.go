// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

// DBType identifies a database backend.
type DBType string

const (
	DBTypePostgreSQL DBType = "postgresql"
	DBTypeMySQL      DBType = "mysql"
	DBTypeOracle     DBType = "oracle"
	DBTypeUnknown    DBType = "unknown"
)

// DSNInfo is the parsed form of a connection string. Original preserves
// the input exactly as given.
type DSNInfo struct {
	Type     DBType
	User     string
	Password string
	Host     string
	Port     string
	Database string
	Params   map[string]string
	Original string
}

// String returns the connection string this info was parsed from.
func (d *DSNInfo) String() string {
	return d.Original
}

// Resolver parses, normalizes, and validates connection strings for one
// backend.
type Resolver interface {
	// Parse breaks a DSN string into its fields.
	Parse(dsn string) (*DSNInfo, error)

	// Normalize renders info as a canonical, URL-encoded connection string.
	Normalize(info *DSNInfo) (string, error)

	// Validate checks whether the DSN is acceptable for this backend.
	Validate(dsn string) error
}

// ParseError describes why a connection string was rejected. Hint, when
// set, tells the user what a working DSN looks like.
type ParseError struct {
	DSN    string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	msg := "invalid DSN format: " + e.Reason
	if e.Hint != "" {
		msg += "\nHint: " + e.Hint
	}
	return msg
}

// NewParseError creates a new ParseError.
func NewParseError(dsn, reason, hint string) *ParseError {
	return &ParseError{DSN: dsn, Reason: reason, Hint: hint}
}
