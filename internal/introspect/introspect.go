// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package introspect reads table, column, and foreign-key metadata from
// information_schema and renders it in the canonical text form the
// generation service consumes. It also answers which tables reference a
// given table, which drives the dependency-aware delete protocol.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"querysmith/cli/internal/dbconn"
	"querysmith/cli/internal/dsn"
	"querysmith/cli/internal/errors"
)

// Column describes one table column.
type Column struct {
	Name     string
	DataType string
	Nullable bool
}

// ForeignKey describes an outgoing reference from a table.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table describes one base table.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Schema is the structured form of the introspected database.
type Schema struct {
	Tables []Table
}

// Dependent is a column in another table referencing the inspected table.
// RefColumn is the referenced column on the inspected table. A NOT NULL
// dependent cannot be detached by nulling its reference.
type Dependent struct {
	Table     string
	Column    string
	RefColumn string
	Nullable  bool
}

// Querier is the query surface shared by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Reader reads schema metadata for one backend kind.
type Reader interface {
	Schema(ctx context.Context) (*Schema, error)
	Dependents(ctx context.Context, table string) ([]Dependent, error)
}

// readerFor selects the information_schema reader for a backend kind.
func readerFor(kind dsn.DBType, q Querier) (Reader, error) {
	switch kind {
	case dsn.DBTypePostgreSQL:
		return &postgresReader{q: q}, nil
	case dsn.DBTypeMySQL:
		return &mysqlReader{q: q}, nil
	default:
		return nil, errors.New(errors.Configuration, "no schema reader for database type: "+string(kind))
	}
}

// Introspector reads the live schema through the connection manager, one
// scoped session per call.
type Introspector struct {
	manager *dbconn.Manager
}

// NewIntrospector creates an Introspector over the manager.
func NewIntrospector(m *dbconn.Manager) *Introspector {
	return &Introspector{manager: m}
}

// Schema reads the structured schema of the active database.
func (i *Introspector) Schema(ctx context.Context) (*Schema, error) {
	sess, err := i.manager.OpenSession(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	r, err := readerFor(sess.Backend().Kind(), sess.Conn())
	if err != nil {
		return nil, err
	}
	return r.Schema(ctx)
}

// SchemaText reads the schema and renders its canonical text form.
func (i *Introspector) SchemaText(ctx context.Context) (string, error) {
	s, err := i.Schema(ctx)
	if err != nil {
		return "", err
	}
	return Render(s), nil
}

// Dependents lists foreign-key references pointing at table.
func (i *Introspector) Dependents(ctx context.Context, table string) ([]Dependent, error) {
	sess, err := i.manager.OpenSession(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	r, err := readerFor(sess.Backend().Kind(), sess.Conn())
	if err != nil {
		return nil, err
	}
	return r.Dependents(ctx, table)
}

// Render produces the canonical text form of a schema: a "Table:" block per
// table with one line per column, followed by its foreign keys.
func Render(s *Schema) string {
	var b strings.Builder
	for i, t := range s.Tables {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Table: " + t.Name + "\n")

		lines := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			nullable := "NULL"
			if !c.Nullable {
				nullable = "NOT NULL"
			}
			lines = append(lines, fmt.Sprintf("%s (%s) %s", c.Name, strings.ToUpper(c.DataType), nullable))
		}
		b.WriteString(strings.Join(lines, "\n"))

		if len(t.ForeignKeys) > 0 {
			b.WriteString("\n\nForeign Keys:\n")
			fkLines := make([]string, 0, len(t.ForeignKeys))
			for _, fk := range t.ForeignKeys {
				fkLines = append(fkLines, fmt.Sprintf("FK: %s.%s -> %s.%s", t.Name, fk.Column, fk.RefTable, fk.RefColumn))
			}
			b.WriteString(strings.Join(fkLines, "\n"))
		}
	}
	return b.String()
}
