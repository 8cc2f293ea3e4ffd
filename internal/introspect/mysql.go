// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package introspect

import (
	"context"
)

// mysqlReader reads metadata for tables in the connected database.
type mysqlReader struct {
	q Querier
}

func (r *mysqlReader) Schema(ctx context.Context) (*Schema, error) {
	tables, index, err := r.loadTables(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.loadColumns(ctx, index); err != nil {
		return nil, err
	}
	if err := r.loadForeignKeys(ctx, index); err != nil {
		return nil, err
	}

	s := &Schema{Tables: make([]Table, 0, len(tables))}
	for _, name := range tables {
		s.Tables = append(s.Tables, *index[name])
	}
	return s, nil
}

func (r *mysqlReader) loadTables(ctx context.Context) ([]string, map[string]*Table, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var names []string
	index := make(map[string]*Table)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		index[name] = &Table{Name: name}
	}
	return names, index, rows.Err()
}

func (r *mysqlReader) loadColumns(ctx context.Context, index map[string]*Table) error {
	query := `
		SELECT table_name, column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		ORDER BY table_name, ordinal_position`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var table, column, dataType, nullable string
		if err := rows.Scan(&table, &column, &dataType, &nullable); err != nil {
			return err
		}
		t, ok := index[table]
		if !ok {
			continue
		}
		t.Columns = append(t.Columns, Column{
			Name:     column,
			DataType: dataType,
			Nullable: nullable == "YES",
		})
	}
	return rows.Err()
}

func (r *mysqlReader) loadForeignKeys(ctx context.Context, index map[string]*Table) error {
	query := `
		SELECT table_name, column_name, referenced_table_name, referenced_column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = DATABASE() AND referenced_table_name IS NOT NULL
		ORDER BY table_name, ordinal_position`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var table, column, refTable, refColumn string
		if err := rows.Scan(&table, &column, &refTable, &refColumn); err != nil {
			return err
		}
		t, ok := index[table]
		if !ok {
			continue
		}
		t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
			Column:    column,
			RefTable:  refTable,
			RefColumn: refColumn,
		})
	}
	return rows.Err()
}

func (r *mysqlReader) Dependents(ctx context.Context, table string) ([]Dependent, error) {
	query := `
		SELECT kcu.table_name, kcu.column_name, kcu.referenced_column_name, c.is_nullable
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.columns c
			ON c.table_schema = kcu.table_schema
			AND c.table_name = kcu.table_name
			AND c.column_name = kcu.column_name
		WHERE kcu.table_schema = DATABASE() AND kcu.referenced_table_name = ?
		ORDER BY kcu.table_name, kcu.column_name`

	rows, err := r.q.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []Dependent
	for rows.Next() {
		var depTable, depColumn, refColumn, nullable string
		if err := rows.Scan(&depTable, &depColumn, &refColumn, &nullable); err != nil {
			return nil, err
		}
		deps = append(deps, Dependent{
			Table:     depTable,
			Column:    depColumn,
			RefColumn: refColumn,
			Nullable:  nullable == "YES",
		})
	}
	return deps, rows.Err()
}
