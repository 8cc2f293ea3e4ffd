// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package introspect

import (
	"context"
)

// postgresReader reads metadata for tables in the public schema.
type postgresReader struct {
	q Querier
}

func (r *postgresReader) Schema(ctx context.Context) (*Schema, error) {
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

func (r *postgresReader) loadTables(ctx context.Context) ([]string, map[string]*Table, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := r.q.QueryContext(ctx, query, "public")
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

func (r *postgresReader) loadColumns(ctx context.Context, index map[string]*Table) error {
	query := `
		SELECT table_name, column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1
		ORDER BY table_name, ordinal_position`

	rows, err := r.q.QueryContext(ctx, query, "public")
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
			continue // view or table filtered out above
		}
		t.Columns = append(t.Columns, Column{
			Name:     column,
			DataType: dataType,
			Nullable: nullable == "YES",
		})
	}
	return rows.Err()
}

func (r *postgresReader) loadForeignKeys(ctx context.Context, index map[string]*Table) error {
	query := `
		SELECT tc.table_name, kcu.column_name, ccu.table_name, ccu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON tc.constraint_name = ccu.constraint_name AND tc.table_schema = ccu.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1
		ORDER BY tc.table_name, kcu.ordinal_position`

	rows, err := r.q.QueryContext(ctx, query, "public")
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

func (r *postgresReader) Dependents(ctx context.Context, table string) ([]Dependent, error) {
	query := `
		SELECT tc.table_name, kcu.column_name, ccu.column_name, col.is_nullable
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON tc.constraint_name = ccu.constraint_name AND tc.table_schema = ccu.table_schema
		JOIN information_schema.columns col
			ON col.table_schema = tc.table_schema
			AND col.table_name = tc.table_name
			AND col.column_name = kcu.column_name
		WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1 AND ccu.table_name = $2
		ORDER BY tc.table_name, kcu.column_name`

	rows, err := r.q.QueryContext(ctx, query, "public", table)
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
