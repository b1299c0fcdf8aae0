package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool used by Introspect.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Introspect queries PostgreSQL catalogs and returns all tables with columns
// and keys. A non-nil only set restricts the result to the named tables.
func Introspect(ctx context.Context, q Querier, schemas []string, only map[string]bool) (map[string]*Table, error) {
	tables, err := queryTablesAndColumns(ctx, q, schemas)
	if err != nil {
		return nil, fmt.Errorf("querying tables and columns: %w", err)
	}

	if only != nil {
		for key, tbl := range tables {
			if !only[tbl.Name] && !only[key] {
				delete(tables, key)
			}
		}
	}

	if err := queryKeys(ctx, q, schemas, tables); err != nil {
		return nil, fmt.Errorf("querying keys: %w", err)
	}

	return tables, nil
}

func queryTablesAndColumns(ctx context.Context, q Querier, schemas []string) (map[string]*Table, error) {
	query := `
		SELECT
			n.nspname AS schema_name,
			c.relname AS table_name,
			a.attname AS column_name,
			t.typname AS data_type,
			NOT a.attnotnull AS is_nullable,
			a.attnum AS ordinal_position
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.oid
		JOIN pg_type t ON t.oid = a.atttypid
		WHERE c.relkind = 'r'
			AND a.attnum > 0
			AND NOT a.attisdropped
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname, a.attnum
	`

	rows, err := q.Query(ctx, query, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string]*Table)
	for rows.Next() {
		var schemaName, tableName, colName, dataType string
		var nullable bool
		var ordPos int
		if err := rows.Scan(&schemaName, &tableName, &colName, &dataType, &nullable, &ordPos); err != nil {
			return nil, err
		}

		key := schemaName + "." + tableName
		tbl, ok := tables[key]
		if !ok {
			tbl = &Table{
				Schema: schemaName,
				Name:   tableName,
			}
			tables[key] = tbl
		}
		tbl.Columns = append(tbl.Columns, Column{
			Name:     colName,
			DataType: dataType,
			Nullable: nullable,
			OrdPos:   ordPos,
		})
	}

	return tables, rows.Err()
}

// keyRow is one column of a primary key or unique constraint.
type keyRow struct {
	schema, table, name, column string
	primary                     bool
}

func queryKeys(ctx context.Context, q Querier, schemas []string, tables map[string]*Table) error {
	query := `
		SELECT
			n.nspname AS schema_name,
			c.relname AS table_name,
			con.conname AS constraint_name,
			con.contype = 'p' AS is_primary,
			a.attname AS column_name
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		CROSS JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS u(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = u.attnum
		WHERE con.contype IN ('p', 'u')
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname, con.contype, con.conname, u.ord
	`

	rows, err := q.Query(ctx, query, schemas)
	if err != nil {
		return err
	}
	defer rows.Close()

	var entries []keyRow
	for rows.Next() {
		var e keyRow
		if err := rows.Scan(&e.schema, &e.table, &e.name, &e.primary, &e.column); err != nil {
			return err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	attachKeys(tables, entries)
	return nil
}

// attachKeys groups consecutive rows of the same constraint into Keys.
func attachKeys(tables map[string]*Table, entries []keyRow) {
	for _, e := range entries {
		tbl, ok := tables[e.schema+"."+e.table]
		if !ok {
			continue
		}
		n := len(tbl.Keys)
		if n == 0 || tbl.Keys[n-1].Name != e.name {
			tbl.Keys = append(tbl.Keys, Key{Name: e.name, Primary: e.primary})
			n++
		}
		tbl.Keys[n-1].Columns = append(tbl.Keys[n-1].Columns, e.column)
	}
}
