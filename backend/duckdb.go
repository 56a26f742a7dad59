package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/genomic-features/ensembldb-go/filter"
)

// openDuckDB opens a DuckDB connection. A SQLite annotation file is attached
// through the sqlite scanner so both backend kinds serve identical data.
func openDuckDB(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" || strings.HasSuffix(path, ".duckdb") {
		db, err := sql.Open("duckdb", path)
		if err != nil {
			return nil, fmt.Errorf("backend: open duckdb database %q: %w", path, err)
		}
		return db, nil
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("backend: open duckdb database: %w", err)
	}
	stmts := []string{
		"INSTALL sqlite",
		"LOAD sqlite",
		"ATTACH '" + strings.ReplaceAll(path, "'", "''") + "' AS ensdb (TYPE sqlite)",
		"USE ensdb",
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("backend: attach sqlite database %q: %w", path, err)
		}
	}
	return db, nil
}

// duckdbSchema reads the table layout from information_schema.
func duckdbSchema(ctx context.Context, db *sql.DB, table string) (filter.Schema, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT column_name, data_type FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position",
		table)
	if err != nil {
		return filter.Schema{}, fmt.Errorf("backend: introspect %s: %w", table, err)
	}
	defer rows.Close()

	schema := filter.Schema{Table: table}
	for rows.Next() {
		var name, dbType string
		if err := rows.Scan(&name, &dbType); err != nil {
			return filter.Schema{}, fmt.Errorf("backend: introspect %s: %w", table, err)
		}
		schema.Columns = append(schema.Columns, filter.Column{
			Name: name,
			Type: mapColumnType(dbType),
		})
	}
	if err := rows.Err(); err != nil {
		return filter.Schema{}, fmt.Errorf("backend: introspect %s: %w", table, err)
	}
	if len(schema.Columns) == 0 {
		return filter.Schema{}, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return schema, nil
}
