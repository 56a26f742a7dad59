package backend

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/genomic-features/ensembldb-go/filter"
)

func openSQLite(_ context.Context, path string) (*sql.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("backend: open sqlite database %q: %w", path, err)
	}
	if path == "" {
		// Every pooled connection to :memory: would otherwise get its own
		// empty database.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// sqliteSchema reads the table layout via PRAGMA table_info.
func sqliteSchema(ctx context.Context, db *sql.DB, table string) (filter.Schema, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+filter.QuoteIdentifier(table)+")")
	if err != nil {
		return filter.Schema{}, fmt.Errorf("backend: introspect %s: %w", table, err)
	}
	defer rows.Close()

	schema := filter.Schema{Table: table}
	for rows.Next() {
		var (
			cid        int
			name       string
			dbType     string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &dbType, &notNull, &defaultVal, &pk); err != nil {
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
