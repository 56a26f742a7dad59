// Package backend provides SQL storage backends for annotation databases.
//
// A DB wraps a database/sql connection to one backend kind (SQLite or
// DuckDB), introspects table schemas and executes lowered filter predicates.
// Both kinds serve the same annotation data and must return row-identical
// results for the same filter expression.
package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/genomic-features/ensembldb-go/filter"
	"github.com/genomic-features/ensembldb-go/internal/recovery"
)

// Kind identifies a storage backend.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindDuckDB Kind = "duckdb"
)

// Standard errors returned by the backend package.
var (
	// ErrUnknownKind indicates an unsupported backend kind.
	ErrUnknownKind = errors.New("backend: unknown backend kind")

	// ErrTableNotFound indicates the requested table does not exist in the
	// annotation database.
	ErrTableNotFound = errors.New("backend: table not found")
)

// Options configures an opened backend.
type Options struct {
	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Row is one result row keyed by column name.
type Row map[string]any

// DB is a handle to one annotation database on one backend kind.
// Safe for concurrent use; schema lookups are cached per table.
type DB struct {
	kind   Kind
	db     *sql.DB
	logger *slog.Logger

	mu      sync.RWMutex
	schemas map[string]filter.Schema
}

// Open opens an annotation database on the given backend kind. For SQLite,
// path is the database file ("" opens an in-memory database). For DuckDB,
// path may be empty (in-memory), a native .duckdb file, or a SQLite
// annotation file, which is attached through DuckDB's sqlite scanner.
func Open(ctx context.Context, kind Kind, path string, opts *Options) (*DB, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		db  *sql.DB
		err error
	)
	switch kind {
	case KindSQLite:
		db, err = openSQLite(ctx, path)
	case KindDuckDB:
		db, err = openDuckDB(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("backend: ping %s database: %w", kind, err)
	}

	logger.Debug("opened annotation backend", "kind", string(kind), "path", path)

	return &DB{
		kind:    kind,
		db:      db,
		logger:  logger,
		schemas: make(map[string]filter.Schema),
	}, nil
}

// Kind returns the backend kind of the handle.
func (d *DB) Kind() Kind { return d.kind }

// Close releases the underlying connection.
func (d *DB) Close() error { return d.db.Close() }

// Schema introspects and caches the schema of a table.
func (d *DB) Schema(ctx context.Context, table string) (filter.Schema, error) {
	d.mu.RLock()
	schema, ok := d.schemas[table]
	d.mu.RUnlock()
	if ok {
		return schema, nil
	}

	var (
		err error
	)
	switch d.kind {
	case KindSQLite:
		schema, err = sqliteSchema(ctx, d.db, table)
	case KindDuckDB:
		schema, err = duckdbSchema(ctx, d.db, table)
	default:
		return filter.Schema{}, fmt.Errorf("%w: %q", ErrUnknownKind, d.kind)
	}
	if err != nil {
		return filter.Schema{}, err
	}

	d.mu.Lock()
	d.schemas[table] = schema
	d.mu.Unlock()
	return schema, nil
}

// Execute lowers the expression against the table's schema, runs exactly one
// query and returns all matching rows projected to columns (all columns when
// nil). A nil expression selects every row. Row order is unspecified.
func (d *DB) Execute(ctx context.Context, table string, expr filter.Expression, columns []string) ([]Row, error) {
	schema, err := d.Schema(ctx, table)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + selectList(columns) + " FROM " + filter.QuoteIdentifier(table)
	var args []any
	if expr != nil {
		pred, err := filter.Lower(expr, schema, d.dialect())
		if err != nil {
			return nil, err
		}
		query += " WHERE " + pred.SQL
		args = pred.Args
	}

	d.logger.Debug("executing annotation query", "kind", string(d.kind), "query", query)

	return recovery.RecoverToValue(d.logger, "Execute", func() ([]Row, error) {
		rows, err := d.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("backend: query %s: %w", table, err)
		}
		defer rows.Close()

		return scanRows(rows)
	})
}

// ExecContext runs a statement on the underlying connection. Intended for
// fixtures and maintenance; DDL invalidates the schema cache.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	d.mu.Lock()
	d.schemas = make(map[string]filter.Schema)
	d.mu.Unlock()
	return d.db.ExecContext(ctx, query, args...)
}

func (d *DB) dialect() filter.Dialect {
	if d.kind == KindDuckDB {
		return filter.DialectDuckDB
	}
	return filter.DialectSQLite
}

func selectList(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		quoted = append(quoted, filter.QuoteIdentifier(c))
	}
	return strings.Join(quoted, ", ")
}

// scanRows materializes a result set into generic rows. SQLite reports text
// columns as []byte through database/sql; those are converted to string so
// both backends yield comparable values.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("backend: read columns: %w", err)
	}

	var out []Row
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("backend: scan row: %w", err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[c] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("backend: iterate rows: %w", err)
	}
	return out, nil
}

// mapColumnType normalizes a backend type name to the filter column type
// used for value coercion.
func mapColumnType(dbType string) filter.ColumnType {
	t := strings.ToUpper(dbType)
	switch {
	case strings.Contains(t, "BOOL"):
		return filter.ColumnBoolean
	case strings.Contains(t, "INT"):
		return filter.ColumnInteger
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"),
		strings.Contains(t, "DOUB"), strings.Contains(t, "DECIMAL"),
		strings.Contains(t, "NUMERIC"):
		return filter.ColumnReal
	default:
		return filter.ColumnText
	}
}
