package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL dialect of a storage backend.
type Dialect string

const (
	DialectSQLite Dialect = "sqlite"
	DialectDuckDB Dialect = "duckdb"
)

// Predicate is a lowered filter expression: a parameterized SQL condition
// suitable for a WHERE clause, without the WHERE keyword. Values are always
// bound through placeholders, never interpolated.
type Predicate struct {
	SQL  string
	Args []any
}

// Lower walks an expression tree once and emits an equivalent SQL predicate
// for the given table schema and dialect. A condition whose target column is
// missing from the schema fails with a *SchemaError.
func Lower(expr Expression, schema Schema, dialect Dialect) (Predicate, error) {
	switch dialect {
	case DialectSQLite, DialectDuckDB:
	default:
		return Predicate{}, fmt.Errorf("filter: unknown dialect %q", dialect)
	}
	if expr == nil {
		return Predicate{}, fmt.Errorf("filter: cannot lower nil expression")
	}

	l := &lowerer{schema: schema, dialect: dialect}
	sql, args, err := l.lower(expr)
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{SQL: sql, Args: args}, nil
}

type lowerer struct {
	schema  Schema
	dialect Dialect
}

func (l *lowerer) lower(expr Expression) (string, []any, error) {
	switch e := expr.(type) {
	case *Condition:
		return l.lowerCondition(e)
	case *ConjunctionExpression:
		left, leftArgs, err := l.lower(e.left)
		if err != nil {
			return "", nil, err
		}
		right, rightArgs, err := l.lower(e.right)
		if err != nil {
			return "", nil, err
		}
		return "(" + left + " " + string(e.op) + " " + right + ")", append(leftArgs, rightArgs...), nil
	case *NotExpression:
		inner, args, err := l.lower(e.operand)
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + inner + ")", args, nil
	default:
		return "", nil, fmt.Errorf("filter: unsupported expression type %T", expr)
	}
}

func (l *lowerer) lowerCondition(c *Condition) (string, []any, error) {
	cols, err := l.boundColumns(c)
	if err != nil {
		return "", nil, err
	}

	switch c.kind {
	case KindCanonicalTx:
		flag := cols[0]
		// SQLite stores the flag as an integer, DuckDB as a boolean.
		if l.dialect == DialectDuckDB && flag.Type == ColumnBoolean {
			return quoteIdentifier(flag.Name) + " = TRUE", nil, nil
		}
		return quoteIdentifier(flag.Name) + " = 1", nil, nil

	case KindGeneRange:
		seq, start, end := cols[0], cols[1], cols[2]
		iv := c.interval
		seqArg := coerce(Value{raw: iv.SeqName, canonical: iv.SeqName}, seq.Type)
		sql := quoteIdentifier(seq.Name) + " = ?"
		var args []any
		switch iv.Mode {
		case OverlapWithin:
			sql += " AND " + quoteIdentifier(start.Name) + " >= ? AND " + quoteIdentifier(end.Name) + " <= ?"
			args = []any{seqArg, iv.Start, iv.End}
		default: // OverlapAny, validated at construction
			sql += " AND " + quoteIdentifier(start.Name) + " <= ? AND " + quoteIdentifier(end.Name) + " >= ?"
			args = []any{seqArg, iv.End, iv.Start}
		}
		return "(" + sql + ")", args, nil

	default:
		// Membership test; a condition spanning several columns matches when
		// any of them holds a value from the set.
		var parts []string
		var args []any
		for _, col := range cols {
			sql, colArgs := membership(col, c.values)
			parts = append(parts, sql)
			args = append(args, colArgs...)
		}
		if len(parts) == 1 {
			return parts[0], args, nil
		}
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	}
}

// boundColumns resolves the condition's target columns against the schema.
func (l *lowerer) boundColumns(c *Condition) ([]Column, error) {
	names := c.Columns()
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, ok := l.schema.Column(name)
		if !ok {
			return nil, &SchemaError{Table: l.schema.Table, Column: name}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// membership emits "col = ?" for a singleton set and "col IN (?, …)"
// otherwise, with every value coerced to the column's storage type.
func membership(col Column, values []Value) (string, []any) {
	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, coerce(v, col.Type))
	}
	if len(values) == 1 {
		return quoteIdentifier(col.Name) + " = ?", args
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return quoteIdentifier(col.Name) + " IN (" + placeholders + ")", args
}

// coerce converts a normalized value to the column's storage type. Text
// columns receive the canonical string, numeric columns the parsed number
// when the canonical form is numeric. A value that cannot be represented in
// the column type binds its canonical string, which matches no rows rather
// than failing the query.
func coerce(v Value, ct ColumnType) any {
	switch ct {
	case ColumnInteger, ColumnBoolean:
		if i, err := strconv.ParseInt(v.canonical, 10, 64); err == nil {
			return i
		}
		return v.canonical
	case ColumnReal:
		if f, err := strconv.ParseFloat(v.canonical, 64); err == nil {
			return f
		}
		return v.canonical
	default:
		return v.canonical
	}
}
