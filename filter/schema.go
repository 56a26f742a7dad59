package filter

// ColumnType is the storage type a backend reports for a column. Lowering
// coerces bound values to the reported type so that backends with different
// physical typing return identical rows for the same expression.
type ColumnType string

const (
	ColumnText    ColumnType = "TEXT"
	ColumnInteger ColumnType = "INTEGER"
	ColumnReal    ColumnType = "REAL"
	ColumnBoolean ColumnType = "BOOLEAN"
)

// Column describes one column of a target table.
type Column struct {
	Name string
	Type ColumnType
}

// Schema describes the target table an expression is lowered against.
type Schema struct {
	Table   string
	Columns []Column
}

// Column looks up a column by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// SchemaError indicates a condition targets a column the supplied table
// schema does not have. The expression itself remains valid and can be
// lowered against a different schema.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return "filter: table " + e.Table + " has no column " + e.Column
}
