package filter

import (
	"errors"
	"reflect"
	"testing"
)

func geneSchema() Schema {
	return Schema{
		Table: "gene",
		Columns: []Column{
			{Name: "gene_id", Type: ColumnText},
			{Name: "gene_name", Type: ColumnText},
			{Name: "gene_biotype", Type: ColumnText},
			{Name: "seq_name", Type: ColumnText},
			{Name: "gene_seq_start", Type: ColumnInteger},
			{Name: "gene_seq_end", Type: ColumnInteger},
		},
	}
}

func txSchema() Schema {
	return Schema{
		Table: "tx",
		Columns: []Column{
			{Name: "tx_id", Type: ColumnText},
			{Name: "tx_biotype", Type: ColumnText},
			{Name: "tx_is_canonical", Type: ColumnInteger},
		},
	}
}

func TestLowerSingleValue(t *testing.T) {
	c, _ := GeneID("ENSG00000000003")

	pred, err := Lower(c, geneSchema(), DialectSQLite)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if pred.SQL != "gene_id = ?" {
		t.Errorf("SQL = %q", pred.SQL)
	}
	if !reflect.DeepEqual(pred.Args, []any{"ENSG00000000003"}) {
		t.Errorf("Args = %v", pred.Args)
	}
}

func TestLowerValueList(t *testing.T) {
	c, _ := GeneID("LRG_997", "ENSG00000000460", "ENSG00000000003")

	pred, err := Lower(c, geneSchema(), DialectDuckDB)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if pred.SQL != "gene_id IN (?, ?, ?)" {
		t.Errorf("SQL = %q", pred.SQL)
	}
	if len(pred.Args) != 3 {
		t.Errorf("Args = %v", pred.Args)
	}
}

func TestLowerConjunctions(t *testing.T) {
	a, _ := GeneBioType("protein_coding")
	b, _ := SeqName("1")

	tests := []struct {
		name string
		expr Expression
		sql  string
	}{
		{"and", And(a, b), "(gene_biotype = ? AND seq_name = ?)"},
		{"or", Or(a, b), "(gene_biotype = ? OR seq_name = ?)"},
		{"not leaf", Not(a), "NOT (gene_biotype = ?)"},
		{"not composite", Not(And(a, b)), "NOT ((gene_biotype = ? AND seq_name = ?))"},
		{"nested", Or(Not(a), Not(b)), "(NOT (gene_biotype = ?) OR NOT (seq_name = ?))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := Lower(tt.expr, geneSchema(), DialectSQLite)
			if err != nil {
				t.Fatalf("Lower failed: %v", err)
			}
			if pred.SQL != tt.sql {
				t.Errorf("SQL = %q, want %q", pred.SQL, tt.sql)
			}
		})
	}
}

func TestLowerWalksTreeOnce(t *testing.T) {
	// Each leaf contributes its arguments exactly once, in tree order.
	a, _ := GeneBioType("protein_coding")
	b, _ := GeneID("LRG_997", "ENSG00000000460")

	pred, err := Lower(And(a, b), geneSchema(), DialectSQLite)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	want := []any{"protein_coding", "LRG_997", "ENSG00000000460"}
	if !reflect.DeepEqual(pred.Args, want) {
		t.Errorf("Args = %v, want %v", pred.Args, want)
	}
}

func TestLowerRange(t *testing.T) {
	tests := []struct {
		name string
		mode Overlap
		sql  string
		args []any
	}{
		{
			name: "any",
			mode: OverlapAny,
			sql:  "(seq_name = ? AND gene_seq_start <= ? AND gene_seq_end >= ?)",
			args: []any{"1", int64(78000000), int64(77000000)},
		},
		{
			name: "within",
			mode: OverlapWithin,
			sql:  "(seq_name = ? AND gene_seq_start >= ? AND gene_seq_end <= ?)",
			args: []any{"1", int64(77000000), int64(78000000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := GeneRanges("1:77000000-78000000", tt.mode)
			if err != nil {
				t.Fatalf("GeneRanges failed: %v", err)
			}
			pred, err := Lower(c, geneSchema(), DialectSQLite)
			if err != nil {
				t.Fatalf("Lower failed: %v", err)
			}
			if pred.SQL != tt.sql {
				t.Errorf("SQL = %q, want %q", pred.SQL, tt.sql)
			}
			if !reflect.DeepEqual(pred.Args, tt.args) {
				t.Errorf("Args = %v, want %v", pred.Args, tt.args)
			}
		})
	}
}

func TestLowerCanonicalTx(t *testing.T) {
	c := CanonicalTx()

	pred, err := Lower(c, txSchema(), DialectSQLite)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if pred.SQL != "tx_is_canonical = 1" {
		t.Errorf("SQL = %q", pred.SQL)
	}
	if len(pred.Args) != 0 {
		t.Errorf("Args = %v, want none", pred.Args)
	}

	// DuckDB with a native boolean column compares against TRUE.
	boolSchema := Schema{
		Table:   "tx",
		Columns: []Column{{Name: "tx_is_canonical", Type: ColumnBoolean}},
	}
	pred, err = Lower(c, boolSchema, DialectDuckDB)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if pred.SQL != "tx_is_canonical = TRUE" {
		t.Errorf("SQL = %q", pred.SQL)
	}

	neg, err := Lower(Not(c), txSchema(), DialectSQLite)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if neg.SQL != "NOT (tx_is_canonical = 1)" {
		t.Errorf("SQL = %q", neg.SQL)
	}
}

func TestLowerCoercesToColumnType(t *testing.T) {
	// seq_name stored as text: the integer input binds as its string form.
	c, _ := SeqName(1, "2")
	pred, err := Lower(c, geneSchema(), DialectSQLite)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if !reflect.DeepEqual(pred.Args, []any{"1", "2"}) {
		t.Errorf("text coercion Args = %v", pred.Args)
	}

	// seq_name stored as integer: the string input binds as int64.
	intSchema := Schema{
		Table: "gene",
		Columns: []Column{
			{Name: "seq_name", Type: ColumnInteger},
		},
	}
	pred, err = Lower(c, intSchema, DialectDuckDB)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if !reflect.DeepEqual(pred.Args, []any{int64(1), int64(2)}) {
		t.Errorf("integer coercion Args = %v", pred.Args)
	}
}

func TestLowerSchemaMismatch(t *testing.T) {
	c, _ := TxID("ENST00000513666")

	_, err := Lower(c, geneSchema(), DialectSQLite)
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if serr.Table != "gene" || serr.Column != "tx_id" {
		t.Errorf("unexpected schema error %+v", serr)
	}

	// The filter stays valid against a schema that has the column.
	if _, err := Lower(c, txSchema(), DialectSQLite); err != nil {
		t.Errorf("Lower against tx schema failed: %v", err)
	}
}

func TestLowerRangeSchemaMismatch(t *testing.T) {
	c, _ := GeneRanges("1:100-200", OverlapAny)

	_, err := Lower(c, txSchema(), DialectSQLite)
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
}

func TestLowerUnknownDialect(t *testing.T) {
	c, _ := GeneID("ENSG00000000003")
	if _, err := Lower(c, geneSchema(), Dialect("postgres")); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestLowerQuotesReservedIdentifiers(t *testing.T) {
	if got := quoteIdentifier("start"); got != `"start"` {
		t.Errorf("quoteIdentifier(start) = %q", got)
	}
	if got := quoteIdentifier("gene_id"); got != "gene_id" {
		t.Errorf("quoteIdentifier(gene_id) = %q", got)
	}
	if got := quoteIdentifier("seq name"); got != `"seq name"` {
		t.Errorf("quoteIdentifier(seq name) = %q", got)
	}
}
