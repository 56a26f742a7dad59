// Package filter provides composable, typed filters over genomic annotation
// tables and their lowering to SQL predicates.
//
// A filter is an immutable expression tree. Leaves are conditions on a single
// attribute (gene identifier, biotype, sequence name, genomic range, ...);
// composites combine filters with AND, OR and NOT. Because nodes are never
// mutated, sub-filters can be shared between trees.
//
// # Building filters
//
//	coding, err := filter.GeneBioType("protein_coding")
//	chr1, err := filter.SeqName(1) // equivalent to filter.SeqName("1")
//
//	f := coding.AndWith(chr1.Negate())
//	// or: filter.And(coding, filter.Not(chr1))
//
// Range filters parse "SEQNAME:START-END" strings with an explicit overlap
// mode:
//
//	rng, err := filter.GeneRanges("1:77000000-78000000", filter.OverlapAny)
//
// Construction validates inputs eagerly: empty value sets, malformed range
// strings and unknown overlap modes fail with a *ValueError before any
// backend is touched.
//
// # Lowering
//
// Lower translates an expression into a parameterized SQL predicate for a
// concrete table schema and backend dialect:
//
//	pred, err := filter.Lower(f, schema, filter.DialectSQLite)
//	rows, err := db.QueryContext(ctx, "SELECT * FROM gene WHERE "+pred.SQL, pred.Args...)
//
// Values are coerced to the column types the schema reports, so integer and
// string forms of the same identifier select identical rows on every
// supported backend. A condition whose column is missing from the schema
// fails with a *SchemaError; the filter stays valid for other schemas.
package filter
