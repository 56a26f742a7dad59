package filter

// Kind identifies the queryable annotation attribute a Condition targets.
// The set is closed: lowering performs an exhaustive switch over Kind, so a
// new attribute requires a new constant, a column binding and a lowering arm.
type Kind int

const (
	KindGeneID Kind = iota
	KindGeneBioType
	KindGeneName
	KindTxID
	KindTxBioType
	KindSeqName
	KindUniProtID
	KindUniProtDB
	KindUniProtMappingType
	KindExonID
	KindCanonicalTx
	KindGeneRange
)

// String returns the attribute name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindGeneID:
		return "gene_id"
	case KindGeneBioType:
		return "gene_biotype"
	case KindGeneName:
		return "gene_name"
	case KindTxID:
		return "tx_id"
	case KindTxBioType:
		return "tx_biotype"
	case KindSeqName:
		return "seq_name"
	case KindUniProtID:
		return "uniprot_id"
	case KindUniProtDB:
		return "uniprot_db"
	case KindUniProtMappingType:
		return "uniprot_mapping_type"
	case KindExonID:
		return "exon_id"
	case KindCanonicalTx:
		return "canonical_tx"
	case KindGeneRange:
		return "gene_range"
	default:
		return "unknown"
	}
}

// Operator identifies a boolean composition operator.
type Operator string

const (
	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
	OpNot Operator = "NOT"
)

// Expression is a filter expression tree node: either a Condition leaf or a
// boolean composite. Expressions are immutable; composition always allocates
// a new node, so sub-expressions can be reused across multiple trees.
type Expression interface {
	// AndWith returns a new expression selecting rows matched by both
	// e and other.
	AndWith(other Expression) Expression

	// OrWith returns a new expression selecting rows matched by either
	// e or other.
	OrWith(other Expression) Expression

	// Negate returns a new expression selecting exactly the rows e does not.
	Negate() Expression

	// expressionMarker prevents external implementations, keeping the
	// variant set closed for lowering.
	expressionMarker()
}

// And returns the conjunction of two expressions. Chains of more than two
// operands express as nested binary nodes.
func And(left, right Expression) Expression {
	return &ConjunctionExpression{op: OpAnd, left: left, right: right}
}

// Or returns the disjunction of two expressions.
func Or(left, right Expression) Expression {
	return &ConjunctionExpression{op: OpOr, left: left, right: right}
}

// Not returns the negation of an expression. Negating a composite negates
// the whole sub-tree, not just its top-level operator.
func Not(expr Expression) Expression {
	return &NotExpression{operand: expr}
}

// Condition is a leaf predicate over a single annotation attribute:
// "column IN value-set" for equality kinds, "flag = true" for KindCanonicalTx
// and an interval overlap test for KindGeneRange.
type Condition struct {
	kind     Kind
	values   []Value
	interval GenomicInterval // KindGeneRange only
}

// Kind returns the attribute this condition targets.
func (c *Condition) Kind() Kind { return c.kind }

// Values returns the normalized value set. It is empty for KindCanonicalTx
// and KindGeneRange. Callers must not modify the returned slice.
func (c *Condition) Values() []Value { return c.values }

// Interval returns the parsed genomic interval for KindGeneRange conditions.
func (c *Condition) Interval() GenomicInterval { return c.interval }

// Columns returns the ordered column names the condition binds to. Most
// kinds bind a single column; KindGeneRange spans the sequence-name and the
// start/end coordinate columns.
func (c *Condition) Columns() []string {
	switch c.kind {
	case KindGeneID:
		return []string{"gene_id"}
	case KindGeneBioType:
		return []string{"gene_biotype"}
	case KindGeneName:
		return []string{"gene_name"}
	case KindTxID:
		return []string{"tx_id"}
	case KindTxBioType:
		return []string{"tx_biotype"}
	case KindSeqName:
		return []string{"seq_name"}
	case KindUniProtID:
		return []string{"uniprot_id"}
	case KindUniProtDB:
		return []string{"uniprot_db"}
	case KindUniProtMappingType:
		return []string{"uniprot_mapping_type"}
	case KindExonID:
		return []string{"exon_id"}
	case KindCanonicalTx:
		return []string{"tx_is_canonical"}
	case KindGeneRange:
		return []string{"seq_name", "gene_seq_start", "gene_seq_end"}
	default:
		return nil
	}
}

func (c *Condition) AndWith(other Expression) Expression { return And(c, other) }
func (c *Condition) OrWith(other Expression) Expression  { return Or(c, other) }
func (c *Condition) Negate() Expression                  { return Not(c) }
func (c *Condition) expressionMarker()                   {}

// ConjunctionExpression is a binary AND/OR node.
type ConjunctionExpression struct {
	op    Operator
	left  Expression
	right Expression
}

// Op returns OpAnd or OpOr.
func (c *ConjunctionExpression) Op() Operator { return c.op }

// Left returns the left operand.
func (c *ConjunctionExpression) Left() Expression { return c.left }

// Right returns the right operand.
func (c *ConjunctionExpression) Right() Expression { return c.right }

func (c *ConjunctionExpression) AndWith(other Expression) Expression { return And(c, other) }
func (c *ConjunctionExpression) OrWith(other Expression) Expression  { return Or(c, other) }
func (c *ConjunctionExpression) Negate() Expression                  { return Not(c) }
func (c *ConjunctionExpression) expressionMarker()                   {}

// NotExpression negates its single operand.
type NotExpression struct {
	operand Expression
}

// Operand returns the negated expression.
func (n *NotExpression) Operand() Expression { return n.operand }

func (n *NotExpression) AndWith(other Expression) Expression { return And(n, other) }
func (n *NotExpression) OrWith(other Expression) Expression  { return Or(n, other) }
func (n *NotExpression) Negate() Expression                  { return Not(n) }
func (n *NotExpression) expressionMarker()                   {}
