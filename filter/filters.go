package filter

// Constructors for the condition kinds. Each accepts one or more values,
// where a value is a string, an integer, or a slice of those (flattened one
// level), mirroring callers that pass either a scalar or a list. Passing no
// values, or an empty slice, fails with a *ValueError.

// GeneID selects features by Ensembl gene identifier.
func GeneID(values ...any) (*Condition, error) {
	return newCondition(KindGeneID, values)
}

// GeneBioType selects features by gene biotype (e.g. "protein_coding").
func GeneBioType(values ...any) (*Condition, error) {
	return newCondition(KindGeneBioType, values)
}

// GeneName selects features by gene symbol.
func GeneName(values ...any) (*Condition, error) {
	return newCondition(KindGeneName, values)
}

// TxID selects features by Ensembl transcript identifier.
func TxID(values ...any) (*Condition, error) {
	return newCondition(KindTxID, values)
}

// TxBioType selects features by transcript biotype.
func TxBioType(values ...any) (*Condition, error) {
	return newCondition(KindTxBioType, values)
}

// SeqName selects features by sequence (chromosome) name. Integer and string
// forms of the same name are equivalent: SeqName(1) matches the same rows as
// SeqName("1").
func SeqName(values ...any) (*Condition, error) {
	return newCondition(KindSeqName, values)
}

// UniProtID selects features by UniProt accession.
func UniProtID(values ...any) (*Condition, error) {
	return newCondition(KindUniProtID, values)
}

// UniProtDB selects features by UniProt database name.
func UniProtDB(values ...any) (*Condition, error) {
	return newCondition(KindUniProtDB, values)
}

// UniProtMappingType selects features by UniProt mapping type.
func UniProtMappingType(values ...any) (*Condition, error) {
	return newCondition(KindUniProtMappingType, values)
}

// ExonID selects features by Ensembl exon identifier.
func ExonID(values ...any) (*Condition, error) {
	return newCondition(KindExonID, values)
}

// CanonicalTx selects canonical transcripts: rows whose canonical flag is
// true. The complement ("flag is false") is expressed by negation, not by a
// separate constructor.
func CanonicalTx() *Condition {
	return &Condition{kind: KindCanonicalTx}
}

// GeneRanges selects features by genomic range. The range string has the
// exact form "SEQNAME:START-END" and mode is OverlapAny or OverlapWithin.
// Malformed strings and unknown mode tokens fail here, before any backend
// work.
func GeneRanges(rangeStr string, mode Overlap) (*Condition, error) {
	iv, err := ParseRange(rangeStr, mode)
	if err != nil {
		return nil, err
	}
	return &Condition{kind: KindGeneRange, interval: iv}, nil
}

func newCondition(kind Kind, inputs []any) (*Condition, error) {
	values, err := normalizeValues(kind, inputs)
	if err != nil {
		return nil, err
	}
	return &Condition{kind: kind, values: values}, nil
}
