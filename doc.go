// Package ensembldb provides query access to Ensembl genomic annotation
// databases (genes, transcripts, exons) through composable, typed filters.
//
// Annotation data lives in versioned EnsDb SQLite files, fetched on demand
// and cached locally. Queries run on interchangeable SQL backends (SQLite or
// DuckDB) and return identical rows for the same filter and data.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	ann, err := ensembldb.Open(ctx, ensembldb.Config{
//	    Species: "Hsapiens",
//	    Release: 108,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ann.Close()
//
//	coding, err := filter.GeneBioType("protein_coding")
//	rng, err := filter.GeneRanges("1:77000000-78000000", filter.OverlapAny)
//
//	rows, err := ann.Genes(ctx, &ensembldb.QueryOptions{
//	    Filter: filter.And(coding, rng),
//	})
//
//	genes, err := ensembldb.Decode[ensembldb.Gene](rows)
//
// Filters compose with AND, OR and NOT without mutating their operands; see
// the filter package for the full algebra and its lowering to SQL.
package ensembldb
