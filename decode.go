package ensembldb

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/genomic-features/ensembldb-go/backend"
)

// Gene is a typed view of a gene table row.
type Gene struct {
	GeneID      string `mapstructure:"gene_id"`
	GeneName    string `mapstructure:"gene_name"`
	GeneBioType string `mapstructure:"gene_biotype"`
	SeqName     string `mapstructure:"seq_name"`
	SeqStart    int64  `mapstructure:"gene_seq_start"`
	SeqEnd      int64  `mapstructure:"gene_seq_end"`
}

// Transcript is a typed view of a transcript table row.
type Transcript struct {
	TxID                string `mapstructure:"tx_id"`
	TxBioType           string `mapstructure:"tx_biotype"`
	IsCanonical         bool   `mapstructure:"tx_is_canonical"`
	CanonicalTranscript string `mapstructure:"canonical_transcript"`
	GeneID              string `mapstructure:"gene_id"`
	SeqName             string `mapstructure:"seq_name"`
}

// Exon is a typed view of an exon table row.
type Exon struct {
	ExonID   string `mapstructure:"exon_id"`
	SeqName  string `mapstructure:"seq_name"`
	SeqStart int64  `mapstructure:"exon_seq_start"`
	SeqEnd   int64  `mapstructure:"exon_seq_end"`
}

// Decode converts generic result rows into typed records. Numeric columns
// are converted weakly, since backends report different integer widths for
// the same data.
func Decode[T any](rows []backend.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		var rec T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &rec,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("ensembldb: build decoder: %w", err)
		}
		if err := dec.Decode(map[string]any(row)); err != nil {
			return nil, fmt.Errorf("ensembldb: decode row %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
