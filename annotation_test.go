package ensembldb_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	ensembldb "github.com/genomic-features/ensembldb-go"
	"github.com/genomic-features/ensembldb-go/backend"
	"github.com/genomic-features/ensembldb-go/filter"
)

// writeFixture creates a minimal EnsDb-shaped SQLite file.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "EnsDb.Hsapiens.v108.sqlite")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE gene (
			gene_id TEXT, gene_name TEXT, gene_biotype TEXT,
			seq_name TEXT, gene_seq_start INTEGER, gene_seq_end INTEGER
		)`,
		`INSERT INTO gene VALUES
			('ENSG00000000003', 'TSPAN6', 'protein_coding', 'X', 100627108, 100639991),
			('ENSG00000000460', 'FIRRM', 'protein_coding', '1', 169662007, 169854080),
			('ENSG00000277400', 'TRBC1', 'TR_C_gene', '7', 142791694, 142793368)`,
		`CREATE TABLE tx (
			tx_id TEXT, tx_biotype TEXT, tx_is_canonical INTEGER,
			canonical_transcript TEXT, gene_id TEXT, seq_name TEXT
		)`,
		`INSERT INTO tx VALUES
			('ENST00000373020', 'protein_coding', 1, 'ENST00000373020', 'ENSG00000000003', 'X'),
			('ENST00000494424', 'processed_transcript', 0, 'ENST00000373020', 'ENSG00000000003', 'X')`,
		`CREATE TABLE exon (
			exon_id TEXT, seq_name TEXT, exon_seq_start INTEGER, exon_seq_end INTEGER
		)`,
		`INSERT INTO exon VALUES
			('ENSE00001855382', 'X', 100627108, 100629986),
			('ENSE00001639513', 'X', 100630759, 100630866)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestOpenLocalPath(t *testing.T) {
	ctx := context.Background()
	ann, err := ensembldb.Open(ctx, ensembldb.Config{Path: writeFixture(t)})
	require.NoError(t, err)
	defer ann.Close()

	require.Equal(t, backend.KindSQLite, ann.Backend())

	coding, err := filter.GeneBioType("protein_coding")
	require.NoError(t, err)

	rows, err := ann.Genes(ctx, &ensembldb.QueryOptions{Filter: coding})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	genes, err := ensembldb.Decode[ensembldb.Gene](rows)
	require.NoError(t, err)
	for _, g := range genes {
		require.Equal(t, "protein_coding", g.GeneBioType)
		require.NotEmpty(t, g.GeneID)
		require.Positive(t, g.SeqEnd)
	}
}

func TestOpenFetchesThroughHub(t *testing.T) {
	fixture, err := os.ReadFile(writeFixture(t))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v108/EnsDb.Hsapiens.v108.sqlite" {
			w.Write(fixture)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx := context.Background()
	ann, err := ensembldb.Open(ctx, ensembldb.Config{
		Species:    "Hsapiens",
		Release:    108,
		BaseURL:    srv.URL,
		CacheDir:   t.TempDir(),
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	defer ann.Close()

	rows, err := ann.Genes(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestTranscriptsCanonicalFilter(t *testing.T) {
	ctx := context.Background()
	ann, err := ensembldb.Open(ctx, ensembldb.Config{Path: writeFixture(t)})
	require.NoError(t, err)
	defer ann.Close()

	rows, err := ann.Transcripts(ctx, &ensembldb.QueryOptions{
		Columns: []string{"tx_id", "tx_is_canonical", "canonical_transcript"},
		Filter:  filter.CanonicalTx(),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	txs, err := ensembldb.Decode[ensembldb.Transcript](rows)
	require.NoError(t, err)
	require.True(t, txs[0].IsCanonical)
	require.Equal(t, txs[0].TxID, txs[0].CanonicalTranscript)

	rows, err = ann.Transcripts(ctx, &ensembldb.QueryOptions{
		Filter: filter.CanonicalTx().Negate(),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "ENST00000494424", rows[0]["tx_id"])
}

func TestExonsProjection(t *testing.T) {
	ctx := context.Background()
	ann, err := ensembldb.Open(ctx, ensembldb.Config{Path: writeFixture(t)})
	require.NoError(t, err)
	defer ann.Close()

	cond, err := filter.ExonID("ENSE00001639513")
	require.NoError(t, err)

	rows, err := ann.Exons(ctx, &ensembldb.QueryOptions{
		Columns: []string{"exon_id", "seq_name"},
		Filter:  cond,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 2)
	require.Equal(t, "ENSE00001639513", rows[0]["exon_id"])
}

func TestOpenConfigValidation(t *testing.T) {
	ctx := context.Background()

	_, err := ensembldb.Open(ctx, ensembldb.Config{Release: 108})
	require.ErrorIs(t, err, ensembldb.ErrInvalidConfig)

	_, err = ensembldb.Open(ctx, ensembldb.Config{Species: "Hsapiens"})
	require.ErrorIs(t, err, ensembldb.ErrInvalidConfig)
}

func TestConstructionErrorsBeforeBackend(t *testing.T) {
	// An invalid filter never reaches Open or the backend.
	_, err := filter.GeneRanges("1_77000000_78000000", filter.OverlapAny)
	var verr *filter.ValueError
	require.ErrorAs(t, err, &verr)

	_, err = filter.GeneRanges("1-77000000-78000000", filter.OverlapAny)
	require.ErrorAs(t, err, &verr)

	_, err = filter.GeneRanges("1:77000000-78000000", filter.Overlap("start"))
	require.ErrorAs(t, err, &verr)
}
