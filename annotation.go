package ensembldb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/genomic-features/ensembldb-go/backend"
	"github.com/genomic-features/ensembldb-go/filter"
	"github.com/genomic-features/ensembldb-go/hub"
)

// Annotation table names in EnsDb databases.
const (
	TableGene = "gene"
	TableTx   = "tx"
	TableExon = "exon"
)

// QueryOptions narrows a table query.
type QueryOptions struct {
	// Columns to return. If nil/empty, return all columns.
	Columns []string

	// Filter restricts the returned rows. If nil, all rows are returned.
	Filter filter.Expression
}

// Annotation is a handle to one species/release annotation database opened
// on one storage backend. Queries are read-only; the handle is safe for
// concurrent use.
type Annotation struct {
	db     *backend.DB
	logger *slog.Logger
}

// Open obtains an annotation database handle. Unless cfg.Path points at a
// local file, the database is fetched by species and release through the
// annotation hub and cached on disk. Fails when the species/release/backend
// combination is unavailable.
func Open(ctx context.Context, cfg Config) (*Annotation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path := cfg.Path
	if path == "" {
		h, err := hub.New(&hub.Options{
			BaseURL:  cfg.BaseURL,
			CacheDir: cfg.CacheDir,
			Client:   cfg.HTTPClient,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		path, err = h.Fetch(ctx, cfg.Species, cfg.Release)
		if err != nil {
			return nil, err
		}
	}

	kind := cfg.Backend
	if kind == "" {
		kind = backend.KindSQLite
	}

	db, err := backend.Open(ctx, kind, path, &backend.Options{Logger: logger})
	if err != nil {
		return nil, err
	}

	logger.Debug("opened annotation database",
		"species", cfg.Species, "release", cfg.Release, "backend", string(kind))

	return &Annotation{db: db, logger: logger}, nil
}

// Close releases the backend handle.
func (a *Annotation) Close() error { return a.db.Close() }

// Backend returns the storage backend kind of the handle.
func (a *Annotation) Backend() backend.Kind { return a.db.Kind() }

// Genes returns rows of the gene table matching opts.
func (a *Annotation) Genes(ctx context.Context, opts *QueryOptions) ([]backend.Row, error) {
	return a.query(ctx, TableGene, opts)
}

// Transcripts returns rows of the transcript table matching opts.
func (a *Annotation) Transcripts(ctx context.Context, opts *QueryOptions) ([]backend.Row, error) {
	return a.query(ctx, TableTx, opts)
}

// Exons returns rows of the exon table matching opts.
func (a *Annotation) Exons(ctx context.Context, opts *QueryOptions) ([]backend.Row, error) {
	return a.query(ctx, TableExon, opts)
}

// TableSchema exposes the introspected schema of an annotation table.
func (a *Annotation) TableSchema(ctx context.Context, table string) (filter.Schema, error) {
	return a.db.Schema(ctx, table)
}

func (a *Annotation) query(ctx context.Context, table string, opts *QueryOptions) ([]backend.Row, error) {
	if opts == nil {
		opts = &QueryOptions{}
	}
	rows, err := a.db.Execute(ctx, table, opts.Filter, opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("ensembldb: query %s: %w", table, err)
	}
	return rows, nil
}
