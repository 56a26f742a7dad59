package ensembldb

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/genomic-features/ensembldb-go/backend"
)

// Config describes which annotation database to open and how.
type Config struct {
	// Species in EnsDb naming, e.g. "Hsapiens".
	// REQUIRED unless Path is set.
	Species string

	// Release is the Ensembl release number, e.g. 108.
	// REQUIRED unless Path is set.
	Release int

	// Backend selects the storage backend.
	// OPTIONAL: Defaults to backend.KindSQLite.
	Backend backend.Kind

	// Path points at a local annotation database file, bypassing the hub.
	// OPTIONAL: If empty, the database is fetched (and cached) by species
	// and release.
	Path string

	// CacheDir overrides the hub cache directory.
	// OPTIONAL: Defaults to <user cache dir>/ensembldb.
	CacheDir string

	// BaseURL overrides the annotation hub URL.
	// OPTIONAL: Defaults to hub.DefaultBaseURL.
	BaseURL string

	// HTTPClient is used for hub downloads.
	// OPTIONAL: Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Standard errors returned by the ensembldb package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("ensembldb: invalid config")
)

func (c *Config) validate() error {
	if c.Path != "" {
		return nil
	}
	if c.Species == "" {
		return errors.Join(ErrInvalidConfig, errors.New("species is required"))
	}
	if c.Release <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("release must be positive"))
	}
	return nil
}
