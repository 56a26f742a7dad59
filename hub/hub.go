// Package hub retrieves versioned Ensembl annotation databases (EnsDb SQLite
// files) and caches them on disk. A database is identified by species and
// Ensembl release, e.g. ("Hsapiens", 108) -> EnsDb.Hsapiens.v108.sqlite.
package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/genomic-features/ensembldb-go/internal/manifest"
)

// DefaultBaseURL is the AnnotationHub bucket serving EnsDb releases.
const DefaultBaseURL = "https://bioconductorhubs.blob.core.windows.net/annotationhub/AHEnsDbs/"

const manifestName = "manifest.msgpack"

// ErrReleaseNotFound indicates the species/release combination is not
// available from the hub.
var ErrReleaseNotFound = errors.New("hub: annotation release not found")

// Options configures a Hub.
type Options struct {
	// BaseURL of the annotation hub.
	// OPTIONAL: Uses DefaultBaseURL if empty.
	BaseURL string

	// CacheDir holds downloaded databases and the cache manifest.
	// OPTIONAL: Uses <user cache dir>/ensembldb if empty.
	CacheDir string

	// Client used for downloads.
	// OPTIONAL: Uses http.DefaultClient if nil.
	Client *http.Client

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Hub fetches and caches annotation databases.
type Hub struct {
	baseURL  string
	cacheDir string
	client   *http.Client
	logger   *slog.Logger
}

// New creates a Hub and its cache directory.
func New(opts *Options) (*Hub, error) {
	if opts == nil {
		opts = &Options{}
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("hub: resolve cache dir: %w", err)
		}
		cacheDir = filepath.Join(userCache, "ensembldb")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("hub: create cache dir %s: %w", cacheDir, err)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		baseURL:  baseURL,
		cacheDir: cacheDir,
		client:   client,
		logger:   logger,
	}, nil
}

// DatabaseName returns the canonical EnsDb file name for a species/release.
func DatabaseName(species string, release int) string {
	return fmt.Sprintf("EnsDb.%s.v%d.sqlite", species, release)
}

// Fetch returns the local path of the annotation database for a
// species/release, downloading it on a cache miss. Both the plain and the
// gzip-compressed remote file name are tried; compressed downloads are
// decompressed transparently. Fails with ErrReleaseNotFound when neither
// exists.
func (h *Hub) Fetch(ctx context.Context, species string, release int) (string, error) {
	name := DatabaseName(species, release)
	dest := filepath.Join(h.cacheDir, name)

	if _, err := os.Stat(dest); err == nil {
		h.logger.Debug("annotation cache hit", "database", name)
		return dest, nil
	}

	url := h.baseURL + fmt.Sprintf("v%d/%s", release, name)
	h.logger.Info("downloading annotation database", "database", name, "url", url)

	size, err := h.download(ctx, url, dest, false)
	if errors.Is(err, ErrReleaseNotFound) {
		size, err = h.download(ctx, url+".gz", dest, true)
	}
	if errors.Is(err, ErrReleaseNotFound) {
		return "", fmt.Errorf("%w: species %s release %d", ErrReleaseNotFound, species, release)
	}
	if err != nil {
		return "", err
	}

	if err := h.record(name, url, size); err != nil {
		// The database itself is in place; a manifest failure is not fatal.
		h.logger.Warn("updating cache manifest failed", "error", err)
	}
	return dest, nil
}

// download streams url into dest through a temp file, decompressing when
// compressed is set. The rename at the end keeps partially written files out
// of the cache.
func (h *Hub) download(ctx context.Context, url, dest string, compressed bool) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("hub: build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("hub: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, ErrReleaseNotFound
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("hub: fetch %s: unexpected status %s", url, resp.Status)
	}

	var body io.Reader = resp.Body
	if compressed {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return 0, fmt.Errorf("hub: decompress %s: %w", url, err)
		}
		defer gz.Close()
		body = gz
	}

	tmp := filepath.Join(h.cacheDir, ".tmp-"+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("hub: create temp file: %w", err)
	}

	size, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("hub: write %s: %w", dest, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("hub: move into cache: %w", err)
	}
	return size, nil
}

func (h *Hub) record(name, url string, size int64) error {
	path := filepath.Join(h.cacheDir, manifestName)
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	m.Set(name, manifest.Entry{URL: url, Size: size, FetchedAt: time.Now().UTC()})
	return m.Save(path)
}
