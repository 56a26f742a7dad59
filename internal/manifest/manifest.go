// Package manifest tracks locally cached annotation database files.
// The manifest is a small MessagePack document stored next to the databases.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Entry records provenance for one cached database file.
type Entry struct {
	URL       string    `msgpack:"url"`
	Size      int64     `msgpack:"size"`
	FetchedAt time.Time `msgpack:"fetched_at"`
}

// Manifest maps database file names to their cache entries.
type Manifest struct {
	Databases map[string]Entry `msgpack:"databases"`
}

// Load reads a manifest from disk. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Databases: make(map[string]Entry)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode %s: %w", path, err)
	}
	if m.Databases == nil {
		m.Databases = make(map[string]Entry)
	}
	return &m, nil
}

// Save writes the manifest to disk.
func (m *Manifest) Save(path string) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// Set records an entry for a database file name.
func (m *Manifest) Set(name string, e Entry) {
	m.Databases[name] = e
}

// Get looks up the entry for a database file name.
func (m *Manifest) Get(name string) (Entry, bool) {
	e, ok := m.Databases[name]
	return e, ok
}
